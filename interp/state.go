package interp

// State is the lifecycle stage of an [Interpreter].
type State int

const (
	Idle State = iota
	Running
	Halted
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
