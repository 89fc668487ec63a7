package lang

import (
	"iter"
	"slices"
	"strconv"
)

// Header defaults applied when the optional header lines are absent.
const (
	DefaultPitch  = 430
	DefaultVolume = 50
	DefaultOctave = 4
)

// Reserved variable names that route to [Header] fields.
const (
	VarOctave = "octave"
	VarBPM    = "bpm"
	VarPitch  = "pitch"
	VarVolume = "volume"
	VarMeter  = "meter"
)

// Directive names recognized on the left-hand side of a [Pair].
const (
	DirectiveGoto = "goto"
	DirectiveSave = "save"
)

// Entry is the name of the chunk where execution starts.
const Entry = "main"

// Header is the global musical configuration of a program.
type Header struct {
	Numerator   int `json:"numerator"   yaml:"numerator"`
	Denominator int `json:"denominator" yaml:"denominator"`
	BPM         int `json:"bpm"         yaml:"bpm"`
	Volume      int `json:"volume"      yaml:"volume"`
	Pitch       int `json:"pitch"       yaml:"pitch"`
	Octave      int `json:"octave"      yaml:"octave"`
}

// IsReserved reports whether name routes to a [Header] field.
func IsReserved(name string) bool {
	switch name {
	case VarOctave, VarBPM, VarPitch, VarVolume, VarMeter:
		return true
	}

	return false
}

// Set assigns value to the field named by a reserved variable. The meter
// variable sets the time-signature numerator. Set reports false, leaving h
// unchanged, if name is not reserved.
func (h *Header) Set(name string, value int) bool {
	switch name {
	case VarOctave:
		h.Octave = value
	case VarBPM:
		h.BPM = value
	case VarPitch:
		h.Pitch = value
	case VarVolume:
		h.Volume = value
	case VarMeter:
		h.Numerator = value
	default:
		return false
	}

	return true
}

// Duration is a note length in beats. Den is zero for the integer form.
type Duration struct {
	Num int
	Den int
}

// Beats returns the duration as a real number of beats.
func (d Duration) Beats() float64 {
	if d.Den == 0 {
		return float64(d.Num)
	}

	return float64(d.Num) / float64(d.Den)
}

func (d Duration) String() string {
	if d.Den == 0 {
		return strconv.Itoa(d.Num)
	}

	return strconv.Itoa(d.Num) + "/" + strconv.Itoa(d.Den)
}

// Modifier is a note accidental.
type Modifier int

const (
	Natural Modifier = iota
	Sharp
	Flat
)

// Offset returns the semitone adjustment of m.
func (m Modifier) Offset() int {
	switch m {
	case Sharp:
		return 1
	case Flat:
		return -1
	default:
		return 0
	}
}

func (m Modifier) String() string {
	switch m {
	case Sharp:
		return "#"
	case Flat:
		return "b"
	default:
		return ""
	}
}

// Kind identifies the variant of an [Op].
type Kind int

const (
	KindNote Kind = iota
	KindVariable
	KindPair
)

func (k Kind) String() string {
	switch k {
	case KindNote:
		return "note"
	case KindVariable:
		return "variable"
	case KindPair:
		return "pair"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Op is a single chunk operation. The set of implementations is closed:
// [*Note], [*Variable] and [*Pair].
type Op interface {
	Kind() Kind
	SourceLine() int
	String() string

	op()
}

// letterOffsets holds the semitone distance of each natural note from A.
var letterOffsets = [...]int{
	'A' - 'A': 0,
	'B' - 'A': 2,
	'C' - 'A': -9,
	'D' - 'A': -7,
	'E' - 'A': -5,
	'F' - 'A': -4,
	'G' - 'A': -2,
}

// IsNoteLetter reports whether b names a note.
func IsNoteLetter(b byte) bool { return b >= 'A' && b <= 'G' }

// Note is one musical event.
type Note struct {
	Letter   byte
	Modifier Modifier
	Duration Duration
	Line     int
}

func (*Note) Kind() Kind { return KindNote }
func (n *Note) SourceLine() int { return n.Line }
func (*Note) op() {}
func (n *Note) Name() string { return string(n.Letter) + n.Modifier.String() }
func (n *Note) String() string { return n.Name() + n.Duration.String() }

// Semitones returns the signed semitone offset of n from the reference pitch.
func (n *Note) Semitones() int {
	return letterOffsets[n.Letter-'A'] + n.Modifier.Offset()
}

// Variable assigns an integer to a name.
type Variable struct {
	Name  string
	Value int
	Line  int
}

func (*Variable) Kind() Kind { return KindVariable }
func (v *Variable) SourceLine() int { return v.Line }
func (*Variable) op() {}

func (v *Variable) String() string {
	return v.Name + ":" + strconv.Itoa(v.Value)
}

// Pair is a two-word directive such as "goto verse" or "save out.bin".
type Pair struct {
	Left  string
	Right string
	Line  int
}

func (*Pair) Kind() Kind { return KindPair }
func (p *Pair) SourceLine() int { return p.Line }
func (*Pair) op() {}
func (p *Pair) String() string { return p.Left + " " + p.Right }

// Span is an inclusive range of source lines.
type Span struct {
	Start, End int
}

// Chunk is a named block of operations.
type Chunk struct {
	Name string
	// Groups holds the operations in source order, split at the points where
	// the parser fell through from one statement form to another.
	Groups [][]Op
	// Body collects characters no statement form matched.
	Body string
	Span Span
}

// Ops iterates over every operation of c in execution order.
func (c *Chunk) Ops() iter.Seq2[int, Op] {
	return func(yield func(int, Op) bool) {
		i := 0

		for _, group := range c.Groups {
			for _, op := range group {
				if !yield(i, op) {
					return
				}

				i++
			}
		}
	}
}

// Len returns the number of operations in c.
func (c *Chunk) Len() int {
	n := 0
	for _, group := range c.Groups {
		n += len(group)
	}

	return n
}

// Program is a parsed source: a header and its chunks in source order.
//
// Programs returned by the parser may be shared through the parse cache and
// must be treated as read-only.
type Program struct {
	Header Header
	Chunks []*Chunk
}

// Chunk returns the first chunk named name.
func (p *Program) Chunk(name string) (*Chunk, bool) {
	i := slices.IndexFunc(p.Chunks, func(c *Chunk) bool { return c.Name == name })
	if i < 0 {
		return nil, false
	}

	return p.Chunks[i], true
}

// All iterates over the chunks of p by name in source order.
func (p *Program) All() iter.Seq2[string, *Chunk] {
	return func(yield func(string, *Chunk) bool) {
		for _, c := range p.Chunks {
			if !yield(c.Name, c) {
				return
			}
		}
	}
}

// Names returns the chunk names of p in source order.
func (p *Program) Names() []string {
	names := make([]string, len(p.Chunks))
	for i, c := range p.Chunks {
		names[i] = c.Name
	}

	return names
}
