// Package play sends rendered samples to the default output device.
//
// The output backend links against the platform sound library through cgo.
// Building with the noplay tag replaces it with a stub whose [Play] always
// fails with [ErrPlayback].
package play
