// Package interp executes a parsed [lang.Program].
//
// [New] validates a program and prepares an [Interpreter] that owns a private
// copy of the program header. [Interpreter.Run] executes the chunk named
// "main", dispatching each operation in order:
//
//   - a note is resolved to a frequency and duration against the current
//     header and emitted to the [Renderer];
//   - an assignment to octave, bpm, pitch, volume or meter updates the header;
//     any other assignment stores into the variable pool;
//   - "goto <chunk>" runs another chunk as a nested call and "save <path>"
//     asks the renderer to write its samples.
//
// Nested gotos are bounded by a maximum depth (see [WithMaxDepth]) so that
// cycles end in an error matching [lang.ErrRuntimeLimit].
package interp
