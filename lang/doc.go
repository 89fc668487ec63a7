// Package lang parses musical notation into a [Program].
//
// # Notation
//
// A source starts with a header followed by one or more labelled chunks:
//
//	meter:4/4
//	bpm:120
//	pitch:440
//	volume:80
//	octave:4
//
//	@main
//	C4 E4 G4
//	goto verse
//
//	@verse
//	bpm:90
//	A1/2 Bb1/2 C#2
//	save out.bin
//
// The meter and bpm lines are required; pitch, volume and octave are optional
// and must appear in that order. Statements end at a newline or ';'.
//
// Inside a chunk three statement forms are recognized:
//
//   - assignment: identifier:integer
//   - note: a letter A-G, an optional accidental '#' or 'b', and a duration
//     in beats written as an integer or a fraction p/q
//   - directive: two words, such as "goto verse" or "save out.bin"
//
// # Parsing
//
// The grammar is expressed as ordered alternation over a single [Cursor].
// Each alternative runs inside [Attempt], which restores the cursor when the
// alternative fails. Local failures match [ErrNoMatch] and never leave the
// package; a header or chunk label that cannot be matched produces an error
// matching [ErrSyntax].
package lang
