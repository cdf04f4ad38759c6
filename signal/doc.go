// Package signal turns two digital edge streams, D+ and D-, into a sequence
// of filtered USB bus states.
//
// The filter walks both channels forward together. Each call to
// [Filter.Next] classifies the current line levels as J, K, SE0 or SE1,
// advances both channels to the next accepted transition, and reports how
// long the state lasted. Two kinds of distortion are removed on the way:
//
//   - Glitches. When sampling faster than 50 MHz on a low-speed bus, pulses
//     of up to 20 ns on either line are skipped.
//   - Skew. Transitions on D+ and D- that land within 50 ns (full speed) or
//     300 ns (low speed) of each other are merged into one transition at
//     their midpoint, so the pair never reports a spurious SE0 or SE1.
//
// The filter never blocks: once both channels run out of edges it keeps
// returning zero-length states and [Filter.More] reports false.
package signal
