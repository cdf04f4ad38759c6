package signal

// Channel is a forward-only cursor over the transitions of one digital
// capture channel.
//
// Implementations report the sample of their final position through
// NextEdge once no transitions remain, so callers can always compare
// positions without a separate end-of-data check.
type Channel interface {
	// Position returns the current sample number.
	Position() uint64

	// Level returns the logic level at the current position.
	Level() bool

	// NextEdge returns the sample number of the next transition after the
	// current position.
	NextEdge() uint64

	// HasMoreEdges reports whether any transition remains after the
	// current position.
	HasMoreEdges() bool

	// AdvanceToNextEdge moves to the next transition, toggling the level.
	AdvanceToNextEdge()

	// AdvanceTo moves to sample, applying every transition at or before
	// it. Positions behind the current one are ignored.
	AdvanceTo(sample uint64)
}

// transitionsWithin reports whether advancing ch by n samples would cross
// an edge.
func transitionsWithin(ch Channel, n uint64) bool {
	return ch.HasMoreEdges() && ch.NextEdge() <= ch.Position()+n
}

// transitionsBy reports whether advancing ch to sample would cross an edge.
func transitionsBy(ch Channel, sample uint64) bool {
	return ch.HasMoreEdges() && ch.NextEdge() <= sample
}
