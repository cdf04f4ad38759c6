package capture

import (
	"fmt"
	"slices"

	"github.com/ardnew/usbdecode/pkg"
	"github.com/ardnew/usbdecode/signal"
)

var _ signal.Channel = (*Channel)(nil)

// Channel is a cursor over the transitions of one captured channel.
type Channel struct {
	name    string
	initial bool
	edges   []uint64
	end     uint64

	pos   uint64
	level bool
	next  int
}

// NewChannel creates a channel that starts at level initial and toggles at
// each sample in edges, which must be strictly increasing. end is the last
// sample of the capture; it is raised to the final edge if smaller. An edge
// at sample zero is folded into the initial level.
func NewChannel(name string, initial bool, edges []uint64, end uint64) (*Channel, error) {
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return nil, fmt.Errorf("channel %q: edge %d at sample %d not after %d: %w",
				name, i, edges[i], edges[i-1], pkg.ErrInvalidCapture)
		}
	}
	if len(edges) > 0 && edges[0] == 0 {
		initial = !initial
		edges = edges[1:]
	}
	if n := len(edges); n > 0 && end < edges[n-1] {
		end = edges[n-1]
	}
	return &Channel{
		name:    name,
		initial: initial,
		edges:   slices.Clone(edges),
		end:     end,
		level:   initial,
	}, nil
}

// Name returns the channel name.
func (c *Channel) Name() string {
	return c.name
}

// End returns the last sample of the channel.
func (c *Channel) End() uint64 {
	return c.end
}

// Len returns the number of transitions.
func (c *Channel) Len() int {
	return len(c.edges)
}

// Rewind moves the cursor back to sample zero.
func (c *Channel) Rewind() {
	c.pos = 0
	c.level = c.initial
	c.next = 0
}

// Position returns the current sample number.
func (c *Channel) Position() uint64 {
	return c.pos
}

// Level returns the logic level at the current position.
func (c *Channel) Level() bool {
	return c.level
}

// HasMoreEdges reports whether a transition remains after the current
// position.
func (c *Channel) HasMoreEdges() bool {
	return c.next < len(c.edges)
}

// NextEdge returns the sample of the next transition, or the end of the
// channel once none remain.
func (c *Channel) NextEdge() uint64 {
	if c.next < len(c.edges) {
		return c.edges[c.next]
	}
	return max(c.pos, c.end)
}

// AdvanceToNextEdge moves to the next transition, or to the end of the
// channel once none remain.
func (c *Channel) AdvanceToNextEdge() {
	if c.next < len(c.edges) {
		c.pos = c.edges[c.next]
		c.level = !c.level
		c.next++
		return
	}
	c.pos = max(c.pos, c.end)
}

// AdvanceTo moves to sample, applying every transition at or before it.
func (c *Channel) AdvanceTo(sample uint64) {
	if sample <= c.pos {
		return
	}
	i, _ := slices.BinarySearch(c.edges[c.next:], sample+1)
	if i%2 == 1 {
		c.level = !c.level
	}
	c.next += i
	c.pos = sample
}
