package signal

import (
	"github.com/ardnew/usbdecode/usb"
)

// Skew thresholds in nanoseconds within which D+ and D- transitions are
// merged.
const (
	coincidenceFull = 50.0
	coincidenceLow  = 300.0
)

// glitchWindow is the widest pulse, in nanoseconds, treated as noise.
const glitchWindow = 20.0

// Filter produces filtered bus states from a D+/D- channel pair.
//
// The configured speed selects the skew threshold for the whole capture.
// The current speed, which the packet assembler may switch after a PRE
// token, selects the J/K polarity and whether glitch suppression applies.
type Filter struct {
	dp, dm     Channel
	sampleDur  float64
	configured usb.Speed
	speed      usb.Speed
	stateStart uint64
	glitch     uint64
}

// NewFilter creates a filter over dp and dm sampled at sampleRate Hz.
func NewFilter(dp, dm Channel, sampleRate uint64, speed usb.Speed) *Filter {
	sampleDur := 1e9 / float64(sampleRate)
	glitch := uint64(glitchWindow / sampleDur)
	if glitch < 1 {
		glitch = 1
	}
	return &Filter{
		dp:         dp,
		dm:         dm,
		sampleDur:  sampleDur,
		configured: speed,
		speed:      speed,
		stateStart: dp.Position(),
		glitch:     glitch,
	}
}

// SampleDuration returns the length of one sample in nanoseconds.
func (f *Filter) SampleDuration() float64 {
	return f.sampleDur
}

// Speed returns the current bus speed.
func (f *Filter) Speed() usb.Speed {
	return f.speed
}

// SetSpeed changes the current bus speed.
func (f *Filter) SetSpeed(speed usb.Speed) {
	f.speed = speed
}

// ConfiguredSpeed returns the speed the filter was created with.
func (f *Filter) ConfiguredSpeed() usb.Speed {
	return f.configured
}

// More reports whether either channel has transitions left.
func (f *Filter) More() bool {
	return f.dp.HasMoreEdges() || f.dm.HasMoreEdges()
}

// Next returns the state at the current position and advances both
// channels past it.
func (f *Filter) Next() BusState {
	s := BusState{
		State: LineState(f.dp.Level(), f.dm.Level(), f.speed),
		Start: f.stateStart,
	}
	f.stateStart = f.advance()
	s.End = f.stateStart
	if s.End > s.Start {
		s.Duration = float64(s.End-s.Start) * f.sampleDur
	}
	return s
}

// advance moves both channels to the next accepted transition and returns
// its filtered sample position.
func (f *Filter) advance() uint64 {
	var nearer, further Channel
	var nextNearer, nextFurther uint64

	for {
		if f.dp.NextEdge() > f.dm.NextEdge() {
			further, nearer = f.dp, f.dm
		} else {
			further, nearer = f.dm, f.dp
		}
		nextFurther = further.NextEdge()
		nextNearer = nearer.NextEdge()

		nearer.AdvanceToNextEdge()
		further.AdvanceTo(nextNearer)
		if !f.skipNoise(nearer, further) {
			break
		}
	}

	threshold := coincidenceFull
	if f.configured == usb.SpeedLow {
		threshold = coincidenceLow
	}

	// A lone transition on the nearer line followed closely by one on the
	// further line is a single skewed differential transition.
	diff := nextFurther - nextNearer
	if !transitionsBy(nearer, nextFurther) && float64(diff)*f.sampleDur <= threshold {
		for {
			nearer.AdvanceTo(nextFurther)
			further.AdvanceTo(nextFurther)
			if !f.skipNoise(further, nearer) {
				break
			}
			further.AdvanceToNextEdge()
			nextFurther = further.Position()
		}
		return (nextNearer + nextFurther) / 2
	}

	return nextNearer
}

// skipNoise swallows a glitch on ch that ends within the glitch window,
// moving other to the same position. It reports whether a glitch was
// skipped.
func (f *Filter) skipNoise(ch, other Channel) bool {
	if f.sampleDur > glitchWindow || f.speed == usb.SpeedFull {
		return false
	}
	if !transitionsWithin(ch, f.glitch) {
		return false
	}
	ch.AdvanceToNextEdge()
	other.AdvanceTo(ch.Position())
	return true
}
