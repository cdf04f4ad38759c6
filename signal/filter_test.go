package signal

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/usbdecode/usb"
)

// edges is a minimal Channel over a sorted transition list.
type edges struct {
	level bool
	pos   uint64
	end   uint64
	list  []uint64
	next  int
}

func newEdges(level bool, end uint64, list ...uint64) *edges {
	return &edges{level: level, end: end, list: list}
}

func (e *edges) Position() uint64   { return e.pos }
func (e *edges) Level() bool        { return e.level }
func (e *edges) HasMoreEdges() bool { return e.next < len(e.list) }

func (e *edges) NextEdge() uint64 {
	if e.next < len(e.list) {
		return e.list[e.next]
	}
	return max(e.pos, e.end)
}

func (e *edges) AdvanceToNextEdge() {
	if e.next < len(e.list) {
		e.pos = e.list[e.next]
		e.level = !e.level
		e.next++
		return
	}
	e.pos = max(e.pos, e.end)
}

func (e *edges) AdvanceTo(sample uint64) {
	if sample <= e.pos {
		return
	}
	for e.next < len(e.list) && e.list[e.next] <= sample {
		e.level = !e.level
		e.next++
	}
	e.pos = sample
}

// collect drains the filter, returning every state with its duration
// cleared for easier comparison.
func collect(f *Filter) []BusState {
	var states []BusState
	for f.More() {
		s := f.Next()
		s.Duration = 0
		states = append(states, s)
	}
	return states
}

func TestLineState(t *testing.T) {
	tests := []struct {
		dp, dm bool
		speed  usb.Speed
		want   State
	}{
		{false, false, usb.SpeedFull, SE0},
		{true, true, usb.SpeedFull, SE1},
		{true, false, usb.SpeedFull, J},
		{false, true, usb.SpeedFull, K},
		{false, false, usb.SpeedLow, SE0},
		{true, true, usb.SpeedLow, SE1},
		{false, true, usb.SpeedLow, J},
		{true, false, usb.SpeedLow, K},
	}

	for _, tt := range tests {
		if got := LineState(tt.dp, tt.dm, tt.speed); got != tt.want {
			t.Errorf("LineState(%v, %v, %v) = %v, want %v", tt.dp, tt.dm, tt.speed, got, tt.want)
		}
	}
}

func TestBusStateIsData(t *testing.T) {
	fs := usb.BitTimeFull
	ls := usb.BitTimeLow

	tests := []struct {
		name   string
		state  BusState
		speed  usb.Speed
		isData bool
		bits   int
	}{
		{"fs one bit", BusState{State: K, Duration: fs}, usb.SpeedFull, true, 1},
		{"fs seven bits", BusState{State: J, Duration: 7 * fs}, usb.SpeedFull, true, 7},
		{"fs short pulse", BusState{State: J, Duration: 0.2 * fs}, usb.SpeedFull, false, 0},
		{"fs too long", BusState{State: J, Duration: 8 * fs}, usb.SpeedFull, false, 8},
		{"fs se0", BusState{State: SE0, Duration: 2 * fs}, usb.SpeedFull, false, 2},
		{"ls one bit", BusState{State: K, Duration: ls}, usb.SpeedLow, true, 1},
		{"ls under tolerance", BusState{State: K, Duration: 0.6 * ls}, usb.SpeedLow, false, 1},
		{"ls six bits", BusState{State: J, Duration: 6 * ls}, usb.SpeedLow, true, 6},
		{"se1", BusState{State: SE1, Duration: ls}, usb.SpeedLow, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsData(tt.speed); got != tt.isData {
				t.Errorf("IsData() = %v, want %v", got, tt.isData)
			}
			if got := tt.state.NumBits(tt.speed); got != tt.bits {
				t.Errorf("NumBits() = %d, want %d", got, tt.bits)
			}
		})
	}
}

func TestFilterDifferential(t *testing.T) {
	// 100 MHz, full speed, J idle: D+ high, D- low.
	dp := newEdges(true, 400, 100, 200, 300)
	dm := newEdges(false, 400, 100, 200, 300)
	f := NewFilter(dp, dm, 100_000_000, usb.SpeedFull)

	want := []BusState{
		{State: J, Start: 0, End: 100},
		{State: K, Start: 100, End: 200},
		{State: J, Start: 200, End: 300},
	}
	if diff := cmp.Diff(want, collect(f)); diff != "" {
		t.Errorf("states mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterDuration(t *testing.T) {
	dp := newEdges(true, 100, 50)
	dm := newEdges(false, 100, 50)
	f := NewFilter(dp, dm, 100_000_000, usb.SpeedFull)

	s := f.Next()
	if s.Duration != 500 {
		t.Errorf("Duration = %v, want 500", s.Duration)
	}
}

func TestFilterSkew(t *testing.T) {
	tests := []struct {
		name string
		skew uint64
		want []BusState
	}{
		{
			name: "merged within threshold",
			skew: 3,
			want: []BusState{
				{State: J, Start: 0, End: 101},
				{State: K, Start: 101, End: 201},
			},
		},
		{
			name: "separate beyond threshold",
			skew: 8,
			want: []BusState{
				{State: J, Start: 0, End: 100},
				{State: SE0, Start: 100, End: 108},
				{State: K, Start: 108, End: 200},
				{State: SE1, Start: 200, End: 208},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dp := newEdges(true, 400, 100, 200)
			dm := newEdges(false, 400, 100+tt.skew, 200+tt.skew)
			f := NewFilter(dp, dm, 100_000_000, usb.SpeedFull)

			if diff := cmp.Diff(tt.want, collect(f)); diff != "" {
				t.Errorf("states mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterGlitch(t *testing.T) {
	tests := []struct {
		name  string
		speed usb.Speed
		dp    bool
		dm    bool
		want  []BusState
	}{
		{
			name:  "absorbed at low speed",
			speed: usb.SpeedLow,
			dp:    false,
			dm:    true,
			want: []BusState{
				{State: J, Start: 0, End: 1000},
			},
		},
		{
			name:  "kept at full speed",
			speed: usb.SpeedFull,
			dp:    true,
			dm:    false,
			want: []BusState{
				{State: J, Start: 0, End: 500},
				{State: SE0, Start: 500, End: 501},
				{State: J, Start: 501, End: 1000},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// one-sample pulse on D+ at 500, then a real transition at 1000
			dp := newEdges(tt.dp, 2000, 500, 501, 1000)
			dm := newEdges(tt.dm, 2000, 1000)
			f := NewFilter(dp, dm, 100_000_000, tt.speed)

			if diff := cmp.Diff(tt.want, collect(f)); diff != "" {
				t.Errorf("states mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterGlitchNeedsFastSampling(t *testing.T) {
	// 40 MHz is 25 ns per sample, too slow for glitch suppression.
	dp := newEdges(false, 2000, 500, 501, 1000)
	dm := newEdges(true, 2000, 1000)
	f := NewFilter(dp, dm, 40_000_000, usb.SpeedLow)

	states := collect(f)
	if len(states) != 3 {
		t.Fatalf("len(states) = %d, want 3: %v", len(states), states)
	}
	if states[1].State != SE1 {
		t.Errorf("states[1].State = %v, want SE1", states[1].State)
	}
}

func TestFilterExhausted(t *testing.T) {
	dp := newEdges(true, 100)
	dm := newEdges(false, 100)
	f := NewFilter(dp, dm, 100_000_000, usb.SpeedFull)

	if f.More() {
		t.Fatal("More() = true, want false")
	}
	s := f.Next()
	if s.IsData(usb.SpeedFull) {
		t.Errorf("exhausted state %v reported as data", s)
	}
	again := f.Next()
	if again.Start != s.End {
		t.Errorf("Start = %d, want %d", again.Start, s.End)
	}
}

func TestFilterSpeed(t *testing.T) {
	dp := newEdges(false, 10)
	dm := newEdges(true, 10)
	f := NewFilter(dp, dm, 24_000_000, usb.SpeedFull)

	if got := f.Next().State; got != K {
		t.Errorf("State = %v, want K at full speed", got)
	}
	f.SetSpeed(usb.SpeedLow)
	if f.Speed() != usb.SpeedLow {
		t.Errorf("Speed() = %v, want %v", f.Speed(), usb.SpeedLow)
	}
	if f.ConfiguredSpeed() != usb.SpeedFull {
		t.Errorf("ConfiguredSpeed() = %v, want %v", f.ConfiguredSpeed(), usb.SpeedFull)
	}
	if got := f.Next().State; got != J {
		t.Errorf("State = %v, want J at low speed", got)
	}
}
