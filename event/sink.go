package event

// Sink receives decoded events.
type Sink interface {
	// Emit buffers one event.
	Emit(Event)

	// Commit publishes every event emitted since the previous commit.
	Commit()
}

// Recorder is a Sink that keeps events in memory.
type Recorder struct {
	events    []Event
	committed int
	commits   int
}

var _ Sink = (*Recorder)(nil)

// Emit implements Sink.
func (r *Recorder) Emit(e Event) {
	r.events = append(r.events, e)
}

// Commit implements Sink.
func (r *Recorder) Commit() {
	r.committed = len(r.events)
	r.commits++
}

// Events returns the committed events.
func (r *Recorder) Events() []Event {
	return r.events[:r.committed]
}

// Pending returns the number of emitted but uncommitted events.
func (r *Recorder) Pending() int {
	return len(r.events) - r.committed
}

// Commits returns the number of Commit calls.
func (r *Recorder) Commits() int {
	return r.commits
}

// Reset discards everything recorded.
func (r *Recorder) Reset() {
	r.events = r.events[:0]
	r.committed = 0
	r.commits = 0
}

// Filter returns the committed events of kind k.
func (r *Recorder) Filter(k Kind) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Kind() == k {
			out = append(out, e)
		}
	}
	return out
}

// Fields returns the committed control transfer fields.
func (r *Recorder) Fields() []Field {
	var out []Field
	for _, e := range r.Events() {
		if f, ok := e.(Field); ok {
			out = append(out, f)
		}
	}
	return out
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Emit(Event) {}
func (discard) Commit()    {}
