package scan

import "sync"

// Status is the state of one candidate.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusPrime
	StatusComposite
	StatusError
)

// String returns the label shown for the status.
func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "testing"
	case StatusPrime:
		return "prime"
	case StatusComposite:
		return "composite"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Done reports whether the candidate reached a final state.
func (s Status) Done() bool {
	return s == StatusPrime || s == StatusComposite || s == StatusError
}

// Event reports a status change for the candidate at Index.
type Event struct {
	Index  int
	Label  string
	Status Status
	Cached bool
}

// Sink receives scan events. Emit is called from worker goroutines and
// must be safe for concurrent use.
type Sink interface {
	Emit(ev Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev Event)

// Emit calls f(ev).
func (f SinkFunc) Emit(ev Event) { f(ev) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// ChannelSink forwards events to a channel, e.g. for a progress view.
type ChannelSink chan<- Event

// Emit sends ev, blocking until the receiver takes it.
func (c ChannelSink) Emit(ev Event) { c <- ev }

// Recorder keeps every event it receives.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Emit records ev.
func (r *Recorder) Emit(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
