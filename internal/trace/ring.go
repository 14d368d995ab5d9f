package trace

import (
	"io"
	"sync"
)

// DefaultRingSize is the number of events a ring tracer keeps when no size
// is given.
const DefaultRingSize = 4096

// RingTracer keeps the most recent events in memory so a failing command
// can dump what led up to it.
type RingTracer struct {
	mu     sync.RWMutex
	events []Event
	total  uint64 // events ever stored; total % len(events) is the next slot
	level  Level
}

// NewRingTracer returns a ring holding up to size events at level.
func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingTracer{events: make([]Event, size), level: level}
}

// Emit stores ev, overwriting the oldest event once the ring is full.
// Heartbeats are kept at every level.
func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	t.events[t.total%uint64(len(t.events))] = *ev
	t.total++
	t.mu.Unlock()
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	size := uint64(len(t.events))
	if t.total <= size {
		return append([]Event(nil), t.events[:t.total]...)
	}
	start := t.total % size
	out := make([]Event, 0, size)
	out = append(out, t.events[start:]...)
	return append(out, t.events[:start]...)
}

// Dump writes the snapshot to w, one formatted event per line.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

// Flush does nothing; events live in memory.
func (t *RingTracer) Flush() error { return nil }

// Close does nothing; events stay available to Snapshot.
func (t *RingTracer) Close() error { return nil }

// Level returns the level the ring was created with.
func (t *RingTracer) Level() Level { return t.level }

// Enabled reports whether the ring records anything.
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
