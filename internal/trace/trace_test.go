package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"off", LevelOff, true},
		{"ERROR", LevelError, true},
		{"phase", LevelPhase, true},
		{"Detail", LevelDetail, true},
		{"debug", LevelDebug, true},
		{"loud", LevelOff, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeCommand, false},
		{LevelError, ScopeCommand, false},
		{LevelPhase, ScopeCommand, true},
		{LevelPhase, ScopeJob, false},
		{LevelDetail, ScopeJob, true},
		{LevelDetail, ScopeStep, false},
		{LevelDebug, ScopeStep, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v", tt.level, tt.scope, got)
		}
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	cmd := Begin(tr, ScopeCommand, "scan", 0)
	job := Begin(tr, ScopeJob, "candidate", cmd.ID())
	Begin(tr, ScopeStep, "isprime", job.ID()).End("")
	job.WithExtra("prime", "true").WithExtra("cached", "false").End("M127")
	cmd.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "→ scan") || !strings.Contains(lines[1], "  → candidate") {
		t.Fatalf("begin lines = %q", lines[:2])
	}
	if !strings.HasSuffix(lines[2], "← candidate (M127) {cached=false, prime=true}") {
		t.Fatalf("end line = %q", lines[2])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Point(tr, ScopeCommand, "cache", "hit", 7)
	Point(tr, ScopeJob, "dropped", "", 0)

	var got struct {
		Kind     string `json:"kind"`
		Scope    string `json:"scope"`
		Name     string `json:"name"`
		Detail   string `json:"detail"`
		ParentID uint64 `json:"parent_id"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if got.Kind != "point" || got.Scope != "command" || got.Name != "cache" || got.Detail != "hit" || got.ParentID != 7 {
		t.Fatalf("event = %+v", got)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for i := range 5 {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeStep, Name: string(rune('a' + i))})
	}
	snap := r.Snapshot()
	var names []string
	for _, ev := range snap {
		names = append(names, ev.Name)
	}
	if strings.Join(names, "") != "cde" {
		t.Fatalf("snapshot = %v", names)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

func TestNewSelectsTracer(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off tracer = %v, %v", tr, err)
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*MultiTracer); !ok {
		t.Fatalf("both mode gave %T", tr)
	}
	Begin(tr, ScopeCommand, "eval", 0).End("")
	if buf.Len() == 0 {
		t.Fatalf("stream side saw nothing")
	}
	if _, err := New(Config{Level: LevelPhase, Mode: StorageMode(42)}); err == nil {
		t.Fatalf("unknown mode accepted")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context is not Nop")
	}
	r := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatalf("tracer not propagated")
	}
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 9})
	if CurrentSpan(ctx).SpanID != 9 {
		t.Fatalf("span context lost")
	}
}

func TestWithSpanNestsUnderOpenSpan(t *testing.T) {
	r := NewRingTracer(8, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	s := Begin(r, ScopeCommand, "factor", 0)
	ctx = WithSpan(ctx, s)
	got := CurrentSpan(ctx)
	if got.SpanID != s.ID() || got.Name != "factor" {
		t.Fatalf("current span = %+v, want id %d", got, s.ID())
	}
	if WithSpan(ctx, Begin(Nop, ScopeCommand, "x", 0)) != ctx {
		t.Fatalf("disabled span replaced the enclosing span")
	}
	if CurrentSpan(nil) != (SpanContext{}) {
		t.Fatalf("nil context has a span")
	}
}

func TestDisabledSpanIsInert(t *testing.T) {
	s := Begin(Nop, ScopeCommand, "x", 0)
	if s.End("") != 0 || s.ID() != 0 {
		t.Fatalf("nop span recorded")
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatalf("heartbeat started for disabled tracer")
	}
}

func TestHeartbeatEmits(t *testing.T) {
	r := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	snap := r.Snapshot()
	if len(snap) == 0 || snap[0].Kind != KindHeartbeat {
		t.Fatalf("no heartbeat recorded: %v", snap)
	}
}

func TestRingLookup(t *testing.T) {
	ring := NewRingTracer(4, LevelPhase)
	stream := NewStreamTracer(&bytes.Buffer{}, LevelPhase, FormatText)
	if Ring(ring) != ring {
		t.Fatal("ring tracer not returned")
	}
	if Ring(NewMultiTracer(LevelPhase, stream, ring)) != ring {
		t.Fatal("ring inside multi tracer not found")
	}
	if Ring(stream) != nil || Ring(Nop) != nil {
		t.Fatal("tracers without history should give nil")
	}
}
