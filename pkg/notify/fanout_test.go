package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeNotifier records deliveries and can inject a failure.
type fakeNotifier struct {
	id       string
	typ      string
	err      error
	received []Report
}

func (f *fakeNotifier) ID() string   { return f.id }
func (f *fakeNotifier) Type() string { return f.typ }
func (f *fakeNotifier) Notify(_ context.Context, report Report) error {
	f.received = append(f.received, report)
	return f.err
}

func TestFanoutDeliversToAllNotifiers(t *testing.T) {
	a := &fakeNotifier{id: "a", typ: TypeLog}
	b := &fakeNotifier{id: "b", typ: TypeLog}
	fanout := NewFanout([]Notifier{a, nil, b})

	if fanout.Size() != 2 {
		t.Fatalf("Size = %d, want 2 (nil filtered)", fanout.Size())
	}

	sent, err := fanout.Notify(context.Background(), testReport())
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if sent != 2 {
		t.Fatalf("sent = %d, want 2", sent)
	}
	if len(a.received) != 1 || len(b.received) != 1 {
		t.Fatalf("both notifiers should receive the report")
	}
}

func TestFanoutAggregatesFailures(t *testing.T) {
	good := &fakeNotifier{id: "good", typ: TypeLog}
	bad := &fakeNotifier{id: "bad", typ: TypeSlack, err: errors.New("webhook down")}
	fanout := NewFanout([]Notifier{good, bad})

	sent, err := fanout.Notify(context.Background(), testReport())
	if sent != 1 {
		t.Fatalf("sent = %d, want 1", sent)
	}
	if err == nil || !strings.Contains(err.Error(), "slack notifier[bad]") {
		t.Fatalf("err = %v", err)
	}
	// The failing sink must not block delivery to the healthy one.
	if len(good.received) != 1 {
		t.Fatalf("good notifier should still receive the report")
	}
}

func TestFanoutEmptyIsNoop(t *testing.T) {
	fanout := NewFanout(nil)
	sent, err := fanout.Notify(context.Background(), testReport())
	if sent != 0 || err != nil {
		t.Fatalf("empty fanout: sent=%d err=%v", sent, err)
	}
}
