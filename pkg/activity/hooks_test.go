package activity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHooksNotifyDropsInvalidEvents(t *testing.T) {
	var delivered []Event
	hooks := Hooks{
		HookFunc(func(_ context.Context, evt Event) error {
			delivered = append(delivered, evt)
			return nil
		}),
	}

	if err := hooks.Notify(context.Background(), Event{Verb: "session.login"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(delivered) != 0 {
		t.Fatalf("expected event without object dropped, got %#v", delivered)
	}

	if err := hooks.Notify(context.Background(), Event{
		Verb:       " session.login ",
		ObjectType: " session ",
		ObjectID:   " dashboard-store ",
		ActorID:    "ada@example.com",
	}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(delivered) != 1 {
		t.Fatalf("expected one delivery, got %d", len(delivered))
	}
	evt := delivered[0]
	if evt.Verb != "session.login" || evt.ObjectType != "session" || evt.ObjectID != "dashboard-store" {
		t.Fatalf("expected trimmed fields, got %#v", evt)
	}
	if evt.Channel != DefaultChannel {
		t.Fatalf("expected default channel, got %q", evt.Channel)
	}
	if evt.OccurredAt.IsZero() {
		t.Fatalf("expected timestamp defaulted")
	}
}

func TestHooksNotifyJoinsFailures(t *testing.T) {
	boom := errors.New("sink down")
	var secondCalled bool
	hooks := Hooks{
		HookFunc(func(context.Context, Event) error { return boom }),
		HookFunc(func(context.Context, Event) error {
			secondCalled = true
			return nil
		}),
	}

	err := hooks.Notify(context.Background(), Event{
		Verb:       "theme.toggle",
		ObjectType: "session",
		ObjectID:   "dashboard-store",
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected hook failure surfaced, got %v", err)
	}
	if !secondCalled {
		t.Fatalf("expected remaining hooks still notified")
	}
}

func TestNormalizeEventClonesMutableMembers(t *testing.T) {
	occurred := time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC)
	evt := Event{
		Verb:       "filters.reset",
		ObjectType: "filters",
		ObjectID:   "dashboard-store",
		Metadata:   map[string]any{"dateRange": "last30days"},
		Recipients: []string{"ops@example.com"},
		OccurredAt: occurred,
	}

	normalized := NormalizeEvent(evt)
	normalized.Metadata["dateRange"] = "thisYear"
	normalized.Recipients[0] = "audit@example.com"

	if evt.Metadata["dateRange"] != "last30days" {
		t.Fatalf("metadata aliased: %#v", evt.Metadata)
	}
	if evt.Recipients[0] != "ops@example.com" {
		t.Fatalf("recipients aliased: %#v", evt.Recipients)
	}
	if !normalized.OccurredAt.Equal(occurred) {
		t.Fatalf("expected explicit timestamp preserved, got %v", normalized.OccurredAt)
	}
}
