package storefront

import (
	"context"
	"sync"
	"testing"

	"github.com/goliatone/go-storefront-admin/components/commerce"
	"github.com/goliatone/go-storefront-admin/pkg/activity"
)

func TestNewWiresCollaborators(t *testing.T) {
	app, err := New(Config{Seed: 42})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if app.Store == nil || app.Registry == nil || app.Service == nil ||
		app.Controller == nil || app.Executor == nil || app.Broadcast == nil {
		t.Fatalf("expected every collaborator wired, got %#v", app)
	}
	if app.Store.Snapshot().LoggedIn {
		t.Fatalf("expected logged-out store without auto-login")
	}
}

func TestNewAppliesAutoLogin(t *testing.T) {
	app, err := New(Config{
		Seed: 42,
		AutoLoginUser: &commerce.User{
			Name:  "Demo Admin",
			Email: "demo@example.com",
			Role:  commerce.RoleAdmin,
		},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	snap := app.Store.Snapshot()
	if !snap.LoggedIn || snap.User == nil || snap.User.Email != "demo@example.com" {
		t.Fatalf("expected auto-login applied, got %#v", snap)
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	first, err := New(Config{Seed: 42, SessionDir: dir})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	first.Store.Login(commerce.User{Name: "Ada", Email: "ada@example.com", Role: commerce.RoleManager})
	first.Store.SetTheme(commerce.ThemeLight)

	second, err := New(Config{Seed: 42, SessionDir: dir})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	snap := second.Store.Snapshot()
	if !snap.LoggedIn || snap.User == nil || snap.User.Email != "ada@example.com" {
		t.Fatalf("expected persisted session restored, got %#v", snap)
	}
	if snap.Theme != commerce.ThemeLight {
		t.Fatalf("expected persisted theme, got %q", snap.Theme)
	}
	if snap.Filters.Range != commerce.RangeLast30Days {
		t.Fatalf("expected filters reset to defaults on boot, got %#v", snap.Filters)
	}
}

type collectingActivityHook struct {
	mu     sync.Mutex
	events []activity.Event
}

func (h *collectingActivityHook) Notify(_ context.Context, event activity.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return nil
}

func (h *collectingActivityHook) snapshot() []activity.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]activity.Event(nil), h.events...)
}

func TestActivityEmitterObservesTransitions(t *testing.T) {
	hook := &collectingActivityHook{}
	app, err := New(Config{
		Seed:           42,
		ActivityHooks:  activity.Hooks{hook},
		ActivityConfig: activity.Config{Enabled: true},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	app.Store.Login(commerce.User{Name: "Ada", Email: "ada@example.com", Role: commerce.RoleAdmin})

	events := hook.snapshot()
	if len(events) == 0 {
		t.Fatalf("expected audit events emitted")
	}
	event := events[len(events)-1]
	if event.Verb != "session.login" || event.ActorID != "ada@example.com" {
		t.Fatalf("unexpected audit event %#v", event)
	}
	if event.ObjectID != commerce.SessionKey {
		t.Fatalf("expected session object id, got %q", event.ObjectID)
	}
}

func TestAuditEventMapsSnapshot(t *testing.T) {
	user := commerce.User{Name: "Ada", Email: "ada@example.com", Role: commerce.RoleAdmin}
	event := auditEvent(commerce.StateEvent{
		Reason: "theme.toggle",
		Snapshot: commerce.Snapshot{
			LoggedIn: true,
			User:     &user,
			Theme:    commerce.ThemeLight,
		},
	})
	if event.Verb != "theme.toggle" || event.ActorID != "ada@example.com" {
		t.Fatalf("unexpected event %#v", event)
	}
	if event.Metadata["theme"] != "light" || event.Metadata["logged_in"] != true {
		t.Fatalf("unexpected metadata %#v", event.Metadata)
	}
}
