package activity

import (
	"context"
	"testing"
)

type capturingHook struct {
	events []Event
}

func (h *capturingHook) Notify(_ context.Context, evt Event) error {
	h.events = append(h.events, evt)
	return nil
}

func TestEmitterDeliversSessionEvents(t *testing.T) {
	hook := &capturingHook{}
	em := NewEmitter(Hooks{hook}, Config{Enabled: true})
	if !em.Enabled() {
		t.Fatalf("expected emitter enabled with hooks and config")
	}

	err := em.Emit(context.Background(), Event{
		Verb:       "session.logout",
		ActorID:    "ada@example.com",
		ObjectType: "session",
		ObjectID:   "dashboard-store",
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(hook.events) != 1 {
		t.Fatalf("expected one event, got %d", len(hook.events))
	}
	if hook.events[0].Channel != DefaultChannel {
		t.Fatalf("expected default channel, got %q", hook.events[0].Channel)
	}
}

func TestEmitterConfiguredChannelApplies(t *testing.T) {
	hook := &capturingHook{}
	em := NewEmitter(Hooks{hook}, Config{Enabled: true, Channel: "audit"})

	if err := em.Emit(context.Background(), Event{
		Verb:       "sidebar.toggle",
		ObjectType: "session",
		ObjectID:   "dashboard-store",
	}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if hook.events[0].Channel != "audit" {
		t.Fatalf("expected configured channel, got %q", hook.events[0].Channel)
	}
}

func TestEmitterDisabledStates(t *testing.T) {
	if em := NewEmitter(nil, Config{Enabled: true}); em.Enabled() {
		t.Fatalf("expected emitter without hooks disabled")
	}
	hook := &capturingHook{}
	em := NewEmitter(Hooks{hook}, Config{})
	if em.Enabled() {
		t.Fatalf("expected emitter disabled by config")
	}
	if err := em.Emit(context.Background(), Event{
		Verb:       "session.login",
		ObjectType: "session",
		ObjectID:   "dashboard-store",
	}); err != nil {
		t.Fatalf("emit while disabled: %v", err)
	}
	if len(hook.events) != 0 {
		t.Fatalf("expected no delivery while disabled, got %d", len(hook.events))
	}
}
