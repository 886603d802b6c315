package activity

import "context"

// Config controls whether activity emission is active.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter publishes activity events to its hooks when enabled.
type Emitter struct {
	hooks Hooks
	cfg   Config
}

// NewEmitter builds an emitter. An emitter without hooks reports disabled.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	return &Emitter{hooks: hooks, cfg: cfg}
}

// Enabled reports whether events will actually be delivered.
func (e *Emitter) Enabled() bool {
	return e != nil && e.cfg.Enabled && len(e.hooks) > 0
}

// Emit publishes the event when enabled. The configured channel applies when
// the event does not set its own.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	if evt.Channel == "" && e.cfg.Channel != "" {
		evt.Channel = e.cfg.Channel
	}
	return e.hooks.Notify(ctx, evt)
}
