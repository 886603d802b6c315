package commands

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-storefront-admin/components/commerce"
)

// SetThemeInput selects an explicit visual mode.
type SetThemeInput struct {
	Theme commerce.Theme
}

// SetThemeCommand applies a theme selection.
type SetThemeCommand struct {
	store     *commerce.Store
	telemetry Telemetry
}

// NewSetThemeCommand creates the command.
func NewSetThemeCommand(store *commerce.Store, telemetry Telemetry) *SetThemeCommand {
	return &SetThemeCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetThemeInput] = (*SetThemeCommand)(nil)

// Execute applies the theme. Unknown values are rejected before the store is
// touched.
func (c *SetThemeCommand) Execute(ctx context.Context, msg SetThemeInput) error {
	if c.store == nil {
		return errMissingStore
	}
	if !msg.Theme.Valid() {
		return fmt.Errorf("commands: unknown theme %q", msg.Theme)
	}
	c.store.SetTheme(msg.Theme)
	c.telemetry.Record(ctx, "admin.preferences.theme", map[string]any{
		"theme": string(msg.Theme),
	})
	return nil
}

// ToggleThemeInput flips between light and dark.
type ToggleThemeInput struct{}

// ToggleThemeCommand flips the visual mode.
type ToggleThemeCommand struct {
	store     *commerce.Store
	telemetry Telemetry
}

// NewToggleThemeCommand creates the command.
func NewToggleThemeCommand(store *commerce.Store, telemetry Telemetry) *ToggleThemeCommand {
	return &ToggleThemeCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleThemeInput] = (*ToggleThemeCommand)(nil)

// Execute toggles the theme.
func (c *ToggleThemeCommand) Execute(ctx context.Context, _ ToggleThemeInput) error {
	if c.store == nil {
		return errMissingStore
	}
	c.store.ToggleTheme()
	c.telemetry.Record(ctx, "admin.preferences.theme_toggle", map[string]any{
		"theme": string(c.store.Snapshot().Theme),
	})
	return nil
}

// SetSidebarInput pins the sidebar state.
type SetSidebarInput struct {
	Collapsed bool
}

// SetSidebarCommand applies an explicit sidebar state.
type SetSidebarCommand struct {
	store     *commerce.Store
	telemetry Telemetry
}

// NewSetSidebarCommand creates the command.
func NewSetSidebarCommand(store *commerce.Store, telemetry Telemetry) *SetSidebarCommand {
	return &SetSidebarCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetSidebarInput] = (*SetSidebarCommand)(nil)

// Execute pins the sidebar.
func (c *SetSidebarCommand) Execute(ctx context.Context, msg SetSidebarInput) error {
	if c.store == nil {
		return errMissingStore
	}
	c.store.SetSidebarCollapsed(msg.Collapsed)
	c.telemetry.Record(ctx, "admin.preferences.sidebar", map[string]any{
		"collapsed": msg.Collapsed,
	})
	return nil
}

// ToggleSidebarInput flips the sidebar state.
type ToggleSidebarInput struct{}

// ToggleSidebarCommand flips the sidebar state.
type ToggleSidebarCommand struct {
	store     *commerce.Store
	telemetry Telemetry
}

// NewToggleSidebarCommand creates the command.
func NewToggleSidebarCommand(store *commerce.Store, telemetry Telemetry) *ToggleSidebarCommand {
	return &ToggleSidebarCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleSidebarInput] = (*ToggleSidebarCommand)(nil)

// Execute toggles the sidebar.
func (c *ToggleSidebarCommand) Execute(ctx context.Context, _ ToggleSidebarInput) error {
	if c.store == nil {
		return errMissingStore
	}
	c.store.ToggleSidebar()
	c.telemetry.Record(ctx, "admin.preferences.sidebar_toggle", nil)
	return nil
}
