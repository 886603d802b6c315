package commands

import (
	"context"
	"fmt"
	"time"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-storefront-admin/components/commerce"
)

// SetDateRangeInput selects a preset date window.
type SetDateRangeInput struct {
	Range commerce.DateRange
}

// SetDateRangeCommand applies a preset date range to the order filters.
type SetDateRangeCommand struct {
	store     *commerce.Store
	telemetry Telemetry
}

// NewSetDateRangeCommand creates the command.
func NewSetDateRangeCommand(store *commerce.Store, telemetry Telemetry) *SetDateRangeCommand {
	return &SetDateRangeCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetDateRangeInput] = (*SetDateRangeCommand)(nil)

// Execute applies the preset. Unknown presets are rejected.
func (c *SetDateRangeCommand) Execute(ctx context.Context, msg SetDateRangeInput) error {
	if c.store == nil {
		return errMissingStore
	}
	if !msg.Range.Valid() {
		return fmt.Errorf("commands: unknown date range %q", msg.Range)
	}
	c.store.SetDateRange(msg.Range)
	c.telemetry.Record(ctx, "admin.filters.range", map[string]any{
		"range": string(msg.Range),
	})
	return nil
}

// SetCustomDateRangeInput carries explicit window bounds. Both bounds are
// applied in a single transition.
type SetCustomDateRangeInput struct {
	Start time.Time
	End   time.Time
}

// SetCustomDateRangeCommand applies a custom date window.
type SetCustomDateRangeCommand struct {
	store     *commerce.Store
	telemetry Telemetry
}

// NewSetCustomDateRangeCommand creates the command.
func NewSetCustomDateRangeCommand(store *commerce.Store, telemetry Telemetry) *SetCustomDateRangeCommand {
	return &SetCustomDateRangeCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetCustomDateRangeInput] = (*SetCustomDateRangeCommand)(nil)

// Execute applies both bounds atomically.
func (c *SetCustomDateRangeCommand) Execute(ctx context.Context, msg SetCustomDateRangeInput) error {
	if c.store == nil {
		return errMissingStore
	}
	if !msg.Start.IsZero() && !msg.End.IsZero() && msg.End.Before(msg.Start) {
		return fmt.Errorf("commands: custom range end precedes start")
	}
	c.store.SetCustomDateRange(msg.Start, msg.End)
	c.telemetry.Record(ctx, "admin.filters.custom_range", map[string]any{
		"start": msg.Start,
		"end":   msg.End,
	})
	return nil
}

// SetCategoricalFilterInput updates one of the three equality filters.
type SetCategoricalFilterInput struct {
	Kind  CategoricalFilterKind
	Value string
}

// CategoricalFilterKind names the equality filter being updated.
type CategoricalFilterKind string

// Supported categorical filter kinds.
const (
	FilterCategory      CategoricalFilterKind = "category"
	FilterOrderStatus   CategoricalFilterKind = "orderStatus"
	FilterPaymentStatus CategoricalFilterKind = "paymentStatus"
)

// SetCategoricalFilterCommand routes a filter update to the store.
type SetCategoricalFilterCommand struct {
	store     *commerce.Store
	telemetry Telemetry
}

// NewSetCategoricalFilterCommand creates the command.
func NewSetCategoricalFilterCommand(store *commerce.Store, telemetry Telemetry) *SetCategoricalFilterCommand {
	return &SetCategoricalFilterCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetCategoricalFilterInput] = (*SetCategoricalFilterCommand)(nil)

// Execute applies the filter value. The store ignores unknown variants, so an
// invalid value leaves state untouched rather than failing the request.
func (c *SetCategoricalFilterCommand) Execute(ctx context.Context, msg SetCategoricalFilterInput) error {
	if c.store == nil {
		return errMissingStore
	}
	switch msg.Kind {
	case FilterCategory:
		c.store.SetCategoryFilter(msg.Value)
	case FilterOrderStatus:
		c.store.SetOrderStatusFilter(msg.Value)
	case FilterPaymentStatus:
		c.store.SetPaymentStatusFilter(msg.Value)
	default:
		return fmt.Errorf("commands: unknown filter kind %q", msg.Kind)
	}
	c.telemetry.Record(ctx, "admin.filters.categorical", map[string]any{
		"kind":  string(msg.Kind),
		"value": msg.Value,
	})
	return nil
}

// SetSearchInput updates the free-text search query.
type SetSearchInput struct {
	Query string
}

// SetSearchCommand applies the search query.
type SetSearchCommand struct {
	store     *commerce.Store
	telemetry Telemetry
}

// NewSetSearchCommand creates the command.
func NewSetSearchCommand(store *commerce.Store, telemetry Telemetry) *SetSearchCommand {
	return &SetSearchCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetSearchInput] = (*SetSearchCommand)(nil)

// Execute applies the query.
func (c *SetSearchCommand) Execute(ctx context.Context, msg SetSearchInput) error {
	if c.store == nil {
		return errMissingStore
	}
	c.store.SetSearchQuery(msg.Query)
	c.telemetry.Record(ctx, "admin.filters.search", map[string]any{
		"length": len(msg.Query),
	})
	return nil
}

// ResetFiltersInput restores the default filter state.
type ResetFiltersInput struct{}

// ResetFiltersCommand restores the default filter state.
type ResetFiltersCommand struct {
	store     *commerce.Store
	telemetry Telemetry
}

// NewResetFiltersCommand creates the command.
func NewResetFiltersCommand(store *commerce.Store, telemetry Telemetry) *ResetFiltersCommand {
	return &ResetFiltersCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResetFiltersInput] = (*ResetFiltersCommand)(nil)

// Execute resets every filter to its default.
func (c *ResetFiltersCommand) Execute(ctx context.Context, _ ResetFiltersInput) error {
	if c.store == nil {
		return errMissingStore
	}
	c.store.ResetFilters()
	c.telemetry.Record(ctx, "admin.filters.reset", nil)
	return nil
}
