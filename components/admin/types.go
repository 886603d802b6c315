package admin

import (
	"context"

	"github.com/goliatone/go-storefront-admin/components/commerce"
)

// Page identifiers for the dashboard shell. Each protected page owns a fixed
// widget layout resolved by the Service.
const (
	PageDashboard = "admin.page.dashboard"
	PageOrders    = "admin.page.orders"
	PageAnalytics = "admin.page.analytics"
	PageCustomers = "admin.page.customers"
)

// Viewer captures the signed-in operator rendering a page.
type Viewer struct {
	Name     string
	Email    string
	Role     commerce.Role
	LoggedIn bool
	Theme    commerce.Theme
}

// ViewerFromSnapshot derives a viewer from the current store state.
func ViewerFromSnapshot(snap commerce.Snapshot) Viewer {
	viewer := Viewer{
		LoggedIn: snap.LoggedIn,
		Theme:    snap.Theme,
	}
	if snap.User != nil {
		viewer.Name = snap.User.Name
		viewer.Email = snap.User.Email
		viewer.Role = snap.User.Role
	}
	return viewer
}

// WidgetData is the payload a provider produces for rendering.
type WidgetData map[string]any

// WidgetContext carries everything a provider needs to fetch data.
type WidgetContext struct {
	Instance WidgetInstance
	Viewer   Viewer
}

// Provider fetches the data behind a widget instance.
type Provider interface {
	Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(ctx context.Context, meta WidgetContext) (WidgetData, error)

// Fetch satisfies Provider.
func (f ProviderFunc) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	return f(ctx, meta)
}

// WidgetDefinition describes a widget type and its configuration schema.
type WidgetDefinition struct {
	Code        string         `json:"code" yaml:"code"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string         `json:"category,omitempty" yaml:"category,omitempty"`
	Schema      map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// WidgetInstance places a widget on a page with concrete configuration.
// Roles restricts visibility; an empty list means every signed-in role.
type WidgetInstance struct {
	ID            string         `json:"id" yaml:"id"`
	DefinitionID  string         `json:"definition_id" yaml:"definition_id"`
	Page          string         `json:"page" yaml:"page"`
	Configuration map[string]any `json:"configuration,omitempty" yaml:"configuration,omitempty"`
	Roles         []string       `json:"roles,omitempty" yaml:"roles,omitempty"`
}

// PageLayout is the ordered widget list for one page.
type PageLayout struct {
	Page    string           `json:"page" yaml:"page"`
	Widgets []WidgetInstance `json:"widgets" yaml:"widgets"`
}

// ResolvedWidget pairs an instance with its fetched data.
type ResolvedWidget struct {
	Instance WidgetInstance
	Data     WidgetData
}

// PageView is the fully resolved content of a page for one viewer.
type PageView struct {
	Page    string
	Widgets []ResolvedWidget
}

// Authorizer decides whether a viewer can see a widget instance.
type Authorizer interface {
	CanViewWidget(ctx context.Context, viewer Viewer, instance WidgetInstance) bool
}

// ConfigValidator validates widget configuration payloads against their schema.
type ConfigValidator interface {
	Validate(def WidgetDefinition, config map[string]any) error
}

// ProviderRegistry stores widget definitions and providers.
type ProviderRegistry interface {
	RegisterDefinition(def WidgetDefinition) error
	RegisterProvider(code string, provider Provider) error
	Definition(code string) (WidgetDefinition, bool)
	Provider(code string) (Provider, bool)
	Definitions() []WidgetDefinition
}

// RoleAuthorizer gates widgets on the viewer's role.
type RoleAuthorizer struct{}

// CanViewWidget allows unrestricted widgets and role matches.
func (RoleAuthorizer) CanViewWidget(_ context.Context, viewer Viewer, instance WidgetInstance) bool {
	if len(instance.Roles) == 0 {
		return true
	}
	for _, role := range instance.Roles {
		if role == string(viewer.Role) {
			return true
		}
	}
	return false
}
