package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-storefront-admin/components/commerce"
)

var (
	errMissingStore = errors.New("admin: commerce store not configured")
	errUnknownPage  = errors.New("admin: unknown page")
)

// Options configures the admin Service. Every collaborator is provided via
// interface so applications can swap implementations.
type Options struct {
	Store           *commerce.Store
	Authorizer      Authorizer
	Providers       ProviderRegistry
	ConfigValidator ConfigValidator
	Telemetry       Telemetry
	Layouts         []PageLayout
}

// Service resolves page layouts into rendered widget data for a viewer.
type Service struct {
	opts Options

	mu      sync.RWMutex
	layouts map[string]PageLayout
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Authorizer == nil {
		opts.Authorizer = RoleAuthorizer{}
	}
	if opts.Providers == nil {
		opts.Providers = NewRegistry(opts.Store)
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	layouts := opts.Layouts
	if len(layouts) == 0 {
		layouts = DefaultPageLayouts()
	}
	svc := &Service{
		opts:    opts,
		layouts: make(map[string]PageLayout, len(layouts)),
	}
	for _, layout := range layouts {
		svc.layouts[layout.Page] = layout
	}
	return svc
}

// Store exposes the backing commerce store.
func (s *Service) Store() (*commerce.Store, error) {
	if s.opts.Store == nil {
		return nil, errMissingStore
	}
	return s.opts.Store, nil
}

// Layout returns the widget layout configured for a page.
func (s *Service) Layout(page string) (PageLayout, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	layout, ok := s.layouts[page]
	return layout, ok
}

// Pages lists the configured page identifiers.
func (s *Service) Pages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pages := make([]string, 0, len(s.layouts))
	for page := range s.layouts {
		pages = append(pages, page)
	}
	return pages
}

// SetLayout installs or replaces a page layout after validating every widget
// configuration against its definition schema.
func (s *Service) SetLayout(layout PageLayout) error {
	if layout.Page == "" {
		return fmt.Errorf("admin: page identifier is required")
	}
	for _, inst := range layout.Widgets {
		if err := s.validateConfiguration(inst.DefinitionID, inst.Configuration); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layouts[layout.Page] = layout
	return nil
}

// ResolvePage fetches widget data for every widget on the page the viewer is
// allowed to see. Request-scoped configuration overrides (table page, sort,
// search) are merged over the instance configuration keyed by instance ID.
// A provider failure skips that widget and records telemetry rather than
// failing the page.
func (s *Service) ResolvePage(ctx context.Context, page string, viewer Viewer, overrides map[string]map[string]any) (PageView, error) {
	layout, ok := s.Layout(page)
	if !ok {
		return PageView{}, fmt.Errorf("%w: %s", errUnknownPage, page)
	}
	view := PageView{Page: page}
	for _, inst := range layout.Widgets {
		if !s.opts.Authorizer.CanViewWidget(ctx, viewer, inst) {
			continue
		}
		merged := mergeConfiguration(inst.Configuration, overrides[inst.ID])
		if err := s.validateConfiguration(inst.DefinitionID, merged); err != nil {
			s.recordTelemetry(ctx, "admin.widget.config_invalid", map[string]any{
				"widget_id":     inst.ID,
				"definition_id": inst.DefinitionID,
				"error":         err.Error(),
			})
			continue
		}
		resolved := ResolvedWidget{Instance: inst}
		resolved.Instance.Configuration = merged

		provider, ok := s.opts.Providers.Provider(inst.DefinitionID)
		if ok && provider != nil {
			data, err := provider.Fetch(ctx, WidgetContext{
				Instance: resolved.Instance,
				Viewer:   viewer,
			})
			if err != nil {
				s.recordTelemetry(ctx, "admin.widget.provider_error", map[string]any{
					"widget_id":     inst.ID,
					"definition_id": inst.DefinitionID,
					"error":         err.Error(),
				})
				continue
			}
			resolved.Data = data
		}
		view.Widgets = append(view.Widgets, resolved)
	}
	s.recordTelemetry(ctx, "admin.page.resolve", map[string]any{
		"page":    page,
		"widgets": len(view.Widgets),
	})
	return view, nil
}

func (s *Service) validateConfiguration(definitionID string, config map[string]any) error {
	if s.opts.ConfigValidator == nil || s.opts.Providers == nil {
		return nil
	}
	def, ok := s.opts.Providers.Definition(definitionID)
	if !ok {
		return nil
	}
	return s.opts.ConfigValidator.Validate(def, config)
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func mergeConfiguration(base, override map[string]any) map[string]any {
	if len(override) == 0 {
		return base
	}
	merged := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
