package admin

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/goliatone/go-storefront-admin/components/commerce"
)

// Controller renders the dashboard shell pages over the Service.
type Controller struct {
	service  *Service
	renderer Renderer
}

// NewController wires the service and template renderer into a controller.
func NewController(service *Service, renderer Renderer) *Controller {
	return &Controller{service: service, renderer: renderer}
}

// shellData is the payload every page template receives.
type shellData struct {
	Page             string
	Template         string
	Viewer           Viewer
	ThemeClass       string
	SidebarCollapsed bool
	Filters          commerce.Filters
	Widgets          []ResolvedWidget
	Form             any
	Errors           FieldErrors
}

// PagePayload resolves the page into its JSON-friendly form.
func (c *Controller) PagePayload(ctx context.Context, page string, viewer Viewer, overrides map[string]map[string]any) (PageView, error) {
	if c.service == nil {
		return PageView{}, errors.New("admin: controller requires a service")
	}
	return c.service.ResolvePage(ctx, page, viewer, overrides)
}

// RenderPage resolves a protected page and writes its HTML.
func (c *Controller) RenderPage(ctx context.Context, out io.Writer, page string, overrides map[string]map[string]any) error {
	store, err := c.service.Store()
	if err != nil {
		return err
	}
	snap := store.Snapshot()
	viewer := ViewerFromSnapshot(snap)
	view, err := c.service.ResolvePage(ctx, page, viewer, overrides)
	if err != nil {
		return err
	}
	return c.render(out, templateFor(page), shellData{
		Page:             page,
		Template:         templateFor(page),
		Viewer:           viewer,
		ThemeClass:       ThemeClass(snap.Theme),
		SidebarCollapsed: snap.SidebarCollapsed,
		Filters:          snap.Filters,
		Widgets:          view.Widgets,
	})
}

// RenderLogin writes the login form, optionally with inline field errors.
func (c *Controller) RenderLogin(out io.Writer, form LoginForm, errs FieldErrors) error {
	return c.renderAuth(out, "login", form, errs)
}

// RenderSignup writes the signup form, optionally with inline field errors.
func (c *Controller) RenderSignup(out io.Writer, form SignupForm, errs FieldErrors) error {
	return c.renderAuth(out, "signup", form, errs)
}

func (c *Controller) renderAuth(out io.Writer, name string, form any, errs FieldErrors) error {
	snap, err := c.snapshot()
	if err != nil {
		return err
	}
	return c.render(out, name, shellData{
		Page:       name,
		Template:   name,
		Viewer:     ViewerFromSnapshot(snap),
		ThemeClass: ThemeClass(snap.Theme),
		Form:       form,
		Errors:     errs,
	})
}

// RenderSettings writes the settings page (theme and sidebar preferences).
func (c *Controller) RenderSettings(out io.Writer) error {
	snap, err := c.snapshot()
	if err != nil {
		return err
	}
	return c.render(out, "settings", shellData{
		Page:             "settings",
		Template:         "settings",
		Viewer:           ViewerFromSnapshot(snap),
		ThemeClass:       ThemeClass(snap.Theme),
		SidebarCollapsed: snap.SidebarCollapsed,
	})
}

// RenderNotFound writes the catch-all page for unknown routes.
func (c *Controller) RenderNotFound(out io.Writer) error {
	snap, err := c.snapshot()
	if err != nil {
		return err
	}
	return c.render(out, "not_found", shellData{
		Page:       "not_found",
		Template:   "not_found",
		Viewer:     ViewerFromSnapshot(snap),
		ThemeClass: ThemeClass(snap.Theme),
	})
}

func (c *Controller) snapshot() (commerce.Snapshot, error) {
	if c.service == nil {
		return commerce.Snapshot{}, errors.New("admin: controller requires a service")
	}
	store, err := c.service.Store()
	if err != nil {
		return commerce.Snapshot{}, err
	}
	return store.Snapshot(), nil
}

func (c *Controller) render(out io.Writer, name string, data shellData) error {
	if c.renderer == nil {
		return errors.New("admin: controller requires a renderer")
	}
	_, err := c.renderer.Render(name, data, out)
	return err
}

// templateFor maps a page identifier onto its template name.
func templateFor(page string) string {
	return strings.TrimPrefix(page, "admin.page.")
}
