package admin

import (
	"bytes"
	"context"
	"io"
	"math/rand"
	"testing"

	"github.com/goliatone/go-storefront-admin/components/commerce"
)

type stubRenderer struct {
	names []string
	data  []shellData
	fail  error
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	if r.fail != nil {
		return "", r.fail
	}
	r.names = append(r.names, name)
	if shell, ok := data.(shellData); ok {
		r.data = append(r.data, shell)
	}
	for _, w := range out {
		_, _ = w.Write([]byte("<html>" + name + "</html>"))
	}
	return "<html>" + name + "</html>", nil
}

func newControllerFixture(t *testing.T) (*Controller, *commerce.Store, *stubRenderer) {
	t.Helper()
	gen := commerce.NewGenerator(commerce.WithRandSource(rand.NewSource(11)))
	sales := gen.Sales()
	store := commerce.NewStore(commerce.StoreOptions{
		Orders:    gen.Orders(),
		Customers: gen.Customers(),
		Sales:     &sales,
	})
	service := NewService(Options{Store: store})
	renderer := &stubRenderer{}
	return NewController(service, renderer), store, renderer
}

func TestRenderPageResolvesWidgets(t *testing.T) {
	controller, store, renderer := newControllerFixture(t)
	store.Login(commerce.User{Name: "Ada", Email: "ada@example.com", Role: commerce.RoleAdmin})

	var buf bytes.Buffer
	if err := controller.RenderPage(context.Background(), &buf, PageDashboard, nil); err != nil {
		t.Fatalf("RenderPage returned error: %v", err)
	}
	if len(renderer.names) != 1 || renderer.names[0] != "dashboard" {
		t.Fatalf("expected dashboard template, got %v", renderer.names)
	}
	shell := renderer.data[0]
	if !shell.Viewer.LoggedIn || shell.Viewer.Name != "Ada" {
		t.Fatalf("expected viewer derived from store, got %#v", shell.Viewer)
	}
	if len(shell.Widgets) == 0 {
		t.Fatalf("expected resolved widgets on dashboard")
	}
	if buf.Len() == 0 {
		t.Fatalf("expected rendered output written")
	}
}

func TestRenderPageUnknownPage(t *testing.T) {
	controller, _, _ := newControllerFixture(t)
	var buf bytes.Buffer
	if err := controller.RenderPage(context.Background(), &buf, "admin.page.missing", nil); err == nil {
		t.Fatalf("expected unknown page error")
	}
}

func TestRenderPageReflectsTheme(t *testing.T) {
	controller, store, renderer := newControllerFixture(t)
	store.Login(commerce.User{Name: "Ada", Email: "ada@example.com", Role: commerce.RoleAdmin})
	store.SetTheme(commerce.ThemeLight)

	var buf bytes.Buffer
	if err := controller.RenderPage(context.Background(), &buf, PageCustomers, nil); err != nil {
		t.Fatalf("RenderPage returned error: %v", err)
	}
	if renderer.data[0].ThemeClass != "theme-light" {
		t.Fatalf("expected light theme class, got %q", renderer.data[0].ThemeClass)
	}
}

func TestRenderLoginCarriesErrors(t *testing.T) {
	controller, _, renderer := newControllerFixture(t)
	form := LoginForm{Email: "bad"}
	errs := form.Validate()

	var buf bytes.Buffer
	if err := controller.RenderLogin(&buf, form, errs); err != nil {
		t.Fatalf("RenderLogin returned error: %v", err)
	}
	shell := renderer.data[0]
	if shell.Template != "login" {
		t.Fatalf("expected login template, got %q", shell.Template)
	}
	if shell.Errors["email"] == "" {
		t.Fatalf("expected email error carried into template data")
	}
}

func TestRenderSignup(t *testing.T) {
	controller, _, renderer := newControllerFixture(t)
	var buf bytes.Buffer
	if err := controller.RenderSignup(&buf, SignupForm{}, nil); err != nil {
		t.Fatalf("RenderSignup returned error: %v", err)
	}
	if renderer.names[0] != "signup" {
		t.Fatalf("expected signup template, got %v", renderer.names)
	}
}

func TestRenderNotFound(t *testing.T) {
	controller, _, renderer := newControllerFixture(t)
	var buf bytes.Buffer
	if err := controller.RenderNotFound(&buf); err != nil {
		t.Fatalf("RenderNotFound returned error: %v", err)
	}
	if renderer.names[0] != "not_found" {
		t.Fatalf("expected not_found template, got %v", renderer.names)
	}
}

func TestControllerRequiresRenderer(t *testing.T) {
	gen := commerce.NewGenerator(commerce.WithRandSource(rand.NewSource(3)))
	sales := gen.Sales()
	store := commerce.NewStore(commerce.StoreOptions{
		Orders:    gen.Orders(),
		Customers: gen.Customers(),
		Sales:     &sales,
	})
	controller := NewController(NewService(Options{Store: store}), nil)
	var buf bytes.Buffer
	if err := controller.RenderSettings(&buf); err == nil {
		t.Fatalf("expected renderer error")
	}
}
