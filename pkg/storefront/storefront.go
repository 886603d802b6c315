// Package storefront assembles the commerce store, the admin dashboard, and
// the HTTP transport into one runnable application.
package storefront

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-storefront-admin/components/admin"
	admincommands "github.com/goliatone/go-storefront-admin/components/admin/commands"
	"github.com/goliatone/go-storefront-admin/components/admin/gorouter"
	"github.com/goliatone/go-storefront-admin/components/admin/httpapi"
	"github.com/goliatone/go-storefront-admin/components/commerce"
	"github.com/goliatone/go-storefront-admin/pkg/activity"
)

// Config controls application assembly. The zero value runs an in-memory
// instance with generated demo data and no auto-login.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// SessionDir persists the session subset on disk when set. Empty keeps
	// sessions in memory.
	SessionDir string

	// AutoLoginUser signs this user in at startup when no persisted session
	// exists. Nil disables auto-login.
	AutoLoginUser *commerce.User

	// Seed fixes the data generator for reproducible collections. Zero uses
	// the current time.
	Seed int64

	// ManifestPath optionally loads extra widget definitions and layouts.
	ManifestPath string

	// ActivityHooks receive audit events for store transitions.
	ActivityHooks activity.Hooks

	// ActivityConfig toggles audit emission.
	ActivityConfig activity.Config

	// Telemetry receives structured service events.
	Telemetry admin.Telemetry
}

// App bundles the wired collaborators.
type App struct {
	Store      *commerce.Store
	Registry   *admin.Registry
	Service    *admin.Service
	Controller *admin.Controller
	Executor   *httpapi.CommandExecutor
	Broadcast  *admin.BroadcastHook
	Emitter    *activity.Emitter

	server router.Server[*fiber.App]
	addr   string
}

// New assembles the application.
func New(cfg Config) (*App, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := commerce.NewGenerator(commerce.WithRandSource(rand.NewSource(seed)))

	var sessions commerce.SessionStore
	if cfg.SessionDir != "" {
		sessions = commerce.NewFileSessionStore(cfg.SessionDir)
	}

	sales := gen.Sales()
	store := commerce.NewStore(commerce.StoreOptions{
		Orders:        gen.Orders(),
		Customers:     gen.Customers(),
		Sales:         &sales,
		Sessions:      sessions,
		AutoLoginUser: cfg.AutoLoginUser,
	})

	registry := admin.NewRegistry(store)
	layouts := admin.DefaultPageLayouts()
	if cfg.ManifestPath != "" {
		doc, err := registry.LoadManifestFile(cfg.ManifestPath)
		if err != nil {
			return nil, fmt.Errorf("storefront: load manifest: %w", err)
		}
		layouts = append(layouts, doc.Pages...)
	}

	service := admin.NewService(admin.Options{
		Store:     store,
		Providers: registry,
		Telemetry: cfg.Telemetry,
		Layouts:   layouts,
	})

	renderer, err := admin.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("storefront: build renderer: %w", err)
	}
	controller := admin.NewController(service, renderer)

	broadcast := admin.NewBroadcastHook()
	store.Subscribe(broadcast)

	emitter := activity.NewEmitter(cfg.ActivityHooks, cfg.ActivityConfig)
	if emitter.Enabled() {
		store.Subscribe(commerce.StateHookFunc(func(event commerce.StateEvent) {
			_ = emitter.Emit(context.Background(), auditEvent(event))
		}))
	}

	var telemetry admincommands.Telemetry
	if cfg.Telemetry != nil {
		telemetry = cfg.Telemetry
	}
	executor := &httpapi.CommandExecutor{
		LoginCommander:              admincommands.NewLoginCommand(store, telemetry),
		SignupCommander:             admincommands.NewSignupCommand(store, telemetry),
		LogoutCommander:             admincommands.NewLogoutCommand(store, telemetry),
		SetThemeCommander:           admincommands.NewSetThemeCommand(store, telemetry),
		ToggleThemeCommander:        admincommands.NewToggleThemeCommand(store, telemetry),
		SetSidebarCommander:         admincommands.NewSetSidebarCommand(store, telemetry),
		ToggleSidebarCommander:      admincommands.NewToggleSidebarCommand(store, telemetry),
		SetDateRangeCommander:       admincommands.NewSetDateRangeCommand(store, telemetry),
		SetCustomDateRangeCommander: admincommands.NewSetCustomDateRangeCommand(store, telemetry),
		SetCategoricalCommander:     admincommands.NewSetCategoricalFilterCommand(store, telemetry),
		SetSearchCommander:          admincommands.NewSetSearchCommand(store, telemetry),
		ResetFiltersCommander:       admincommands.NewResetFiltersCommand(store, telemetry),
	}

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: controller,
		Service:    service,
		Store:      store,
		API:        executor,
		Broadcast:  broadcast,
	}); err != nil {
		return nil, fmt.Errorf("storefront: register routes: %w", err)
	}

	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}

	return &App{
		Store:      store,
		Registry:   registry,
		Service:    service,
		Controller: controller,
		Executor:   executor,
		Broadcast:  broadcast,
		Emitter:    emitter,
		server:     server,
		addr:       addr,
	}, nil
}

// Serve blocks on the HTTP listener.
func (a *App) Serve() error {
	return a.server.Serve(a.addr)
}

// Shutdown stops the HTTP listener.
func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

// auditEvent maps a store transition onto the activity schema. The snapshot
// user, when present, becomes the actor.
func auditEvent(event commerce.StateEvent) activity.Event {
	evt := activity.Event{
		Verb:       event.Reason,
		ObjectType: "session",
		ObjectID:   commerce.SessionKey,
		Metadata: map[string]any{
			"logged_in": event.Snapshot.LoggedIn,
			"theme":     string(event.Snapshot.Theme),
		},
	}
	if event.Snapshot.User != nil {
		evt.ActorID = event.Snapshot.User.Email
		evt.Metadata["actor_email"] = event.Snapshot.User.Email
	}
	return evt
}
