package gorouter

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-storefront-admin/components/admin"
	"github.com/goliatone/go-storefront-admin/components/admin/commands"
	"github.com/goliatone/go-storefront-admin/components/admin/httpapi"
	"github.com/goliatone/go-storefront-admin/components/commerce"
)

// Config wires go-router with the admin controller, JSON API, and broadcast
// hook.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *admin.Controller
	Service    *admin.Service
	Store      *commerce.Store
	API        httpapi.Executor
	Broadcast  *admin.BroadcastHook
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	Login     string
	Signup    string
	Logout    string
	Dashboard string
	Orders    string
	Analytics string
	Customers string
	Settings  string
	Theme     string
	Sidebar   string
	API       string
	WebSocket string
}

// Register mounts the page, form, JSON, and WebSocket routes.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	if cfg.Store == nil {
		return errors.New("gorouter: commerce store is required")
	}
	if cfg.API == nil {
		return errors.New("gorouter: executor is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	r := cfg.Router

	r.Get("/", router.WrapHandler(func(ctx router.Context) error {
		if cfg.Store.Snapshot().LoggedIn {
			return redirect(ctx, routes.Dashboard)
		}
		return redirect(ctx, routes.Login)
	}))

	registerAuth(r, cfg, routes)
	registerPages(r, cfg, routes)
	registerPreferences(r, cfg, routes)

	if cfg.Service != nil {
		registerAPI(r, cfg, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(r, cfg.Broadcast, routes.WebSocket)
	}

	// Catch-all keeps unknown paths inside the shell instead of the
	// transport's default error page.
	r.Get("/*", router.WrapHandler(func(ctx router.Context) error {
		return renderHTML(ctx, func(buf *bytes.Buffer) error {
			return cfg.Controller.RenderNotFound(buf)
		})
	}))

	return nil
}

func registerAuth[T any](r router.Router[T], cfg Config[T], routes RouteConfig) {
	r.Get(routes.Login, router.WrapHandler(func(ctx router.Context) error {
		if cfg.Store.Snapshot().LoggedIn {
			return redirect(ctx, routes.Dashboard)
		}
		return renderHTML(ctx, func(buf *bytes.Buffer) error {
			return cfg.Controller.RenderLogin(buf, admin.LoginForm{}, nil)
		})
	}))

	r.Post(routes.Login, router.WrapHandler(func(ctx router.Context) error {
		values := formValues(ctx)
		form := admin.LoginForm{
			Name:     values.Get("name"),
			Email:    values.Get("email"),
			Role:     values.Get("role"),
			Password: values.Get("password"),
		}
		if err := cfg.API.Login(ctx.Context(), commands.LoginInput{Form: form}); err != nil {
			if formErr, ok := commands.AsFormError(err); ok {
				return renderHTML(ctx, func(buf *bytes.Buffer) error {
					return cfg.Controller.RenderLogin(buf, form, formErr.Fields)
				})
			}
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return redirect(ctx, routes.Dashboard)
	}))

	r.Get(routes.Signup, router.WrapHandler(func(ctx router.Context) error {
		if cfg.Store.Snapshot().LoggedIn {
			return redirect(ctx, routes.Dashboard)
		}
		return renderHTML(ctx, func(buf *bytes.Buffer) error {
			return cfg.Controller.RenderSignup(buf, admin.SignupForm{}, nil)
		})
	}))

	r.Post(routes.Signup, router.WrapHandler(func(ctx router.Context) error {
		values := formValues(ctx)
		form := admin.SignupForm{
			Name:     values.Get("name"),
			Email:    values.Get("email"),
			Role:     values.Get("role"),
			Password: values.Get("password"),
			Confirm:  values.Get("confirm"),
		}
		if err := cfg.API.Signup(ctx.Context(), commands.SignupInput{Form: form}); err != nil {
			if formErr, ok := commands.AsFormError(err); ok {
				return renderHTML(ctx, func(buf *bytes.Buffer) error {
					return cfg.Controller.RenderSignup(buf, form, formErr.Fields)
				})
			}
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return redirect(ctx, routes.Dashboard)
	}))

	r.Post(routes.Logout, router.WrapHandler(func(ctx router.Context) error {
		if err := cfg.API.Logout(ctx.Context(), commands.LogoutInput{}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return redirect(ctx, routes.Login)
	}))
}

func registerPages[T any](r router.Router[T], cfg Config[T], routes RouteConfig) {
	r.Get(routes.Dashboard, router.WrapHandler(requireLogin(cfg, routes, func(ctx router.Context) error {
		return renderPage(ctx, cfg, admin.PageDashboard, nil)
	})))

	r.Get(routes.Orders, router.WrapHandler(requireLogin(cfg, routes, func(ctx router.Context) error {
		if err := applyOrderViewState(ctx, cfg); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		return renderPage(ctx, cfg, admin.PageOrders, map[string]map[string]any{
			"orders-table": ordersTableOverrides(ctx),
		})
	})))

	r.Get(routes.Orders+"/reset", router.WrapHandler(requireLogin(cfg, routes, func(ctx router.Context) error {
		if err := cfg.API.ResetFilters(ctx.Context(), commands.ResetFiltersInput{}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return redirect(ctx, routes.Orders)
	})))

	r.Get(routes.Analytics, router.WrapHandler(requireLogin(cfg, routes, func(ctx router.Context) error {
		return renderPage(ctx, cfg, admin.PageAnalytics, nil)
	})))

	r.Get(routes.Customers, router.WrapHandler(requireLogin(cfg, routes, func(ctx router.Context) error {
		return renderPage(ctx, cfg, admin.PageCustomers, map[string]map[string]any{
			"customers-table": {
				"search": ctx.Query("q"),
				"page":   queryInt(ctx, "page", 1),
			},
		})
	})))

	r.Get(routes.Settings, router.WrapHandler(requireLogin(cfg, routes, func(ctx router.Context) error {
		return renderHTML(ctx, func(buf *bytes.Buffer) error {
			return cfg.Controller.RenderSettings(buf)
		})
	})))
}

func registerPreferences[T any](r router.Router[T], cfg Config[T], routes RouteConfig) {
	r.Post(routes.Theme, router.WrapHandler(func(ctx router.Context) error {
		if err := cfg.API.ToggleTheme(ctx.Context(), commands.ToggleThemeInput{}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return redirect(ctx, referer(ctx, routes.Dashboard))
	}))

	r.Post(routes.Sidebar, router.WrapHandler(func(ctx router.Context) error {
		if err := cfg.API.ToggleSidebar(ctx.Context(), commands.ToggleSidebarInput{}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return redirect(ctx, referer(ctx, routes.Dashboard))
	}))
}

func registerAPI[T any](r router.Router[T], cfg Config[T], routes RouteConfig) {
	api := r.Group(routes.API)

	api.Get("/session", router.WrapHandler(func(ctx router.Context) error {
		return ctx.JSON(http.StatusOK, cfg.Store.Snapshot())
	}))

	api.Get("/pages/:page", router.WrapHandler(func(ctx router.Context) error {
		page := "admin.page." + ctx.Param("page")
		viewer := admin.ViewerFromSnapshot(cfg.Store.Snapshot())
		view, err := cfg.Service.ResolvePage(ctx.Context(), page, viewer, nil)
		if err != nil {
			return respondError(ctx, http.StatusNotFound, err)
		}
		return ctx.JSON(http.StatusOK, view)
	}))

	api.Get("/orders", router.WrapHandler(func(ctx router.Context) error {
		filters := cfg.Store.Filters()
		sortState := sortFromQuery(ctx)
		page := queryInt(ctx, "page", 1)
		result := commerce.ViewOrders(cfg.Store.Orders(), filters, sortState, page)
		return ctx.JSON(http.StatusOK, result)
	}))

	api.Get("/customers", router.WrapHandler(func(ctx router.Context) error {
		result := commerce.ViewCustomers(cfg.Store.Customers(), ctx.Query("q"), queryInt(ctx, "page", 1))
		return ctx.JSON(http.StatusOK, result)
	}))

	api.Get("/analytics", router.WrapHandler(func(ctx router.Context) error {
		summary := commerce.ComputeAnalytics(cfg.Store.Orders(), cfg.Store.Customers())
		return ctx.JSON(http.StatusOK, summary)
	}))

	api.Get("/sales", router.WrapHandler(func(ctx router.Context) error {
		sales := cfg.Store.Sales()
		switch ctx.Query("granularity") {
		case "", "daily":
			return ctx.JSON(http.StatusOK, sales.Daily)
		case "weekly":
			return ctx.JSON(http.StatusOK, sales.Weekly)
		case "monthly":
			return ctx.JSON(http.StatusOK, sales.Monthly)
		}
		return respondError(ctx, http.StatusBadRequest, errors.New("unknown granularity"))
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *admin.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

// applyOrderViewState pushes filter query params into the store so the filter
// bar, persistence, and broadcast hooks all observe the same state.
func applyOrderViewState[T any](ctx router.Context, cfg Config[T]) error {
	c := ctx.Context()

	if raw := ctx.Query("range"); raw != "" {
		if raw == string(commerce.RangeCustom) {
			start := queryDate(ctx, "start")
			end := queryDate(ctx, "end")
			if err := cfg.API.SetCustomDateRange(c, commands.SetCustomDateRangeInput{Start: start, End: end}); err != nil {
				return err
			}
		} else {
			r, err := commerce.ParseDateRange(raw)
			if err != nil {
				return err
			}
			if err := cfg.API.SetDateRange(c, commands.SetDateRangeInput{Range: r}); err != nil {
				return err
			}
		}
	}
	for kind, key := range map[commands.CategoricalFilterKind]string{
		commands.FilterCategory:      "category",
		commands.FilterOrderStatus:   "status",
		commands.FilterPaymentStatus: "payment",
	} {
		if value := ctx.Query(key); value != "" {
			if err := cfg.API.SetCategoricalFilter(c, commands.SetCategoricalFilterInput{Kind: kind, Value: value}); err != nil {
				return err
			}
		}
	}
	// The filter bar always submits q, so an empty q alongside a range
	// preset means the operator cleared the search. A bare page or sort
	// link omits both and leaves the stored search alone.
	query := ctx.Query("q")
	if query != "" || ctx.Query("range") != "" {
		if err := cfg.API.SetSearch(c, commands.SetSearchInput{Query: query}); err != nil {
			return err
		}
	}
	return nil
}

func queryDate(ctx router.Context, key string) time.Time {
	raw := ctx.Query(key)
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func requireLogin[T any](cfg Config[T], routes RouteConfig, next func(router.Context) error) func(router.Context) error {
	return func(ctx router.Context) error {
		if !cfg.Store.Snapshot().LoggedIn {
			return redirect(ctx, routes.Login)
		}
		return next(ctx)
	}
}

func renderPage[T any](ctx router.Context, cfg Config[T], page string, overrides map[string]map[string]any) error {
	return renderHTML(ctx, func(buf *bytes.Buffer) error {
		return cfg.Controller.RenderPage(ctx.Context(), buf, page, overrides)
	})
}

func renderHTML(ctx router.Context, render func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return respondError(ctx, http.StatusInternalServerError, err)
	}
	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.Send(buf.Bytes())
}

func ordersTableOverrides(ctx router.Context) map[string]any {
	overrides := map[string]any{
		"page": queryInt(ctx, "page", 1),
	}
	sortState := sortFromQuery(ctx)
	overrides["sort_field"] = string(sortState.Field)
	overrides["sort_direction"] = string(sortState.Direction)
	return overrides
}

func sortFromQuery(ctx router.Context) commerce.Sort {
	sortState := commerce.DefaultSort()
	if field := commerce.SortField(ctx.Query("sort")); field.Valid() {
		sortState.Field = field
	}
	switch ctx.Query("dir") {
	case "asc":
		sortState.Direction = commerce.SortAsc
	case "desc":
		sortState.Direction = commerce.SortDesc
	}
	return sortState
}

func queryInt(ctx router.Context, key string, fallback int) int {
	if raw := ctx.Query(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}

func formValues(ctx router.Context) url.Values {
	values, err := url.ParseQuery(string(ctx.Body()))
	if err != nil {
		return url.Values{}
	}
	return values
}

func referer(ctx router.Context, fallback string) string {
	if ref := ctx.Header("Referer"); ref != "" {
		if parsed, err := url.Parse(ref); err == nil && parsed.Path != "" {
			return parsed.Path
		}
	}
	return fallback
}

func redirect(ctx router.Context, target string) error {
	ctx.SetHeader("Location", target)
	return ctx.JSON(http.StatusSeeOther, map[string]string{"location": target})
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Login == "" {
		routes.Login = "/login"
	}
	if routes.Signup == "" {
		routes.Signup = "/signup"
	}
	if routes.Logout == "" {
		routes.Logout = "/logout"
	}
	if routes.Dashboard == "" {
		routes.Dashboard = "/dashboard"
	}
	if routes.Orders == "" {
		routes.Orders = "/orders"
	}
	if routes.Analytics == "" {
		routes.Analytics = "/analytics"
	}
	if routes.Customers == "" {
		routes.Customers = "/customers"
	}
	if routes.Settings == "" {
		routes.Settings = "/settings"
	}
	if routes.Theme == "" {
		routes.Theme = "/theme/toggle"
	}
	if routes.Sidebar == "" {
		routes.Sidebar = "/sidebar/toggle"
	}
	if routes.API == "" {
		routes.API = "/api"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}
