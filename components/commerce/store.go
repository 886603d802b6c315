package commerce

import (
	"sync"
	"time"
)

// ThemeHook propagates theme transitions to the environment's visual-mode
// indicator. It runs synchronously within the mutator so there is no window
// where the state and the rendered theme disagree.
type ThemeHook interface {
	ThemeChanged(theme Theme)
}

// ThemeHookFunc adapts a plain function to ThemeHook.
type ThemeHookFunc func(Theme)

// ThemeChanged satisfies ThemeHook.
func (f ThemeHookFunc) ThemeChanged(theme Theme) { f(theme) }

// StateEvent describes a completed store transition for subscribers.
type StateEvent struct {
	Reason   string
	Snapshot Snapshot
}

// StateHook receives store change notifications (transports, broadcast).
type StateHook interface {
	StateChanged(event StateEvent)
}

// StateHookFunc adapts a plain function to StateHook.
type StateHookFunc func(StateEvent)

// StateChanged satisfies StateHook.
func (f StateHookFunc) StateChanged(event StateEvent) { f(event) }

// Snapshot is a point-in-time read view of the mutable store state. Readers
// never observe a partially applied transition.
type Snapshot struct {
	LoggedIn         bool    `json:"loggedIn"`
	User             *User   `json:"user"`
	Theme            Theme   `json:"theme"`
	SidebarCollapsed bool    `json:"sidebarCollapsed"`
	Filters          Filters `json:"filters"`
}

// StoreOptions configures the state store. Collaborators are optional; the
// zero value of each is replaced with a safe default.
type StoreOptions struct {
	// Orders/Customers/Sales seed the immutable collections. When nil they
	// are produced by a fresh Generator.
	Orders    []Order
	Customers []Customer
	Sales     *SalesSeries

	// Sessions persists the {loggedIn, user, theme, sidebarCollapsed}
	// subset. Defaults to an in-memory store.
	Sessions SessionStore

	// AutoLoginUser, when set, signs this user in whenever no persisted
	// logged-in session exists. Leaving it nil keeps the store logged out
	// until Login is called. This makes the demo's "always authenticated"
	// versus "authenticate via form" choice explicit at construction time.
	AutoLoginUser *User

	// ThemeHook is invoked synchronously on every theme transition.
	ThemeHook ThemeHook

	// OnPersistError observes session save failures. Persistence failures
	// never fail the state transition itself.
	OnPersistError func(error)
}

// Store is the single source of truth for session, UI, and filter state.
// Mutator methods are the only write path; everything else reads snapshots.
type Store struct {
	mu sync.RWMutex

	loggedIn         bool
	user             *User
	theme            Theme
	sidebarCollapsed bool
	filters          Filters

	orders    []Order
	customers []Customer
	sales     SalesSeries

	sessions       SessionStore
	themeHook      ThemeHook
	onPersistError func(error)

	hookMu sync.RWMutex
	hooks  []StateHook
}

// NewStore builds a store, restores the persisted session subset, and applies
// the auto-login default when configured. Orders and filters always
// reinitialize to generator defaults regardless of what storage held.
func NewStore(opts StoreOptions) *Store {
	if opts.Orders == nil || opts.Customers == nil || opts.Sales == nil {
		gen := NewGenerator()
		if opts.Orders == nil {
			opts.Orders = gen.Orders()
		}
		if opts.Customers == nil {
			opts.Customers = gen.Customers()
		}
		if opts.Sales == nil {
			series := gen.Sales()
			opts.Sales = &series
		}
	}
	if opts.Sessions == nil {
		opts.Sessions = NewMemorySessionStore()
	}
	if opts.OnPersistError == nil {
		opts.OnPersistError = func(error) {}
	}

	s := &Store{
		theme:          ThemeDark,
		filters:        DefaultFilters(),
		orders:         opts.Orders,
		customers:      opts.Customers,
		sales:          *opts.Sales,
		sessions:       opts.Sessions,
		themeHook:      opts.ThemeHook,
		onPersistError: opts.OnPersistError,
	}

	s.restore(opts.AutoLoginUser)
	return s
}

func (s *Store) restore(autoLogin *User) {
	record, ok, err := s.sessions.Load()
	if err != nil {
		// Corrupt or unreadable storage falls back to defaults.
		s.onPersistError(err)
		ok = false
	}
	if ok {
		applyPersisted(s, record)
	}
	if s.theme != ThemeLight && s.theme != ThemeDark {
		s.theme = ThemeDark
	}
	if !s.loggedIn && autoLogin != nil {
		s.loggedIn = true
		user := *autoLogin
		s.user = &user
		s.persistLocked()
	}
	if s.themeHook != nil {
		s.themeHook.ThemeChanged(s.theme)
	}
}

// Subscribe registers a hook notified after every completed transition.
func (s *Store) Subscribe(hook StateHook) {
	if hook == nil {
		return
	}
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// Snapshot returns the current state as an immutable value.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		LoggedIn:         s.loggedIn,
		Theme:            s.theme,
		SidebarCollapsed: s.sidebarCollapsed,
		Filters:          s.filters,
	}
	if s.user != nil {
		user := *s.user
		snap.User = &user
	}
	return snap
}

// Orders returns a copy of the immutable order collection.
func (s *Store) Orders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Customers returns a copy of the immutable customer collection.
func (s *Store) Customers() []Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// Sales returns a copy of the three sales series.
func (s *Store) Sales() SalesSeries {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SalesSeries{
		Daily:   append([]SalesPoint(nil), s.sales.Daily...),
		Weekly:  append([]SalesPoint(nil), s.sales.Weekly...),
		Monthly: append([]SalesPoint(nil), s.sales.Monthly...),
	}
}

// Login signs the given user in. Credentials are never checked; this is a
// demo-mode gate, not real authentication.
func (s *Store) Login(user User) {
	s.transition("session.login", true, func() {
		s.loggedIn = true
		u := user
		s.user = &u
	})
}

// Logout clears the session. Filters and theme are left untouched.
func (s *Store) Logout() {
	s.transition("session.logout", true, func() {
		s.loggedIn = false
		s.user = nil
	})
}

// SetTheme sets the visual mode and propagates it synchronously.
func (s *Store) SetTheme(theme Theme) {
	if !theme.Valid() {
		theme = ThemeDark
	}
	s.transition("theme.set", true, func() {
		s.theme = theme
	})
	if s.themeHook != nil {
		s.themeHook.ThemeChanged(theme)
	}
}

// ToggleTheme flips between light and dark.
func (s *Store) ToggleTheme() {
	var next Theme
	s.transition("theme.toggle", true, func() {
		s.theme = s.theme.Toggle()
		next = s.theme
	})
	if s.themeHook != nil {
		s.themeHook.ThemeChanged(next)
	}
}

// SetSidebarCollapsed sets the sidebar flag.
func (s *Store) SetSidebarCollapsed(collapsed bool) {
	s.transition("sidebar.set", true, func() {
		s.sidebarCollapsed = collapsed
	})
}

// ToggleSidebar flips the sidebar flag.
func (s *Store) ToggleSidebar() {
	s.transition("sidebar.toggle", true, func() {
		s.sidebarCollapsed = !s.sidebarCollapsed
	})
}

// SetDateRange selects a preset window. Stored custom bounds stay in place
// but are ignored until custom is reselected.
func (s *Store) SetDateRange(r DateRange) {
	if !r.Valid() {
		return
	}
	s.transition("filters.date_range", false, func() {
		s.filters.Range = r
	})
}

// SetCustomDateRange sets both bounds and forces the selector to custom in a
// single transition; no observer can see one bound updated and not the other.
// A zero bound is stored as absent so Window widens that side instead of
// pinning it to the zero time.
func (s *Store) SetCustomDateRange(start, end time.Time) {
	s.transition("filters.custom_range", false, func() {
		s.filters.CustomStart = optionalBound(start)
		s.filters.CustomEnd = optionalBound(end)
		s.filters.Range = RangeCustom
	})
}

func optionalBound(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	bound := t
	return &bound
}

// SetCategoryFilter sets the category dimension ("all" disables it).
func (s *Store) SetCategoryFilter(category string) {
	s.transition("filters.category", false, func() {
		s.filters.Category = category
	})
}

// SetOrderStatusFilter sets the fulfillment dimension.
func (s *Store) SetOrderStatusFilter(status string) {
	if status != FilterAll && !OrderStatus(status).Valid() {
		return
	}
	s.transition("filters.order_status", false, func() {
		s.filters.OrderStatus = status
	})
}

// SetPaymentStatusFilter sets the payment dimension.
func (s *Store) SetPaymentStatusFilter(status string) {
	if status != FilterAll && !PaymentStatus(status).Valid() {
		return
	}
	s.transition("filters.payment_status", false, func() {
		s.filters.PaymentStatus = status
	})
}

// SetSearchQuery sets the free-text query.
func (s *Store) SetSearchQuery(query string) {
	s.transition("filters.search", false, func() {
		s.filters.Search = query
	})
}

// ResetFilters restores filter defaults. Session and theme state are not
// touched; calling it twice yields the same state as calling it once.
func (s *Store) ResetFilters() {
	s.transition("filters.reset", false, func() {
		s.filters = DefaultFilters()
	})
}

// Filters returns the current filter state.
func (s *Store) Filters() Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// transition applies mutate under the write lock, persists the session
// subset when it changed, and notifies subscribers with the resulting
// snapshot.
func (s *Store) transition(reason string, persisted bool, mutate func()) {
	s.mu.Lock()
	mutate()
	if persisted {
		s.persistLocked()
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(StateEvent{Reason: reason, Snapshot: snap})
}

func (s *Store) persistLocked() {
	if err := s.sessions.Save(toPersisted(s)); err != nil {
		s.onPersistError(err)
	}
}

func (s *Store) notify(event StateEvent) {
	s.hookMu.RLock()
	hooks := make([]StateHook, len(s.hooks))
	copy(hooks, s.hooks)
	s.hookMu.RUnlock()
	for _, hook := range hooks {
		hook.StateChanged(event)
	}
}
