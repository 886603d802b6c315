package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-storefront-admin/components/admin/commands"
	"github.com/goliatone/go-storefront-admin/components/commerce"
)

// Executor groups the state-changing operations transports can invoke.
type Executor interface {
	Login(ctx context.Context, input commands.LoginInput) error
	Signup(ctx context.Context, input commands.SignupInput) error
	Logout(ctx context.Context, input commands.LogoutInput) error
	SetTheme(ctx context.Context, input commands.SetThemeInput) error
	ToggleTheme(ctx context.Context, input commands.ToggleThemeInput) error
	SetSidebar(ctx context.Context, input commands.SetSidebarInput) error
	ToggleSidebar(ctx context.Context, input commands.ToggleSidebarInput) error
	SetDateRange(ctx context.Context, input commands.SetDateRangeInput) error
	SetCustomDateRange(ctx context.Context, input commands.SetCustomDateRangeInput) error
	SetCategoricalFilter(ctx context.Context, input commands.SetCategoricalFilterInput) error
	SetSearch(ctx context.Context, input commands.SetSearchInput) error
	ResetFilters(ctx context.Context, input commands.ResetFiltersInput) error
}

// CommandExecutor satisfies Executor with shared go-command commanders.
type CommandExecutor struct {
	LoginCommander              gocommand.Commander[commands.LoginInput]
	SignupCommander             gocommand.Commander[commands.SignupInput]
	LogoutCommander             gocommand.Commander[commands.LogoutInput]
	SetThemeCommander           gocommand.Commander[commands.SetThemeInput]
	ToggleThemeCommander        gocommand.Commander[commands.ToggleThemeInput]
	SetSidebarCommander         gocommand.Commander[commands.SetSidebarInput]
	ToggleSidebarCommander      gocommand.Commander[commands.ToggleSidebarInput]
	SetDateRangeCommander       gocommand.Commander[commands.SetDateRangeInput]
	SetCustomDateRangeCommander gocommand.Commander[commands.SetCustomDateRangeInput]
	SetCategoricalCommander     gocommand.Commander[commands.SetCategoricalFilterInput]
	SetSearchCommander          gocommand.Commander[commands.SetSearchInput]
	ResetFiltersCommander       gocommand.Commander[commands.ResetFiltersInput]
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) Login(ctx context.Context, input commands.LoginInput) error {
	return e.LoginCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Signup(ctx context.Context, input commands.SignupInput) error {
	return e.SignupCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Logout(ctx context.Context, input commands.LogoutInput) error {
	return e.LogoutCommander.Execute(ctx, input)
}

func (e *CommandExecutor) SetTheme(ctx context.Context, input commands.SetThemeInput) error {
	return e.SetThemeCommander.Execute(ctx, input)
}

func (e *CommandExecutor) ToggleTheme(ctx context.Context, input commands.ToggleThemeInput) error {
	return e.ToggleThemeCommander.Execute(ctx, input)
}

func (e *CommandExecutor) SetSidebar(ctx context.Context, input commands.SetSidebarInput) error {
	return e.SetSidebarCommander.Execute(ctx, input)
}

func (e *CommandExecutor) ToggleSidebar(ctx context.Context, input commands.ToggleSidebarInput) error {
	return e.ToggleSidebarCommander.Execute(ctx, input)
}

func (e *CommandExecutor) SetDateRange(ctx context.Context, input commands.SetDateRangeInput) error {
	return e.SetDateRangeCommander.Execute(ctx, input)
}

func (e *CommandExecutor) SetCustomDateRange(ctx context.Context, input commands.SetCustomDateRangeInput) error {
	return e.SetCustomDateRangeCommander.Execute(ctx, input)
}

func (e *CommandExecutor) SetCategoricalFilter(ctx context.Context, input commands.SetCategoricalFilterInput) error {
	return e.SetCategoricalCommander.Execute(ctx, input)
}

func (e *CommandExecutor) SetSearch(ctx context.Context, input commands.SetSearchInput) error {
	return e.SetSearchCommander.Execute(ctx, input)
}

func (e *CommandExecutor) ResetFilters(ctx context.Context, input commands.ResetFiltersInput) error {
	return e.ResetFiltersCommander.Execute(ctx, input)
}

// Handlers exposes plain net/http endpoints backed by the executor for hosts
// that do not mount the go-router integration.
type Handlers struct {
	API Executor
}

func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload commands.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&payload.Form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Login(r.Context(), payload); err != nil {
		respondCommandError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var payload commands.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&payload.Form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Signup(r.Context(), payload); err != nil {
		respondCommandError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.API.Logout(r.Context(), commands.LogoutInput{}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSetFilters(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Range    string `json:"range,omitempty"`
		Category string `json:"category,omitempty"`
		Status   string `json:"status,omitempty"`
		Payment  string `json:"payment,omitempty"`
		Search   string `json:"search,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	if payload.Range != "" {
		if err := h.API.SetDateRange(ctx, commands.SetDateRangeInput{Range: parseRange(payload.Range)}); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	for kind, value := range map[commands.CategoricalFilterKind]string{
		commands.FilterCategory:      payload.Category,
		commands.FilterOrderStatus:   payload.Status,
		commands.FilterPaymentStatus: payload.Payment,
	} {
		if value == "" {
			continue
		}
		if err := h.API.SetCategoricalFilter(ctx, commands.SetCategoricalFilterInput{Kind: kind, Value: value}); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if payload.Search != "" {
		if err := h.API.SetSearch(ctx, commands.SetSearchInput{Query: payload.Search}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}

func parseRange(value string) commerce.DateRange {
	return commerce.DateRange(value)
}

func respondCommandError(w http.ResponseWriter, err error) {
	if formErr, ok := commands.AsFormError(err); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{"errors": formErr.Fields})
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
