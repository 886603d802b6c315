package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-storefront-admin/components/admin"
	"github.com/goliatone/go-storefront-admin/components/commerce"
)

var errMissingStore = errors.New("commands: commerce store is required")

// LoginInput carries the submitted credential form.
type LoginInput struct {
	Form admin.LoginForm
}

// LoginCommand validates the form and signs the viewer in.
type LoginCommand struct {
	store     *commerce.Store
	telemetry Telemetry
}

// NewLoginCommand creates the command.
func NewLoginCommand(store *commerce.Store, telemetry Telemetry) *LoginCommand {
	return &LoginCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[LoginInput] = (*LoginCommand)(nil)

// Execute signs in when the form is well formed. Validation failures are
// returned as a FormError so transports can re-render inline messages.
func (c *LoginCommand) Execute(ctx context.Context, msg LoginInput) error {
	if c.store == nil {
		return errMissingStore
	}
	if errs := msg.Form.Validate(); !errs.Valid() {
		return &FormError{Fields: errs}
	}
	c.store.Login(msg.Form.User())
	c.telemetry.Record(ctx, "admin.session.login", map[string]any{
		"email": msg.Form.Email,
	})
	return nil
}

// SignupInput carries the submitted registration form.
type SignupInput struct {
	Form admin.SignupForm
}

// SignupCommand validates the form and signs the new viewer in.
type SignupCommand struct {
	store     *commerce.Store
	telemetry Telemetry
}

// NewSignupCommand creates the command.
func NewSignupCommand(store *commerce.Store, telemetry Telemetry) *SignupCommand {
	return &SignupCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SignupInput] = (*SignupCommand)(nil)

// Execute registers and signs in when the form is well formed.
func (c *SignupCommand) Execute(ctx context.Context, msg SignupInput) error {
	if c.store == nil {
		return errMissingStore
	}
	if errs := msg.Form.Validate(); !errs.Valid() {
		return &FormError{Fields: errs}
	}
	c.store.Login(msg.Form.User())
	c.telemetry.Record(ctx, "admin.session.signup", map[string]any{
		"email": msg.Form.Email,
		"role":  msg.Form.Role,
	})
	return nil
}

// LogoutInput signs the current viewer out.
type LogoutInput struct{}

// LogoutCommand clears the session user.
type LogoutCommand struct {
	store     *commerce.Store
	telemetry Telemetry
}

// NewLogoutCommand creates the command.
func NewLogoutCommand(store *commerce.Store, telemetry Telemetry) *LogoutCommand {
	return &LogoutCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[LogoutInput] = (*LogoutCommand)(nil)

// Execute signs the viewer out. Filters and theme are untouched.
func (c *LogoutCommand) Execute(ctx context.Context, _ LogoutInput) error {
	if c.store == nil {
		return errMissingStore
	}
	c.store.Logout()
	c.telemetry.Record(ctx, "admin.session.logout", nil)
	return nil
}

// FormError carries per-field validation messages across the command boundary.
type FormError struct {
	Fields admin.FieldErrors
}

// Error implements error.
func (e *FormError) Error() string {
	return fmt.Sprintf("commands: form validation failed (%d fields)", len(e.Fields))
}

// AsFormError extracts a FormError if err wraps one.
func AsFormError(err error) (*FormError, bool) {
	var formErr *FormError
	if errors.As(err, &formErr) {
		return formErr, true
	}
	return nil, false
}
