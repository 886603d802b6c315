package admin

import (
	"strings"

	"github.com/goliatone/go-storefront-admin/components/commerce"
)

const minPasswordLength = 6

// FieldErrors maps form field names to a human readable problem.
type FieldErrors map[string]string

// Valid reports whether the form passed validation.
func (e FieldErrors) Valid() bool { return len(e) == 0 }

// LoginForm is the payload for the mock sign-in flow. There is no account
// database: any well-formed submission signs in as the stated identity, and
// the password is accepted as-is in demo mode.
type LoginForm struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Role     string `json:"role" form:"role"`
	Password string `json:"password" form:"password"`
}

// Validate checks shape only, not identity. The password carries no rule.
func (f LoginForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if len(strings.TrimSpace(f.Name)) < 2 {
		errs["name"] = "Name must be at least 2 characters"
	}
	validateEmail(errs, f.Email)
	if _, err := commerce.ParseRole(f.Role); err != nil {
		errs["role"] = "Choose a valid role"
	}
	return errs
}

// User derives the session user signed in by this form.
func (f LoginForm) User() commerce.User {
	role, err := commerce.ParseRole(f.Role)
	if err != nil {
		role = commerce.RoleAdmin
	}
	return commerce.User{
		Name:  strings.TrimSpace(f.Name),
		Email: strings.TrimSpace(f.Email),
		Role:  role,
	}
}

// SignupForm is the registration payload. Like login it is a mock flow: a
// valid form signs the viewer straight in.
type SignupForm struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Role     string `json:"role" form:"role"`
	Password string `json:"password" form:"password"`
	Confirm  string `json:"confirm" form:"confirm"`
}

// Validate applies the per-field rules and returns inline errors.
func (f SignupForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if len(strings.TrimSpace(f.Name)) < 2 {
		errs["name"] = "Name must be at least 2 characters"
	}
	validateEmail(errs, f.Email)
	if _, err := commerce.ParseRole(f.Role); err != nil {
		errs["role"] = "Choose a valid role"
	}
	if len(f.Password) < minPasswordLength {
		errs["password"] = "Password must be at least 6 characters"
	} else if f.Password != f.Confirm {
		errs["confirm"] = "Passwords do not match"
	}
	return errs
}

// User derives the session user created by this form.
func (f SignupForm) User() commerce.User {
	role, err := commerce.ParseRole(f.Role)
	if err != nil {
		role = commerce.RoleAdmin
	}
	return commerce.User{
		Name:  strings.TrimSpace(f.Name),
		Email: strings.TrimSpace(f.Email),
		Role:  role,
	}
}

func validateEmail(errs FieldErrors, email string) {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		errs["email"] = "Enter a valid email address"
	}
}
