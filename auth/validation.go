package auth

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/jrsteele09/stitch-smart/users"
)

// emailFormat is a shape check only, no domain lookup
var emailFormat = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validator holds the input checks applied before the session core is asked
// to do anything.
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateUserCredentials validates login form input. It only checks shape;
// whether the credentials are correct is the verifier's job.
func (v *Validator) ValidateUserCredentials(email, password string) error {
	if err := v.validateEmail(email); err != nil {
		return err
	}
	if validation.Validate(password, validation.Required) != nil {
		return PasswordRequiredErr
	}
	return nil
}

// ValidateUser checks an account record before it enters the directory
func (v *Validator) ValidateUser(user users.User) error {
	if validation.Validate(user.ID, validation.Required) != nil {
		return MissingUserIDErr
	}
	if err := v.validateEmail(user.Email); err != nil {
		return fmt.Errorf("user %s: %w", user.ID, err)
	}
	if !user.Role.Valid() {
		return fmt.Errorf("user %s role %q: %w", user.ID, user.Role, InvalidRoleErr)
	}
	return nil
}

func (v *Validator) validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if validation.Validate(email, validation.Required) != nil {
		return EmailRequiredErr
	}
	if validation.Validate(email, validation.Match(emailFormat)) != nil {
		return InvalidEmailFormatErr
	}
	return nil
}
