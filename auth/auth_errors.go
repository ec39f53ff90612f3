package auth

import "errors"

var (
	EmailRequiredErr      = errors.New("email is required")
	InvalidEmailFormatErr = errors.New("invalid email format")
	PasswordRequiredErr   = errors.New("password is required")
	InvalidRoleErr        = errors.New("invalid role")
	MissingUserIDErr      = errors.New("user id is required")
)
