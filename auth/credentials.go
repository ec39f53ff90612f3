package auth

import (
	"context"
	"crypto/subtle"
	"sync"

	"github.com/jrsteele09/stitch-smart/users"
)

// CredentialVerifier decides whether a password proves ownership of an
// account. It answers only yes or no; a non-nil error means the check itself
// could not run (for example a remote trust store was unreachable).
type CredentialVerifier interface {
	Verify(ctx context.Context, user users.User, password string) (bool, error)
}

// CredentialVerifierFunc adapts a function to the CredentialVerifier interface
type CredentialVerifierFunc func(ctx context.Context, user users.User, password string) (bool, error)

func (f CredentialVerifierFunc) Verify(ctx context.Context, user users.User, password string) (bool, error) {
	return f(ctx, user, password)
}

// DefaultSharedPassword is the placeholder credential every account accepts
// in shared-secret mode.
const DefaultSharedPassword = "password"

// SharedSecretVerifier accepts one password for every account. It stands in
// for real credential verification and must not be used in production.
type SharedSecretVerifier struct {
	Secret string
}

var _ CredentialVerifier = SharedSecretVerifier{}

func NewSharedSecretVerifier(secret string) SharedSecretVerifier {
	if secret == "" {
		secret = DefaultSharedPassword
	}
	return SharedSecretVerifier{Secret: secret}
}

func (v SharedSecretVerifier) Verify(ctx context.Context, _ users.User, password string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(v.Secret)) == 1, nil
}

// PasswordHashVerifier checks the password against the account's bcrypt hash.
// Accounts without a hash never verify.
type PasswordHashVerifier struct{}

var _ CredentialVerifier = PasswordHashVerifier{}

func (PasswordHashVerifier) Verify(ctx context.Context, user users.User, password string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	hash := user.PasswordHash
	if hash == "" {
		// Burn a comparison so a missing hash costs the same as a wrong password
		users.CheckPasswordHash(password, dummyHash())
		return false, nil
	}
	return users.CheckPasswordHash(password, hash), nil
}

var dummyHash = sync.OnceValue(func() string {
	hash, _ := users.HashPassword("stitch-smart-unused-credential")
	return hash
})
