package users

import (
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// RoleType is one of the two fixed roles an account can hold
type RoleType string

const (
	RoleStandard      RoleType = "user"  // Can stitch and view their outputs
	RoleAdministrator RoleType = "admin" // Can additionally open the admin dashboard
)

// Valid reports whether r is one of the known roles
func (r RoleType) Valid() bool {
	return r == RoleStandard || r == RoleAdministrator
}

// User is a registered account. It holds only value fields so a plain copy
// is an independent snapshot.
type User struct {
	ID           string    `json:"id"`        // Unique identifier, immutable
	Email        string    `json:"email"`     // Unique login email, immutable
	Name         string    `json:"name"`      // Display name
	Role         RoleType  `json:"role"`      // Exactly one role
	PasswordHash string    `json:"-"`         // bcrypt hash, only used in hashed credential mode
	LastLogin    time.Time `json:"lastLogin"` // Last successful login
	CreatedAt    time.Time `json:"createdAt"` // When the account was registered
}

func (u User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}

// Initial returns the upper-cased first letter of the display name, used for avatars
func (u User) Initial() string {
	for _, r := range u.Name {
		return string(unicode.ToUpper(r))
	}
	return "?"
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
