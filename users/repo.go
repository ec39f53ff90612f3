package users

import "time"

// Reader is the read-only view of the directory handed to consumers
type Reader interface {
	GetByEmail(email string) (User, error)
	GetByID(ID string) (User, error)
	List() ([]User, error)
	Count() int
}

// UserRepo is the directory owned by the session manager
type UserRepo interface {
	Reader
	Upsert(user *User) error
	SetLastLogin(ID string, at time.Time) error
}
