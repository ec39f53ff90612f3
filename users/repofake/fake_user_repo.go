package fakeuserrepo

import (
	"sync"
	"time"

	"github.com/google/uuid"
	autherrors "github.com/jrsteele09/stitch-smart/internal/errors"
	"github.com/jrsteele09/stitch-smart/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

// FakeUserRepo is the in-memory directory. Reads hand out copies so callers
// never alias the stored records.
type FakeUserRepo struct {
	users    map[string]users.User
	emailIds map[string]string // email to user id
	order    []string          // ids in insertion order
	lock     sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:    make(map[string]users.User),
		emailIds: make(map[string]string),
	}
}

func (ur *FakeUserRepo) Upsert(user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if ownerID, ok := ur.emailIds[user.Email]; ok && ownerID != user.ID {
		return autherrors.ErrDuplicateEmail
	}
	existing, ok := ur.users[user.ID]
	if ok && existing.Email != user.Email {
		return autherrors.Wrapf(autherrors.ErrUnsupported, "email of user %s is immutable", user.ID)
	}
	if !ok {
		ur.order = append(ur.order, user.ID)
	}
	ur.users[user.ID] = *user
	ur.emailIds[user.Email] = user.ID
	return nil
}

func (ur *FakeUserRepo) GetByEmail(email string) (users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	userID, ok := ur.emailIds[email]
	if !ok {
		return users.User{}, autherrors.ErrUserNotFound
	}
	return ur.users[userID], nil
}

func (ur *FakeUserRepo) GetByID(id string) (users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return users.User{}, autherrors.ErrUserNotFound
	}
	return user, nil
}

func (ur *FakeUserRepo) List() ([]users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	userList := make([]users.User, 0, len(ur.order))
	for _, id := range ur.order {
		userList = append(userList, ur.users[id])
	}
	return userList, nil
}

func (ur *FakeUserRepo) Count() int {
	ur.lock.RLock()
	defer ur.lock.RUnlock()
	return len(ur.users)
}

func (ur *FakeUserRepo) SetLastLogin(id string, at time.Time) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	user, ok := ur.users[id]
	if !ok {
		return autherrors.ErrUserNotFound
	}
	user.LastLogin = at
	ur.users[id] = user
	return nil
}
