package fakeuserrepo_test

import (
	"testing"
	"time"

	autherrors "github.com/jrsteele09/stitch-smart/internal/errors"
	"github.com/jrsteele09/stitch-smart/users"
	fakeuserrepo "github.com/jrsteele09/stitch-smart/users/repofake"
	"github.com/stretchr/testify/require"
)

func TestUpsertAndLookup(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	now := time.Now()
	for _, u := range users.SeedUsers(now, "") {
		u := u
		require.NoError(t, repo.Upsert(&u))
	}

	require.Equal(t, 3, repo.Count())

	u, err := repo.GetByEmail("jane@example.com")
	require.NoError(t, err)
	require.Equal(t, "3", u.ID)

	u, err = repo.GetByID("1")
	require.NoError(t, err)
	require.Equal(t, users.RoleAdministrator, u.Role)

	_, err = repo.GetByEmail("JANE@example.com")
	require.ErrorIs(t, err, autherrors.ErrUserNotFound)

	list, err := repo.List()
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2", "3"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestUpsertGeneratesID(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	u := &users.User{Email: "new@example.com", Role: users.RoleStandard}
	require.NoError(t, repo.Upsert(u))
	require.NotEmpty(t, u.ID)
}

func TestEmailIsUniqueAndImmutable(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	require.NoError(t, repo.Upsert(&users.User{ID: "a", Email: "a@example.com"}))

	err := repo.Upsert(&users.User{ID: "b", Email: "a@example.com"})
	require.ErrorIs(t, err, autherrors.ErrDuplicateEmail)

	err = repo.Upsert(&users.User{ID: "a", Email: "changed@example.com"})
	require.ErrorIs(t, err, autherrors.ErrUnsupported)
}

func TestReadsReturnCopies(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	require.NoError(t, repo.Upsert(&users.User{ID: "a", Email: "a@example.com", Name: "Alice"}))

	u, err := repo.GetByID("a")
	require.NoError(t, err)
	u.Name = "Mallory"

	stored, err := repo.GetByID("a")
	require.NoError(t, err)
	require.Equal(t, "Alice", stored.Name)
}

func TestSetLastLogin(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	require.NoError(t, repo.Upsert(&users.User{ID: "a", Email: "a@example.com"}))

	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SetLastLogin("a", at))

	u, err := repo.GetByID("a")
	require.NoError(t, err)
	require.True(t, at.Equal(u.LastLogin))

	require.ErrorIs(t, repo.SetLastLogin("missing", at), autherrors.ErrUserNotFound)
}
