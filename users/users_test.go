package users_test

import (
	"testing"

	"github.com/jrsteele09/stitch-smart/users"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := users.HashPassword("password")
	require.NoError(t, err)
	require.NotEqual(t, "password", hash)

	require.True(t, users.CheckPasswordHash("password", hash))
	require.False(t, users.CheckPasswordHash("Password", hash))
}

func TestRoles(t *testing.T) {
	require.True(t, users.RoleAdministrator.Valid())
	require.True(t, users.RoleStandard.Valid())
	require.False(t, users.RoleType("owner").Valid())

	require.True(t, users.User{Role: users.RoleAdministrator}.IsAdministrator())
	require.False(t, users.User{Role: users.RoleStandard}.IsAdministrator())
}

func TestInitial(t *testing.T) {
	require.Equal(t, "J", users.User{Name: "jane"}.Initial())
	require.Equal(t, "?", users.User{}.Initial())
}
