package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeedCatalogShape(t *testing.T) {
	require.Len(t, AllPermissions, 14)
	require.Len(t, AllGenres, 21)
	require.Len(t, AllClassifications, 5)

	seen := map[string]bool{}
	for _, name := range AllPermissions {
		require.False(t, seen[name], "duplicate permission %s", name)
		seen[name] = true
	}
}

func TestRoleBundles(t *testing.T) {
	require.Len(t, RoleBundles, 3)

	require.Equal(t, RoleUser, RoleBundles[0].Name)
	require.Empty(t, RoleBundles[0].Permissions)

	require.Equal(t, RoleModerator, RoleBundles[1].Name)
	require.Equal(t, []string{PermDisplayUsers}, RoleBundles[1].Permissions)

	// ADMIN carries the union of every permission.
	require.Equal(t, RoleAdmin, RoleBundles[2].Name)
	require.Equal(t, AllPermissions, RoleBundles[2].Permissions)
}

func TestUserAuthoritiesFlattenRolePermissions(t *testing.T) {
	u := User{Role: &Role{Name: RoleModerator, Permissions: []Permission{{ID: 1, Name: PermDisplayUsers}}}}
	require.Equal(t, []string{PermDisplayUsers}, u.Authorities())

	var bare User
	require.Empty(t, bare.Authorities())
}
