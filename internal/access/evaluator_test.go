package access

import (
	"testing"

	"github.com/priceoptimizer/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluator_PermissionsFor(t *testing.T) {
	e := NewEvaluator(models.DefaultRoleGrants())

	t.Run("admin has the full permission set", func(t *testing.T) {
		perms := e.PermissionsFor(models.RoleAdmin)
		assert.ElementsMatch(t, []models.Permission{
			models.PermProductCreate,
			models.PermProductRead,
			models.PermProductUpdate,
			models.PermProductDelete,
		}, perms)
	})

	t.Run("supplier cannot delete", func(t *testing.T) {
		perms := e.PermissionsFor(models.RoleSupplier)
		assert.ElementsMatch(t, []models.Permission{
			models.PermProductCreate,
			models.PermProductRead,
			models.PermProductUpdate,
		}, perms)
	})

	t.Run("buyer is read only", func(t *testing.T) {
		perms := e.PermissionsFor(models.RoleBuyer)
		assert.Equal(t, []models.Permission{models.PermProductRead}, perms)
	})

	t.Run("unknown role gets nothing", func(t *testing.T) {
		assert.Empty(t, e.PermissionsFor(models.Role("auditor")))
	})
}

func TestEvaluator_Authorize(t *testing.T) {
	e := NewEvaluator(models.DefaultRoleGrants())

	buyer := e.PermissionsFor(models.RoleBuyer)
	assert.True(t, e.Authorize(buyer, models.PermProductRead))
	assert.False(t, e.Authorize(buyer, models.PermProductCreate))
	assert.False(t, e.Authorize(buyer, models.PermProductDelete))

	assert.False(t, e.Authorize(nil, models.PermProductRead))
}

func TestEvaluator_AuthorizeOwnership(t *testing.T) {
	e := NewEvaluator(models.DefaultRoleGrants())

	owner := int64(7)
	other := int64(8)

	tests := []struct {
		name    string
		role    models.Role
		actorID int64
		ownerID *int64
		want    bool
	}{
		{"admin may mutate any record", models.RoleAdmin, 1, &owner, true},
		{"admin may mutate unowned record", models.RoleAdmin, 1, nil, true},
		{"supplier may mutate own record", models.RoleSupplier, 7, &owner, true},
		{"supplier may not mutate another's record", models.RoleSupplier, 8, &owner, false},
		{"supplier may not mutate unowned record", models.RoleSupplier, 7, nil, false},
		{"buyer never passes ownership", models.RoleBuyer, 8, &other, false},
		{"unknown role denied", models.Role("auditor"), 7, &owner, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.AuthorizeOwnership(tt.role, tt.actorID, tt.ownerID))
		})
	}
}

func TestEvaluator_ListScope(t *testing.T) {
	e := NewEvaluator(models.DefaultRoleGrants())

	t.Run("admin sees all", func(t *testing.T) {
		scope, err := e.ListScope(models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, ScopeAll, scope)
	})

	t.Run("buyer sees all", func(t *testing.T) {
		scope, err := e.ListScope(models.RoleBuyer)
		require.NoError(t, err)
		assert.Equal(t, ScopeAll, scope)
	})

	t.Run("supplier is scoped to owned records", func(t *testing.T) {
		scope, err := e.ListScope(models.RoleSupplier)
		require.NoError(t, err)
		assert.Equal(t, ScopeOwned, scope)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		_, err := e.ListScope(models.Role("auditor"))
		assert.ErrorIs(t, err, ErrUnsupportedRole)
	})
}

func TestEvaluator_CustomGrantsTable(t *testing.T) {
	// The grants table is injected, so a deployment can narrow a role
	// without touching the evaluator.
	grants := map[models.Role][]models.Permission{
		models.RoleSupplier: {models.PermProductRead},
	}
	e := NewEvaluator(grants)

	perms := e.PermissionsFor(models.RoleSupplier)
	assert.True(t, e.Authorize(perms, models.PermProductRead))
	assert.False(t, e.Authorize(perms, models.PermProductCreate))
	assert.Empty(t, e.PermissionsFor(models.RoleAdmin))
}
