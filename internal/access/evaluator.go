package access

import (
	"github.com/priceoptimizer/backend/models"
)

// Scope describes which product records a listing may return.
type Scope int

const (
	// ScopeAll returns every product.
	ScopeAll Scope = iota
	// ScopeOwned returns only products owned by the target user.
	ScopeOwned
)

// Evaluator makes allow/deny decisions from a role-to-permission table.
// It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	grants map[models.Role][]models.Permission
}

// NewEvaluator creates an Evaluator over the given grants table. The
// table is treated as immutable; callers must not modify it afterwards.
func NewEvaluator(grants map[models.Role][]models.Permission) *Evaluator {
	return &Evaluator{grants: grants}
}

// PermissionsFor returns the permission set granted to role. Unknown
// roles get no permissions.
func (e *Evaluator) PermissionsFor(role models.Role) []models.Permission {
	return e.grants[role]
}

// Authorize reports whether the actor's permission set contains the
// required token. Any token not present is a denial.
func (e *Evaluator) Authorize(actorPerms []models.Permission, required models.Permission) bool {
	for _, p := range actorPerms {
		if p == required {
			return true
		}
	}
	return false
}

// AuthorizeOwnership reports whether an actor may mutate a record owned
// by ownerID. Admins may mutate any record; suppliers only records they
// own. Records without an owner are mutable by admins only.
func (e *Evaluator) AuthorizeOwnership(role models.Role, actorID int64, ownerID *int64) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleSupplier:
		return ownerID != nil && *ownerID == actorID
	}
	return false
}

// ListScope returns the record scope a role may list. Roles outside the
// known set are forbidden.
func (e *Evaluator) ListScope(role models.Role) (Scope, error) {
	switch role {
	case models.RoleAdmin, models.RoleBuyer:
		return ScopeAll, nil
	case models.RoleSupplier:
		return ScopeOwned, nil
	}
	return 0, ErrUnsupportedRole
}
