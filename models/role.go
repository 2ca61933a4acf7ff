package models

// Role represents the role of a user in the system
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSupplier Role = "supplier"
	RoleBuyer    Role = "buyer"
)

// Permission is an opaque token identifying one allowed action on one
// resource type.
type Permission string

const (
	PermProductCreate Permission = "product:create"
	PermProductRead   Permission = "product:read"
	PermProductUpdate Permission = "product:update"
	PermProductDelete Permission = "product:delete"
)

// Valid returns true if the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupplier, RoleBuyer:
		return true
	}
	return false
}

// DefaultRoleGrants returns the static role-to-permission mapping.
// The map is built fresh on each call so callers can safely hold and
// modify their own copy (e.g. tests with alternate tables).
func DefaultRoleGrants() map[Role][]Permission {
	return map[Role][]Permission{
		RoleAdmin: {
			PermProductCreate,
			PermProductRead,
			PermProductUpdate,
			PermProductDelete,
		},
		RoleSupplier: {
			PermProductCreate,
			PermProductRead,
			PermProductUpdate,
		},
		RoleBuyer: {
			PermProductRead,
		},
	}
}
