package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_OwnedBy(t *testing.T) {
	owner := int64(7)

	p := &Product{ID: 1, OwnerID: &owner}
	assert.True(t, p.OwnedBy(7))
	assert.False(t, p.OwnedBy(8))

	unowned := &Product{ID: 2}
	assert.False(t, unowned.OwnedBy(7))
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleSupplier}).IsAdmin())
}
