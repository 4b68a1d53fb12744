package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCanMutateCraving(t *testing.T) {
	t.Parallel()

	c := Craving{UserID: "owner"}
	assert.True(t, CanMutateCraving("owner", &c))
	assert.False(t, CanMutateCraving("other", &c))
}

func TestCanEditResponseMessage(t *testing.T) {
	t.Parallel()

	owned := Response{UserID: strPtr("responder")}
	assert.True(t, CanEditResponseMessage("responder", &owned))
	assert.False(t, CanEditResponseMessage("other", &owned))

	// Anonymous responses have no creator, so nobody can edit them
	anon := Response{UserID: nil, IsAnonymous: true}
	assert.False(t, CanEditResponseMessage("responder", &anon))
	assert.False(t, CanEditResponseMessage("", &anon))
}

func TestCanChangeResponseStatus(t *testing.T) {
	t.Parallel()

	parent := Craving{UserID: "craver"}
	assert.True(t, CanChangeResponseStatus("craver", &parent))
	// Not even the responder may change the status of their own response
	assert.False(t, CanChangeResponseStatus("responder", &parent))
}

func TestCanDeleteResponse(t *testing.T) {
	t.Parallel()

	owned := Response{UserID: strPtr("responder")}
	assert.True(t, CanDeleteResponse("responder", &owned))
	assert.False(t, CanDeleteResponse("craver", &owned))
	assert.False(t, CanDeleteResponse("responder", &Response{UserID: nil}))
}

func TestCanMutateVendorItem(t *testing.T) {
	t.Parallel()

	item := VendorItem{VendorID: "v1"}

	acting := User{ID: "v1", UserType: RoleBoth, ActiveRole: rolePtr(RoleVendor)}
	assert.True(t, CanMutateVendorItem(&acting, &item))

	// Owner acting in user mode is denied until they switch back
	userMode := User{ID: "v1", UserType: RoleBoth, ActiveRole: rolePtr(RoleUser)}
	assert.False(t, CanMutateVendorItem(&userMode, &item))

	otherVendor := User{ID: "v2", UserType: RoleVendor}
	assert.False(t, CanMutateVendorItem(&otherVendor, &item))
}
