package domain

// Ownership predicates evaluated per mutation. Handlers resolve the resource
// first (missing resource is 404) and only then consult these (failure is 403).

// CanMutateCraving reports whether the caller may update or delete the craving
func CanMutateCraving(userID string, c *Craving) bool {
	return c.UserID == userID
}

// CanEditResponseMessage reports whether the caller may change the response's
// free text. Anonymous responses have no creator and are never editable.
func CanEditResponseMessage(userID string, r *Response) bool {
	return r.UserID != nil && *r.UserID == userID
}

// CanChangeResponseStatus reports whether the caller may change the response's
// status: only the owner of the parent craving can.
func CanChangeResponseStatus(userID string, parent *Craving) bool {
	return parent.UserID == userID
}

// CanDeleteResponse reports whether the caller may delete the response
func CanDeleteResponse(userID string, r *Response) bool {
	return r.UserID != nil && *r.UserID == userID
}

// CanMutateVendorItem reports whether the caller may update or delete the
// item: it must belong to them and they must currently be acting as a vendor.
func CanMutateVendorItem(u *User, item *VendorItem) bool {
	return item.VendorID == u.ID && EffectiveRole(u) == RoleVendor
}
