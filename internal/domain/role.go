package domain

import "errors"

// Role is both a capability value and an active-role value
type Role string

// Role values
const (
	RoleUser   Role = "user"   // Consumer persona
	RoleVendor Role = "vendor" // Vendor persona
	RoleBoth   Role = "both"   // Capability only: account owns both personas
)

// Role state machine errors
var (
	ErrInvalidRole    = errors.New("target role must be user or vendor")        // Unknown switch target
	ErrMissingProfile = errors.New("no profile exists for the requested role")  // Switch without backing profile
)

// EffectiveRole returns the role used for authorization decisions: the active
// role when one was explicitly chosen, otherwise the account's sole capability.
// Dual-capability accounts that never switched act as "user" until they do.
func EffectiveRole(u *User) Role {
	if u.ActiveRole != nil {
		return *u.ActiveRole
	}
	if u.UserType == RoleBoth {
		return RoleUser
	}
	return u.UserType
}

// SwitchRole moves the account to the target role. The matching profile must
// already exist; switching a single-capability account to the other role
// promotes its capability to "both". The caller persists the mutated fields.
func SwitchRole(u *User, target Role, hasUserProfile, hasVendorProfile bool) error {
	if target != RoleUser && target != RoleVendor {
		return ErrInvalidRole
	}
	if target == RoleUser && !hasUserProfile {
		return ErrMissingProfile
	}
	if target == RoleVendor && !hasVendorProfile {
		return ErrMissingProfile
	}
	// Promote capability when the account crosses into its other persona
	if u.UserType != RoleBoth && u.UserType != target {
		u.UserType = RoleBoth
	}
	role := target
	u.ActiveRole = &role
	return nil
}

// GrantVendorCapability upgrades a "user" account to "both" when it creates a
// vendor profile. The active role is left untouched: the account keeps acting
// as "user" until it explicitly switches.
func GrantVendorCapability(u *User) {
	if u.UserType == RoleUser {
		u.UserType = RoleBoth
	}
}
