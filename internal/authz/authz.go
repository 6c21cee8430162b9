// Package authz implements the access control filter: pure functions that
// decide whether an authenticated caller may perform an operation. They hold
// no state and never touch the request; callers compose them in front of each
// guarded service operation.
package authz

import "inkwell/internal/models"

// Role is the caller class attached by the identity gate.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Context identifies an authenticated caller.
type Context struct {
	UserID uint
	Role   Role
}

// Anonymous is the zero caller used for public read paths.
var Anonymous = Context{}

// Authenticated reports whether the context carries a real caller.
func (c Context) Authenticated() bool {
	return c.UserID != 0
}

// RequireRole allows the operation when the caller holds the required role.
// Admins satisfy every role requirement.
func RequireRole(c Context, required Role) error {
	if !c.Authenticated() {
		return models.NewForbiddenError("Authentication required")
	}
	if required == RoleAdmin && c.Role != RoleAdmin {
		return models.NewForbiddenError("Admin access required")
	}
	return nil
}

// RequireOwner allows the operation only for the resource owner. There is no
// admin bypass here: admin paths are separate operations with their own
// RequireRole gate.
func RequireOwner(c Context, ownerID uint) error {
	if !c.Authenticated() {
		return models.NewForbiddenError("Authentication required")
	}
	if c.UserID != ownerID {
		return models.NewForbiddenError("You can only manage your own posts")
	}
	return nil
}
