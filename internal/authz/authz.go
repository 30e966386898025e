// Package authz resolves a user's effective permission set and answers
// request-time access checks against it.
package authz

import (
	"go-shop-admin/internal/model"
)

// EffectivePermissions computes the permission tokens a user actually holds.
// A custom override replaces the role bundle entirely; the two are never
// unioned. The override list is returned verbatim, unchecked against the
// registry. A dangling or unloaded role resolves to the empty set — a
// data-integrity fault resolves to no access, never elevated access.
func EffectivePermissions(u *model.User) []string {
	if u == nil {
		return nil
	}
	if u.HasCustomPermissions {
		return u.CustomPermissions
	}
	if u.Role == nil {
		return nil
	}
	return u.Role.PermissionNames()
}

// HasPermission reports whether the user's effective set contains the token,
// or the wildcard.
func HasPermission(u *model.User, token string) bool {
	for _, p := range EffectivePermissions(u) {
		if p == token || p == model.Wildcard {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether the user holds at least one of the tokens.
func HasAnyPermission(u *model.User, tokens ...string) bool {
	for _, t := range tokens {
		if HasPermission(u, t) {
			return true
		}
	}
	return false
}
