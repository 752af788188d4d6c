// Package access holds the per-action authorization predicates evaluated
// before any voucher state mutation. Predicates are pure so services and
// handlers share one gate.
package access

import "github.com/lgufms/voucher_tracking_app/internal/core/domain"

// viewRoles is the fixed elevated-role set that may view any voucher.
var viewRoles = map[domain.Role]struct{}{
	domain.RoleAdmin:      {},
	domain.RoleGSO:        {},
	domain.RoleHR:         {},
	domain.RoleSecretary:  {},
	domain.RoleMayor:      {},
	domain.RoleBAC:        {},
	domain.RoleBudget:     {},
	domain.RoleAccounting: {},
	domain.RoleTreasury:   {},
}

// editRoles is narrower than viewRoles: BAC members review but never edit.
var editRoles = map[domain.Role]struct{}{
	domain.RoleAdmin:      {},
	domain.RoleGSO:        {},
	domain.RoleHR:         {},
	domain.RoleSecretary:  {},
	domain.RoleMayor:      {},
	domain.RoleBudget:     {},
	domain.RoleAccounting: {},
	domain.RoleTreasury:   {},
}

// submitRoles may submit vouchers they did not create.
var submitRoles = map[domain.Role]struct{}{
	domain.RoleAdmin: {},
	domain.RoleGSO:   {},
	domain.RoleHR:    {},
}

// IsElevated reports whether the role may see vouchers beyond its own.
func IsElevated(role domain.Role) bool {
	_, ok := viewRoles[role]
	return ok
}

// CanView allows the creator, the assignee, or any elevated role.
func CanView(actor domain.Actor, v domain.Voucher) bool {
	if v.CreatedBy == actor.UserID {
		return true
	}
	if v.AssignedTo != nil && *v.AssignedTo == actor.UserID {
		return true
	}
	_, ok := viewRoles[actor.Role]
	return ok
}

// CanEdit allows the creator or the elevated edit set.
func CanEdit(actor domain.Actor, v domain.Voucher) bool {
	if v.CreatedBy == actor.UserID {
		return true
	}
	_, ok := editRoles[actor.Role]
	return ok
}

// CanDelete allows the creator while the voucher is still a draft, or an admin.
func CanDelete(actor domain.Actor, v domain.Voucher) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}
	return v.CreatedBy == actor.UserID && v.Status == domain.StatusDraft
}

// CanSubmit allows the creator or the office-management roles.
func CanSubmit(actor domain.Actor, v domain.Voucher) bool {
	if v.CreatedBy == actor.UserID {
		return true
	}
	_, ok := submitRoles[actor.Role]
	return ok
}
