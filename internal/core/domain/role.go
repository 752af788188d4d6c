package domain

import "sort"

// Role identifies an organizational role participating in the voucher workflow.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleGSO        Role = "GSO"
	RoleHR         Role = "HR"
	RoleSecretary  Role = "SECRETARY"
	RoleMayor      Role = "MAYOR"
	RoleBAC        Role = "BAC"
	RoleBudget     Role = "BUDGET"
	RoleAccounting Role = "ACCOUNTING"
	RoleTreasury   Role = "TREASURY"
	RoleRequester  Role = "REQUESTER"
)

// roleOffice is the fixed role -> office display name directory.
var roleOffice = map[Role]string{
	RoleAdmin:      "System Administration",
	RoleGSO:        "General Services Office",
	RoleHR:         "Human Resources Office",
	RoleSecretary:  "Secretary's Office",
	RoleMayor:      "Mayor's Office",
	RoleBAC:        "Bids and Awards Committee",
	RoleBudget:     "Budget Office",
	RoleAccounting: "Accounting Office",
	RoleTreasury:   "Treasury Office",
	RoleRequester:  "Requesting Office",
}

// officeRole is the inverse of roleOffice, built once at init.
var officeRole = func() map[string]Role {
	m := make(map[string]Role, len(roleOffice))
	for r, office := range roleOffice {
		m[office] = r
	}
	return m
}()

// IsValid reports whether the role is part of the fixed role directory.
func (r Role) IsValid() bool {
	_, ok := roleOffice[r]
	return ok
}

// OfficeName resolves a role to its office display name. Unknown roles pass
// through unchanged so newly introduced roles degrade gracefully.
func OfficeName(r Role) string {
	if office, ok := roleOffice[r]; ok {
		return office
	}
	return string(r)
}

// RoleForOffice resolves an office display name back to its role, with the
// same identity fallback as OfficeName.
func RoleForOffice(office string) Role {
	if r, ok := officeRole[office]; ok {
		return r
	}
	return Role(office)
}

// Offices returns the sorted, deduplicated list of office display names for
// UI selection lists.
func Offices() []string {
	seen := make(map[string]struct{}, len(roleOffice))
	offices := make([]string, 0, len(roleOffice))
	for _, office := range roleOffice {
		if _, ok := seen[office]; ok {
			continue
		}
		seen[office] = struct{}{}
		offices = append(offices, office)
	}
	sort.Strings(offices)
	return offices
}
