package workflow

import "github.com/lgufms/voucher_tracking_app/internal/core/domain"

type gateKind int

const (
	gateApproval gateKind = iota
	gateBACQuorum
)

// gate is one step of an approval chain. Approval levels are workflow
// relative: their meaning depends on the chain, not on a global enum.
type gate struct {
	kind  gateKind
	level int
	role  domain.Role
	label string
}

// gsoChain is the long chain for GSO-originated vouchers.
var gsoChain = []gate{
	{gateApproval, 1, domain.RoleSecretary, "Awaiting Secretary Review"},
	{gateApproval, 2, domain.RoleMayor, "Awaiting Mayor Approval"},
	{gateBACQuorum, 0, domain.RoleBAC, ""},
	{gateApproval, 4, domain.RoleBudget, "Awaiting Budget Review"},
	{gateApproval, 5, domain.RoleAccounting, "Awaiting Accounting Review"},
}

// standardChain is the chain for every other creator role; it skips BAC and
// renumbers the later levels.
var standardChain = []gate{
	{gateApproval, 1, domain.RoleSecretary, "Awaiting Secretary Review"},
	{gateApproval, 2, domain.RoleMayor, "Awaiting Mayor Approval"},
	{gateApproval, 3, domain.RoleBudget, "Awaiting Budget Review"},
	{gateApproval, 4, domain.RoleAccounting, "Awaiting Accounting Review"},
}

func chainFor(creator domain.Role) []gate {
	if creator == domain.RoleGSO {
		return gsoChain
	}
	return standardChain
}

// ApprovalLevelFor returns the workflow-relative approval level at which the
// given role acts on vouchers from the given creator. The second return is
// false when the role holds no approval gate in that chain (e.g. BAC on a
// standard voucher, or Treasury anywhere).
func ApprovalLevelFor(creator, reviewer domain.Role) (int, bool) {
	for _, g := range chainFor(creator) {
		if g.kind == gateApproval && g.role == reviewer {
			return g.level, true
		}
	}
	return 0, false
}

// ChainIncludesBAC reports whether the creator's chain carries the BAC
// quorum gate.
func ChainIncludesBAC(creator domain.Role) bool {
	return creator == domain.RoleGSO
}
