package workflow

import (
	"fmt"

	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
)

// ResolveCurrentReviewer derives the office whose action is next required
// from the recorded approvals, BAC reviews and audit history. It returns nil
// when nothing is pending (terminal status, or all gates met and released).
//
// Gates are evaluated strictly in chain order; the first unmet gate is
// authoritative regardless of what later gates' records show, so a stray
// out-of-order approval never advances the reviewer.
//
// bacQuorum is injected by the caller; non-positive values fall back to the
// process default.
func ResolveCurrentReviewer(snap Snapshot, bacQuorum int) *Reviewer {
	v := snap.Voucher
	if v.Status.IsTerminal() {
		return nil
	}
	if v.Status == domain.StatusDraft {
		return &Reviewer{
			Role:        v.CreatorRole,
			Office:      domain.OfficeName(v.CreatorRole),
			StatusLabel: "Draft",
		}
	}

	if bacQuorum <= 0 {
		bacQuorum = domain.DefaultBACRequiredApprovals
	}

	for _, g := range chainFor(v.CreatorRole) {
		switch g.kind {
		case gateApproval:
			if !ApprovedAtLevel(snap.Approvals, g.level) {
				return &Reviewer{Role: g.role, Office: domain.OfficeName(g.role), StatusLabel: g.label}
			}
		case gateBACQuorum:
			approved := ApprovedBACCount(snap.BACReviews)
			if approved < bacQuorum {
				return &Reviewer{
					Role:        domain.RoleBAC,
					Office:      domain.OfficeName(domain.RoleBAC),
					StatusLabel: fmt.Sprintf("Awaiting BAC Review (%d/%d)", approved, bacQuorum),
				}
			}
		}
	}

	// Treasury two-step from audit history.
	if !snap.AuditLoaded {
		return &Reviewer{
			Role:        domain.RoleTreasury,
			Office:      domain.OfficeName(domain.RoleTreasury),
			StatusLabel: "Awaiting Treasury Action",
		}
	}
	if !HasAuditAction(snap.AuditTrail, domain.ActionCheckIssuance, domain.RoleTreasury) {
		return &Reviewer{
			Role:        domain.RoleTreasury,
			Office:      domain.OfficeName(domain.RoleTreasury),
			StatusLabel: "Awaiting Check Issuance",
		}
	}
	if !HasAuditAction(snap.AuditTrail, domain.ActionMarkReleased, domain.RoleTreasury) {
		return &Reviewer{
			Role:        domain.RoleTreasury,
			Office:      domain.OfficeName(domain.RoleTreasury),
			StatusLabel: "Awaiting Release",
		}
	}
	return nil
}
