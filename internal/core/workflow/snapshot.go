package workflow

import "github.com/lgufms/voucher_tracking_app/internal/core/domain"

// Snapshot is the full recorded state of one voucher that the engine
// resolves over. It is an explicit value, not a live query, so resolution
// stays a pure function.
type Snapshot struct {
	Voucher    domain.Voucher
	Approvals  []domain.Approval
	BACReviews []domain.BACReview
	AuditTrail []domain.AuditEntry
	// AuditLoaded distinguishes "no Treasury entries" from "audit trail not
	// fetched"; the engine must not skip Treasury when it lacks history.
	AuditLoaded bool
}

// Reviewer identifies the office whose action is next required.
type Reviewer struct {
	Role        domain.Role `json:"role"`
	Office      string      `json:"office"`
	StatusLabel string      `json:"statusLabel"`
}

// HasAuditAction reports whether the entries contain an action performed by
// a user holding the given role.
func HasAuditAction(entries []domain.AuditEntry, action domain.AuditAction, role domain.Role) bool {
	for _, e := range entries {
		if e.Action == action && e.UserRole == role {
			return true
		}
	}
	return false
}

// ApprovedAtLevel reports whether an APPROVED approval record exists at the
// given workflow-relative level. At most one record is authoritative per
// level; any non-approved record leaves the gate unmet.
func ApprovedAtLevel(approvals []domain.Approval, level int) bool {
	for _, a := range approvals {
		if a.Level == level && a.Status == domain.ApprovalApproved {
			return true
		}
	}
	return false
}

// ApprovedBACCount counts APPROVED BAC reviews; only those count toward quorum.
func ApprovedBACCount(reviews []domain.BACReview) int {
	n := 0
	for _, r := range reviews {
		if r.Status == domain.ApprovalApproved {
			n++
		}
	}
	return n
}
