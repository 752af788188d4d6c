package workflow

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
)

func voucherWith(creator domain.Role, status domain.VoucherStatus) domain.Voucher {
	return domain.Voucher{
		VoucherID:   "v-1",
		Payee:       "Acme Supplies",
		Status:      status,
		CreatorRole: creator,
	}
}

func approved(level int) domain.Approval {
	return domain.Approval{
		ApprovalID: fmt.Sprintf("a-%d", level),
		VoucherID:  "v-1",
		Level:      level,
		Status:     domain.ApprovalApproved,
		ApproverID: "u-approver",
	}
}

func bacApproved(reviewer string) domain.BACReview {
	return domain.BACReview{
		ReviewID:   "r-" + reviewer,
		VoucherID:  "v-1",
		ReviewerID: reviewer,
		Status:     domain.ApprovalApproved,
	}
}

func treasuryAction(action domain.AuditAction) domain.AuditEntry {
	return domain.AuditEntry{
		EntryID:  "e-" + string(action),
		Action:   action,
		UserID:   "u-treasury",
		UserRole: domain.RoleTreasury,
	}
}

func TestResolveCurrentReviewer_TerminalStatuses(t *testing.T) {
	for _, status := range []domain.VoucherStatus{
		domain.StatusRejected, domain.StatusReleased, domain.StatusCancelled,
	} {
		snap := Snapshot{Voucher: voucherWith(domain.RoleGSO, status), AuditLoaded: true}
		assert.Nil(t, ResolveCurrentReviewer(snap, 3), "status %s", status)
	}
}

func TestResolveCurrentReviewer_Draft(t *testing.T) {
	snap := Snapshot{Voucher: voucherWith(domain.RoleHR, domain.StatusDraft), AuditLoaded: true}

	got := ResolveCurrentReviewer(snap, 3)

	require.NotNil(t, got)
	assert.Equal(t, domain.RoleHR, got.Role)
	assert.Equal(t, "Human Resources Office", got.Office)
	assert.Equal(t, "Draft", got.StatusLabel)
}

func TestResolveCurrentReviewer_GSOChainWalk(t *testing.T) {
	snap := Snapshot{Voucher: voucherWith(domain.RoleGSO, domain.StatusPending), AuditLoaded: true}

	got := ResolveCurrentReviewer(snap, 3)
	require.NotNil(t, got)
	assert.Equal(t, domain.RoleSecretary, got.Role)
	assert.Equal(t, "Awaiting Secretary Review", got.StatusLabel)

	snap.Approvals = append(snap.Approvals, approved(1))
	got = ResolveCurrentReviewer(snap, 3)
	require.NotNil(t, got)
	assert.Equal(t, domain.RoleMayor, got.Role)
	assert.Equal(t, "Awaiting Mayor Approval", got.StatusLabel)

	snap.Approvals = append(snap.Approvals, approved(2))
	got = ResolveCurrentReviewer(snap, 3)
	require.NotNil(t, got)
	assert.Equal(t, domain.RoleBAC, got.Role)
	assert.Equal(t, "Awaiting BAC Review (0/3)", got.StatusLabel)

	snap.BACReviews = []domain.BACReview{bacApproved("m1"), bacApproved("m2")}
	got = ResolveCurrentReviewer(snap, 3)
	require.NotNil(t, got)
	assert.Equal(t, domain.RoleBAC, got.Role)
	assert.Equal(t, "Awaiting BAC Review (2/3)", got.StatusLabel)

	snap.BACReviews = append(snap.BACReviews, bacApproved("m3"))
	got = ResolveCurrentReviewer(snap, 3)
	require.NotNil(t, got)
	assert.Equal(t, domain.RoleBudget, got.Role)
	assert.Equal(t, "Awaiting Budget Review", got.StatusLabel)

	snap.Approvals = append(snap.Approvals, approved(4))
	got = ResolveCurrentReviewer(snap, 3)
	require.NotNil(t, got)
	assert.Equal(t, domain.RoleAccounting, got.Role)
	assert.Equal(t, "Awaiting Accounting Review", got.StatusLabel)

	snap.Approvals = append(snap.Approvals, approved(5))
	got = ResolveCurrentReviewer(snap, 3)
	require.NotNil(t, got)
	assert.Equal(t, domain.RoleTreasury, got.Role)
	assert.Equal(t, "Awaiting Check Issuance", got.StatusLabel)

	snap.AuditTrail = append(snap.AuditTrail, treasuryAction(domain.ActionCheckIssuance))
	got = ResolveCurrentReviewer(snap, 3)
	require.NotNil(t, got)
	assert.Equal(t, domain.RoleTreasury, got.Role)
	assert.Equal(t, "Awaiting Release", got.StatusLabel)

	snap.AuditTrail = append(snap.AuditTrail, treasuryAction(domain.ActionMarkReleased))
	assert.Nil(t, ResolveCurrentReviewer(snap, 3))
}

func TestResolveCurrentReviewer_StandardChainSkipsBAC(t *testing.T) {
	snap := Snapshot{
		Voucher:     voucherWith(domain.RoleHR, domain.StatusPending),
		Approvals:   []domain.Approval{approved(1), approved(2)},
		AuditLoaded: true,
	}

	got := ResolveCurrentReviewer(snap, 3)

	require.NotNil(t, got)
	assert.Equal(t, domain.RoleBudget, got.Role, "standard chain goes straight from Mayor to Budget")

	snap.Approvals = append(snap.Approvals, approved(3), approved(4))
	got = ResolveCurrentReviewer(snap, 3)
	require.NotNil(t, got)
	assert.Equal(t, domain.RoleTreasury, got.Role)
}

func TestResolveCurrentReviewer_StrayLaterApprovalDoesNotAdvance(t *testing.T) {
	// Level 5 (Accounting) recorded while levels 1-2 are still unmet: the
	// first unmet gate stays authoritative.
	snap := Snapshot{
		Voucher:     voucherWith(domain.RoleGSO, domain.StatusPending),
		Approvals:   []domain.Approval{approved(5)},
		AuditLoaded: true,
	}

	got := ResolveCurrentReviewer(snap, 3)

	require.NotNil(t, got)
	assert.Equal(t, domain.RoleSecretary, got.Role)
}

func TestResolveCurrentReviewer_RejectedApprovalDoesNotMeetGate(t *testing.T) {
	snap := Snapshot{
		Voucher: voucherWith(domain.RoleHR, domain.StatusPending),
		Approvals: []domain.Approval{{
			ApprovalID: "a-1",
			VoucherID:  "v-1",
			Level:      1,
			Status:     domain.ApprovalRejected,
			ApproverID: "u-sec",
		}},
		AuditLoaded: true,
	}

	got := ResolveCurrentReviewer(snap, 3)

	require.NotNil(t, got)
	assert.Equal(t, domain.RoleSecretary, got.Role)
}

func TestResolveCurrentReviewer_BACRejectionsDoNotCount(t *testing.T) {
	snap := Snapshot{
		Voucher:   voucherWith(domain.RoleGSO, domain.StatusApproved),
		Approvals: []domain.Approval{approved(1), approved(2)},
		BACReviews: []domain.BACReview{
			bacApproved("m1"),
			{ReviewID: "r-m2", VoucherID: "v-1", ReviewerID: "m2", Status: domain.ApprovalRejected},
		},
		AuditLoaded: true,
	}

	got := ResolveCurrentReviewer(snap, 2)

	require.NotNil(t, got)
	assert.Equal(t, domain.RoleBAC, got.Role)
	assert.Equal(t, "Awaiting BAC Review (1/2)", got.StatusLabel)
}

func TestResolveCurrentReviewer_QuorumFallback(t *testing.T) {
	snap := Snapshot{
		Voucher:     voucherWith(domain.RoleGSO, domain.StatusApproved),
		Approvals:   []domain.Approval{approved(1), approved(2)},
		AuditLoaded: true,
	}

	got := ResolveCurrentReviewer(snap, 0)

	require.NotNil(t, got)
	assert.Equal(t, fmt.Sprintf("Awaiting BAC Review (0/%d)", domain.DefaultBACRequiredApprovals), got.StatusLabel)
}

func TestResolveCurrentReviewer_AuditNotLoaded(t *testing.T) {
	snap := Snapshot{
		Voucher:     voucherWith(domain.RoleHR, domain.StatusApproved),
		Approvals:   []domain.Approval{approved(1), approved(2), approved(3), approved(4)},
		AuditLoaded: false,
	}

	got := ResolveCurrentReviewer(snap, 3)

	require.NotNil(t, got)
	assert.Equal(t, domain.RoleTreasury, got.Role)
	assert.Equal(t, "Awaiting Treasury Action", got.StatusLabel)
}

func TestResolveCurrentReviewer_NonTreasuryAuditActionsIgnored(t *testing.T) {
	snap := Snapshot{
		Voucher:   voucherWith(domain.RoleHR, domain.StatusApproved),
		Approvals: []domain.Approval{approved(1), approved(2), approved(3), approved(4)},
		AuditTrail: []domain.AuditEntry{{
			EntryID:  "e-1",
			Action:   domain.ActionCheckIssuance,
			UserID:   "u-admin",
			UserRole: domain.RoleAdmin,
		}},
		AuditLoaded: true,
	}

	got := ResolveCurrentReviewer(snap, 3)

	require.NotNil(t, got)
	assert.Equal(t, "Awaiting Check Issuance", got.StatusLabel, "CHECK_ISSUANCE by a non-Treasury role must not count")
}

func TestApprovalLevelFor(t *testing.T) {
	level, ok := ApprovalLevelFor(domain.RoleGSO, domain.RoleBudget)
	assert.True(t, ok)
	assert.Equal(t, 4, level)

	level, ok = ApprovalLevelFor(domain.RoleHR, domain.RoleBudget)
	assert.True(t, ok)
	assert.Equal(t, 3, level)

	_, ok = ApprovalLevelFor(domain.RoleHR, domain.RoleBAC)
	assert.False(t, ok, "BAC holds no approval level on a standard chain")

	_, ok = ApprovalLevelFor(domain.RoleGSO, domain.RoleBAC)
	assert.False(t, ok, "BAC is a quorum gate, not an approval level")

	_, ok = ApprovalLevelFor(domain.RoleGSO, domain.RoleTreasury)
	assert.False(t, ok)
}

func TestChainIncludesBAC(t *testing.T) {
	assert.True(t, ChainIncludesBAC(domain.RoleGSO))
	assert.False(t, ChainIncludesBAC(domain.RoleHR))
	assert.False(t, ChainIncludesBAC(domain.RoleAdmin))
	assert.False(t, ChainIncludesBAC(domain.RoleRequester))
}
