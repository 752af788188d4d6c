package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lgufms/voucher_tracking_app/internal/apperrors"
	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	portsrepo "github.com/lgufms/voucher_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/lgufms/voucher_tracking_app/internal/core/ports/services"
	"github.com/lgufms/voucher_tracking_app/internal/dto"
)

type reviewFixture struct {
	voucherRepo *mockVoucherRepo
	auditRepo   *mockAuditRepo
	settingRepo *mockSettingRepo
	dispatcher  *mockDispatcher
	svc         portssvc.ReviewSvcFacade
}

func newReviewFixture() *reviewFixture {
	f := &reviewFixture{
		voucherRepo: &mockVoucherRepo{},
		auditRepo:   &mockAuditRepo{},
		settingRepo: &mockSettingRepo{},
		dispatcher:  &mockDispatcher{},
	}
	f.svc = NewReviewService(f.voucherRepo, f.auditRepo, f.settingRepo, f.dispatcher)
	// The quorum setting is absent unless a test overrides it; the service
	// falls back to the process default.
	f.settingRepo.On("FindSettingByKey", mock.Anything, domain.SettingBACRequiredApprovals).
		Return(nil, apperrors.ErrNotFound).Maybe()
	return f
}

// stubSnapshot wires the reads loadSnapshot performs for one voucher.
func (f *reviewFixture) stubSnapshot(v *domain.Voucher, approvals []domain.Approval, bacReviews []domain.BACReview, audit []domain.AuditEntry) {
	f.voucherRepo.On("FindVoucherByID", mock.Anything, v.VoucherID).Return(v, nil)
	f.voucherRepo.On("FindApprovalsByVoucherID", mock.Anything, v.VoucherID).Return(approvals, nil)
	f.voucherRepo.On("FindBACReviewsByVoucherID", mock.Anything, v.VoucherID).Return(bacReviews, nil).Maybe()
	f.auditRepo.On("FindAuditByVoucherID", mock.Anything, v.VoucherID).Return(audit, nil)
}

func reviewVoucher(creator domain.Role, status domain.VoucherStatus) *domain.Voucher {
	return &domain.Voucher{
		VoucherID:   "v-1",
		Payee:       "Acme Supplies",
		Status:      status,
		CreatorRole: creator,
		AuditFields: domain.AuditFields{CreatedBy: "creator-1"},
	}
}

func levelApproval(level int) domain.Approval {
	return domain.Approval{
		ApprovalID: "a-level",
		VoucherID:  "v-1",
		Level:      level,
		Status:     domain.ApprovalApproved,
		ApproverID: "u-approver",
	}
}

func mayorAudit() domain.AuditEntry {
	return domain.AuditEntry{EntryID: "e-mayor", Action: domain.ActionReview, UserRole: domain.RoleMayor}
}

func TestSecretaryReview_HappyPath(t *testing.T) {
	f := newReviewFixture()
	voucher := reviewVoucher(domain.RoleHR, domain.StatusPending)
	f.stubSnapshot(voucher, nil, nil, nil)

	var applied portsrepo.VoucherTransition
	f.voucherRepo.On("ApplyTransition", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { applied = args.Get(1).(portsrepo.VoucherTransition) }).
		Return(nil)
	f.dispatcher.On("NotifyAsync", mock.Anything, domain.ActionSecretaryReview, mock.Anything, "looks good").Return()

	actor := domain.Actor{UserID: "u-sec", Role: domain.RoleSecretary}
	got, err := f.svc.SecretaryReview(context.Background(), "v-1", dto.ReviewRequest{Comments: "looks good"}, actor)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusValidated, got.Status)
	require.NotNil(t, applied.NewStatus)
	assert.Equal(t, domain.StatusValidated, *applied.NewStatus)
	require.NotNil(t, applied.Approval)
	assert.Equal(t, 1, applied.Approval.Level)
	assert.Equal(t, domain.ApprovalApproved, applied.Approval.Status)
	assert.Equal(t, "u-sec", applied.Approval.ApproverID)
	assert.Equal(t, domain.ActionSecretaryReview, applied.Audit.Action)
	f.dispatcher.AssertExpectations(t)
}

func TestSecretaryReview_WrongRole(t *testing.T) {
	f := newReviewFixture()

	actor := domain.Actor{UserID: "u-budget", Role: domain.RoleBudget}
	_, err := f.svc.SecretaryReview(context.Background(), "v-1", dto.ReviewRequest{}, actor)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	f.voucherRepo.AssertNotCalled(t, "ApplyTransition", mock.Anything, mock.Anything)
}

func TestSecretaryReview_NotReviewableStatus(t *testing.T) {
	f := newReviewFixture()
	voucher := reviewVoucher(domain.RoleHR, domain.StatusRejected)
	f.voucherRepo.On("FindVoucherByID", mock.Anything, "v-1").Return(voucher, nil)

	actor := domain.Actor{UserID: "u-sec", Role: domain.RoleSecretary}
	_, err := f.svc.SecretaryReview(context.Background(), "v-1", dto.ReviewRequest{}, actor)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestMayorReview_BeforeSecretaryRejected(t *testing.T) {
	f := newReviewFixture()
	voucher := reviewVoucher(domain.RoleHR, domain.StatusPending)
	f.stubSnapshot(voucher, nil, nil, nil)

	actor := domain.Actor{UserID: "u-mayor", Role: domain.RoleMayor}
	_, err := f.svc.MayorReview(context.Background(), "v-1", dto.ReviewRequest{}, actor)

	assert.ErrorIs(t, err, apperrors.ErrSequencing)
	f.voucherRepo.AssertNotCalled(t, "ApplyTransition", mock.Anything, mock.Anything)
}

func TestMayorReview_HappyPath(t *testing.T) {
	f := newReviewFixture()
	voucher := reviewVoucher(domain.RoleHR, domain.StatusValidated)
	f.stubSnapshot(voucher, []domain.Approval{levelApproval(1)}, nil, nil)

	var applied portsrepo.VoucherTransition
	f.voucherRepo.On("ApplyTransition", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { applied = args.Get(1).(portsrepo.VoucherTransition) }).
		Return(nil)
	f.dispatcher.On("NotifyAsync", mock.Anything, domain.ActionReview, mock.Anything, "").Return()

	actor := domain.Actor{UserID: "u-mayor", Role: domain.RoleMayor}
	got, err := f.svc.MayorReview(context.Background(), "v-1", dto.ReviewRequest{}, actor)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	require.NotNil(t, applied.Approval)
	assert.Equal(t, 2, applied.Approval.Level)
	assert.Equal(t, domain.ActionReview, applied.Audit.Action)
}

func TestBACMemberReview_StandardVoucherRejected(t *testing.T) {
	f := newReviewFixture()
	voucher := reviewVoucher(domain.RoleHR, domain.StatusApproved)
	f.stubSnapshot(voucher, []domain.Approval{levelApproval(1), levelApproval(2)}, nil, nil)

	actor := domain.Actor{UserID: "u-bac", Role: domain.RoleBAC}
	_, err := f.svc.BACMemberReview(context.Background(), "v-1", dto.ReviewRequest{}, actor)

	assert.ErrorIs(t, err, apperrors.ErrSequencing)
	assert.Contains(t, err.Error(), ErrBACNotApplicable.Error())
}

func TestBACMemberReview_RequiresMayorAuditEntry(t *testing.T) {
	f := newReviewFixture()
	voucher := reviewVoucher(domain.RoleGSO, domain.StatusApproved)
	f.stubSnapshot(voucher, []domain.Approval{levelApproval(1), levelApproval(2)}, nil, nil)

	actor := domain.Actor{UserID: "u-bac", Role: domain.RoleBAC}
	_, err := f.svc.BACMemberReview(context.Background(), "v-1", dto.ReviewRequest{}, actor)

	assert.ErrorIs(t, err, apperrors.ErrSequencing)
	assert.Contains(t, err.Error(), ErrMayorNotReviewed.Error())
}

func TestBACMemberReview_HappyPath(t *testing.T) {
	f := newReviewFixture()
	voucher := reviewVoucher(domain.RoleGSO, domain.StatusApproved)
	f.stubSnapshot(voucher,
		[]domain.Approval{levelApproval(1), levelApproval(2)},
		nil,
		[]domain.AuditEntry{mayorAudit()})

	var applied portsrepo.VoucherTransition
	f.voucherRepo.On("ApplyTransition", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { applied = args.Get(1).(portsrepo.VoucherTransition) }).
		Return(nil)
	f.dispatcher.On("NotifyAsync", mock.Anything, domain.ActionBACReview, mock.Anything, "checked").Return()

	actor := domain.Actor{UserID: "u-bac", Role: domain.RoleBAC}
	got, err := f.svc.BACMemberReview(context.Background(), "v-1", dto.ReviewRequest{Comments: "checked"}, actor)

	require.NoError(t, err)
	// Advisory review: the stored status stays APPROVED.
	assert.Equal(t, domain.StatusApproved, got.Status)
	assert.Nil(t, applied.NewStatus)
	assert.Nil(t, applied.Approval)
	require.NotNil(t, applied.BACReview)
	assert.Equal(t, "u-bac", applied.BACReview.ReviewerID)
	assert.Equal(t, domain.ApprovalApproved, applied.BACReview.Status)
}

func TestBudgetReview_WaitsForBACQuorum(t *testing.T) {
	f := newReviewFixture()
	voucher := reviewVoucher(domain.RoleGSO, domain.StatusApproved)
	// Two of the default three required BAC approvals recorded.
	f.stubSnapshot(voucher,
		[]domain.Approval{levelApproval(1), levelApproval(2)},
		[]domain.BACReview{
			{ReviewID: "r-1", VoucherID: "v-1", ReviewerID: "m1", Status: domain.ApprovalApproved},
			{ReviewID: "r-2", VoucherID: "v-1", ReviewerID: "m2", Status: domain.ApprovalApproved},
		},
		[]domain.AuditEntry{mayorAudit()})

	actor := domain.Actor{UserID: "u-budget", Role: domain.RoleBudget}
	_, err := f.svc.BudgetReview(context.Background(), "v-1", dto.ReviewRequest{}, actor)

	assert.ErrorIs(t, err, apperrors.ErrSequencing)
}

func TestBudgetReview_ConfiguredQuorumMet(t *testing.T) {
	f := &reviewFixture{
		voucherRepo: &mockVoucherRepo{},
		auditRepo:   &mockAuditRepo{},
		settingRepo: &mockSettingRepo{},
		dispatcher:  &mockDispatcher{},
	}
	f.svc = NewReviewService(f.voucherRepo, f.auditRepo, f.settingRepo, f.dispatcher)
	f.settingRepo.On("FindSettingByKey", mock.Anything, domain.SettingBACRequiredApprovals).
		Return(&domain.SystemSetting{Key: domain.SettingBACRequiredApprovals, Value: "2"}, nil)

	voucher := reviewVoucher(domain.RoleGSO, domain.StatusApproved)
	f.stubSnapshot(voucher,
		[]domain.Approval{levelApproval(1), levelApproval(2)},
		[]domain.BACReview{
			{ReviewID: "r-1", VoucherID: "v-1", ReviewerID: "m1", Status: domain.ApprovalApproved},
			{ReviewID: "r-2", VoucherID: "v-1", ReviewerID: "m2", Status: domain.ApprovalApproved},
		},
		[]domain.AuditEntry{mayorAudit()})

	var applied portsrepo.VoucherTransition
	f.voucherRepo.On("ApplyTransition", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { applied = args.Get(1).(portsrepo.VoucherTransition) }).
		Return(nil)
	f.dispatcher.On("NotifyAsync", mock.Anything, domain.ActionBudgetReview, mock.Anything, "").Return()

	actor := domain.Actor{UserID: "u-budget", Role: domain.RoleBudget}
	_, err := f.svc.BudgetReview(context.Background(), "v-1", dto.ReviewRequest{}, actor)

	require.NoError(t, err)
	assert.Nil(t, applied.NewStatus, "budget review is advisory")
	require.NotNil(t, applied.Approval)
	assert.Equal(t, 4, applied.Approval.Level, "budget sits at level 4 on the GSO chain")
}

func TestAccountingReview_RequiresBudgetAuditEntry(t *testing.T) {
	f := newReviewFixture()
	voucher := reviewVoucher(domain.RoleHR, domain.StatusApproved)
	// Budget's approval record exists but its audit entry is missing.
	f.stubSnapshot(voucher,
		[]domain.Approval{levelApproval(1), levelApproval(2), levelApproval(3)},
		nil,
		[]domain.AuditEntry{mayorAudit()})

	actor := domain.Actor{UserID: "u-acct", Role: domain.RoleAccounting}
	_, err := f.svc.AccountingReview(context.Background(), "v-1", dto.ReviewRequest{}, actor)

	assert.ErrorIs(t, err, apperrors.ErrSequencing)
	assert.Contains(t, err.Error(), ErrBudgetNotReviewed.Error())
}

func TestIssueCheck_SecondAttemptRejected(t *testing.T) {
	f := newReviewFixture()
	voucher := reviewVoucher(domain.RoleHR, domain.StatusApproved)
	f.stubSnapshot(voucher,
		[]domain.Approval{levelApproval(1), levelApproval(2), levelApproval(3), levelApproval(4)},
		nil,
		[]domain.AuditEntry{
			mayorAudit(),
			{EntryID: "e-budget", Action: domain.ActionBudgetReview, UserRole: domain.RoleBudget},
			{EntryID: "e-check", Action: domain.ActionCheckIssuance, UserRole: domain.RoleTreasury},
		})

	actor := domain.Actor{UserID: "u-treasury", Role: domain.RoleTreasury}
	_, err := f.svc.IssueCheck(context.Background(), "v-1", dto.ReviewRequest{}, actor)

	assert.ErrorIs(t, err, apperrors.ErrSequencing)
	assert.Contains(t, err.Error(), ErrAlreadyRecorded.Error())
}

func TestMarkReleased_RequiresCheckIssuance(t *testing.T) {
	f := newReviewFixture()
	voucher := reviewVoucher(domain.RoleHR, domain.StatusApproved)
	f.stubSnapshot(voucher,
		[]domain.Approval{levelApproval(1), levelApproval(2), levelApproval(3), levelApproval(4)},
		nil,
		[]domain.AuditEntry{mayorAudit()})

	actor := domain.Actor{UserID: "u-treasury", Role: domain.RoleTreasury}
	_, err := f.svc.MarkReleased(context.Background(), "v-1", dto.ReviewRequest{}, actor)

	assert.ErrorIs(t, err, apperrors.ErrSequencing)
	assert.Contains(t, err.Error(), ErrCheckNotIssued.Error())
}

func TestMarkReleased_HappyPath(t *testing.T) {
	f := newReviewFixture()
	voucher := reviewVoucher(domain.RoleHR, domain.StatusApproved)
	f.stubSnapshot(voucher,
		[]domain.Approval{levelApproval(1), levelApproval(2), levelApproval(3), levelApproval(4)},
		nil,
		[]domain.AuditEntry{
			{EntryID: "e-check", Action: domain.ActionCheckIssuance, UserRole: domain.RoleTreasury},
		})

	var applied portsrepo.VoucherTransition
	f.voucherRepo.On("ApplyTransition", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { applied = args.Get(1).(portsrepo.VoucherTransition) }).
		Return(nil)
	f.dispatcher.On("NotifyAsync", mock.Anything, domain.ActionMarkReleased, mock.Anything, "").Return()

	actor := domain.Actor{UserID: "u-treasury", Role: domain.RoleTreasury}
	got, err := f.svc.MarkReleased(context.Background(), "v-1", dto.ReviewRequest{}, actor)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusReleased, got.Status)
	require.NotNil(t, applied.NewStatus)
	assert.Equal(t, domain.StatusReleased, *applied.NewStatus)
	assert.Equal(t, domain.ActionMarkReleased, applied.Audit.Action)
}

func TestRejectVoucher_AtTurnRecordsDecision(t *testing.T) {
	f := newReviewFixture()
	voucher := reviewVoucher(domain.RoleHR, domain.StatusPending)
	f.stubSnapshot(voucher, nil, nil, nil)

	var applied portsrepo.VoucherTransition
	f.voucherRepo.On("ApplyTransition", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { applied = args.Get(1).(portsrepo.VoucherTransition) }).
		Return(nil)
	f.dispatcher.On("NotifyAsync", mock.Anything, domain.ActionReject, mock.Anything, "missing documents").Return()

	actor := domain.Actor{UserID: "u-sec", Role: domain.RoleSecretary}
	got, err := f.svc.RejectVoucher(context.Background(), "v-1", dto.RejectRequest{Reason: "missing documents"}, actor)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, got.Status)
	require.NotNil(t, applied.Approval)
	assert.Equal(t, 1, applied.Approval.Level)
	assert.Equal(t, domain.ApprovalRejected, applied.Approval.Status)
	assert.Equal(t, "missing documents", applied.Audit.NewValues["reason"])
}

func TestRejectVoucher_OutOfTurnRejected(t *testing.T) {
	f := newReviewFixture()
	voucher := reviewVoucher(domain.RoleHR, domain.StatusPending)
	f.stubSnapshot(voucher, nil, nil, nil)

	actor := domain.Actor{UserID: "u-acct", Role: domain.RoleAccounting}
	_, err := f.svc.RejectVoucher(context.Background(), "v-1", dto.RejectRequest{Reason: "no"}, actor)

	assert.ErrorIs(t, err, apperrors.ErrSequencing)
	f.voucherRepo.AssertNotCalled(t, "ApplyTransition", mock.Anything, mock.Anything)
}

func TestRejectVoucher_BACMemberRecordsBACRejection(t *testing.T) {
	f := newReviewFixture()
	voucher := reviewVoucher(domain.RoleGSO, domain.StatusApproved)
	f.stubSnapshot(voucher,
		[]domain.Approval{levelApproval(1), levelApproval(2)},
		nil,
		[]domain.AuditEntry{mayorAudit()})

	var applied portsrepo.VoucherTransition
	f.voucherRepo.On("ApplyTransition", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { applied = args.Get(1).(portsrepo.VoucherTransition) }).
		Return(nil)
	f.dispatcher.On("NotifyAsync", mock.Anything, domain.ActionReject, mock.Anything, "non-compliant bid").Return()

	actor := domain.Actor{UserID: "u-bac", Role: domain.RoleBAC}
	_, err := f.svc.RejectVoucher(context.Background(), "v-1", dto.RejectRequest{Reason: "non-compliant bid"}, actor)

	require.NoError(t, err)
	assert.Nil(t, applied.Approval)
	require.NotNil(t, applied.BACReview)
	assert.Equal(t, domain.ApprovalRejected, applied.BACReview.Status)
}

func TestReview_TransitionFailurePropagates(t *testing.T) {
	f := newReviewFixture()
	voucher := reviewVoucher(domain.RoleHR, domain.StatusPending)
	f.stubSnapshot(voucher, nil, nil, nil)

	dbErr := errors.New("connection reset")
	f.voucherRepo.On("ApplyTransition", mock.Anything, mock.Anything).Return(dbErr)

	actor := domain.Actor{UserID: "u-sec", Role: domain.RoleSecretary}
	_, err := f.svc.SecretaryReview(context.Background(), "v-1", dto.ReviewRequest{}, actor)

	assert.ErrorIs(t, err, dbErr)
	f.dispatcher.AssertNotCalled(t, "NotifyAsync", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReview_AuditUnavailableFallsBackToTreasuryGate(t *testing.T) {
	f := newReviewFixture()
	voucher := reviewVoucher(domain.RoleHR, domain.StatusApproved)
	f.voucherRepo.On("FindVoucherByID", mock.Anything, "v-1").Return(voucher, nil)
	f.voucherRepo.On("FindApprovalsByVoucherID", mock.Anything, "v-1").
		Return([]domain.Approval{levelApproval(1), levelApproval(2), levelApproval(3), levelApproval(4)}, nil)
	f.auditRepo.On("FindAuditByVoucherID", mock.Anything, "v-1").
		Return(nil, errors.New("timeout"))

	// Treasury still holds the turn, but release cannot proceed without the
	// audit trail proving check issuance.
	actor := domain.Actor{UserID: "u-treasury", Role: domain.RoleTreasury}
	_, err := f.svc.MarkReleased(context.Background(), "v-1", dto.ReviewRequest{}, actor)

	assert.ErrorIs(t, err, apperrors.ErrSequencing)
}
