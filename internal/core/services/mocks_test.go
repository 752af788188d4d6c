package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	portsrepo "github.com/lgufms/voucher_tracking_app/internal/core/ports/repositories"
)

type mockVoucherRepo struct{ mock.Mock }

func (m *mockVoucherRepo) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if v := args.Get(0); v != nil {
		return v.(*domain.Voucher), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVoucherRepo) ListVouchers(ctx context.Context, filter portsrepo.ListVouchersFilter) ([]domain.Voucher, *string, error) {
	args := m.Called(ctx, filter)
	var vouchers []domain.Voucher
	if v := args.Get(0); v != nil {
		vouchers = v.([]domain.Voucher)
	}
	var token *string
	if t := args.Get(1); t != nil {
		token = t.(*string)
	}
	return vouchers, token, args.Error(2)
}

func (m *mockVoucherRepo) FindApprovalsByVoucherID(ctx context.Context, voucherID string) ([]domain.Approval, error) {
	args := m.Called(ctx, voucherID)
	var approvals []domain.Approval
	if v := args.Get(0); v != nil {
		approvals = v.([]domain.Approval)
	}
	return approvals, args.Error(1)
}

func (m *mockVoucherRepo) FindBACReviewsByVoucherID(ctx context.Context, voucherID string) ([]domain.BACReview, error) {
	args := m.Called(ctx, voucherID)
	var reviews []domain.BACReview
	if v := args.Get(0); v != nil {
		reviews = v.([]domain.BACReview)
	}
	return reviews, args.Error(1)
}

func (m *mockVoucherRepo) SaveVoucher(ctx context.Context, voucher domain.Voucher, audit domain.AuditEntry) error {
	return m.Called(ctx, voucher, audit).Error(0)
}

func (m *mockVoucherRepo) UpdateVoucher(ctx context.Context, voucher domain.Voucher, audit domain.AuditEntry) error {
	return m.Called(ctx, voucher, audit).Error(0)
}

func (m *mockVoucherRepo) DeleteVoucher(ctx context.Context, voucherID string, audit domain.AuditEntry) error {
	return m.Called(ctx, voucherID, audit).Error(0)
}

func (m *mockVoucherRepo) ApplyTransition(ctx context.Context, transition portsrepo.VoucherTransition) error {
	return m.Called(ctx, transition).Error(0)
}

type mockAuditRepo struct{ mock.Mock }

func (m *mockAuditRepo) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockAuditRepo) FindAuditByVoucherID(ctx context.Context, voucherID string) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, voucherID)
	var entries []domain.AuditEntry
	if v := args.Get(0); v != nil {
		entries = v.([]domain.AuditEntry)
	}
	return entries, args.Error(1)
}

type mockSettingRepo struct{ mock.Mock }

func (m *mockSettingRepo) FindSettingByKey(ctx context.Context, key string) (*domain.SystemSetting, error) {
	args := m.Called(ctx, key)
	if v := args.Get(0); v != nil {
		return v.(*domain.SystemSetting), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotificationRepo struct{ mock.Mock }

func (m *mockNotificationRepo) ReplaceVoucherNotifications(ctx context.Context, voucherID string, userIDs []string, notifications []domain.Notification) error {
	return m.Called(ctx, voucherID, userIDs, notifications).Error(0)
}

func (m *mockNotificationRepo) ListNotificationsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Notification, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var notifications []domain.Notification
	if v := args.Get(0); v != nil {
		notifications = v.([]domain.Notification)
	}
	var token *string
	if t := args.Get(1); t != nil {
		token = t.(*string)
	}
	return notifications, token, args.Error(2)
}

func (m *mockNotificationRepo) MarkNotificationRead(ctx context.Context, notificationID string, userID string) error {
	return m.Called(ctx, notificationID, userID).Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if v := args.Get(0); v != nil {
		return v.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindActiveUsersByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, roles)
	var users []domain.User
	if v := args.Get(0); v != nil {
		users = v.([]domain.User)
	}
	return users, args.Error(1)
}

func (m *mockUserRepo) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if v := args.Get(0); v != nil {
		users = v.([]domain.User)
	}
	return users, args.Error(1)
}

func (m *mockUserRepo) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) UpdateUserPassword(ctx context.Context, userID string, passwordHash string, updatedBy string, updatedAt time.Time) error {
	return m.Called(ctx, userID, passwordHash, updatedBy, updatedAt).Error(0)
}

func (m *mockUserRepo) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error {
	return m.Called(ctx, userID, refreshTokenHash, expiryTime).Error(0)
}

type mockDispatcher struct{ mock.Mock }

func (m *mockDispatcher) RecordAndNotify(ctx context.Context, voucher domain.Voucher, action domain.AuditAction, actor domain.Actor, comments string) error {
	return m.Called(ctx, voucher, action, actor, comments).Error(0)
}

func (m *mockDispatcher) NotifyAsync(voucher domain.Voucher, action domain.AuditAction, actor domain.Actor, comments string) {
	m.Called(voucher, action, actor, comments)
}
