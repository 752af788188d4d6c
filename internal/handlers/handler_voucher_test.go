package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lgufms/voucher_tracking_app/internal/apperrors"
	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	portssvc "github.com/lgufms/voucher_tracking_app/internal/core/ports/services"
	"github.com/lgufms/voucher_tracking_app/internal/core/workflow"
	"github.com/lgufms/voucher_tracking_app/internal/dto"
	"github.com/lgufms/voucher_tracking_app/internal/middleware"
	"github.com/lgufms/voucher_tracking_app/internal/utils"
)

// --- Mock VoucherService ---
type MockVoucherService struct {
	mock.Mock
}

func (m *MockVoucherService) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, actor domain.Actor) (*domain.Voucher, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
func (m *MockVoucherService) GetVoucherByID(ctx context.Context, voucherID string, actor domain.Actor) (*domain.Voucher, *workflow.Reviewer, error) {
	args := m.Called(ctx, voucherID, actor)
	var voucher *domain.Voucher
	if v := args.Get(0); v != nil {
		voucher = v.(*domain.Voucher)
	}
	var reviewer *workflow.Reviewer
	if r := args.Get(1); r != nil {
		reviewer = r.(*workflow.Reviewer)
	}
	return voucher, reviewer, args.Error(2)
}
func (m *MockVoucherService) ListVouchers(ctx context.Context, params dto.ListVouchersParams, actor domain.Actor) (*dto.ListVouchersResponse, error) {
	args := m.Called(ctx, params, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListVouchersResponse), args.Error(1)
}
func (m *MockVoucherService) UpdateVoucher(ctx context.Context, voucherID string, req dto.UpdateVoucherRequest, actor domain.Actor) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
func (m *MockVoucherService) DeleteVoucher(ctx context.Context, voucherID string, actor domain.Actor) error {
	args := m.Called(ctx, voucherID, actor)
	return args.Error(0)
}
func (m *MockVoucherService) SubmitVoucher(ctx context.Context, voucherID string, actor domain.Actor) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
func (m *MockVoucherService) SubmitRemarks(ctx context.Context, voucherID string, remarks string, actor domain.Actor) error {
	args := m.Called(ctx, voucherID, remarks, actor)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.VoucherSvcFacade = (*MockVoucherService)(nil)

// --- Test Suite ---
type VoucherHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockVoucherService *MockVoucherService
	jwtSecret          string
}

func (suite *VoucherHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockVoucherService = new(MockVoucherService)

	v1 := suite.router.Group("/api/v1")
	registerVoucherRoutes(v1, suite.mockVoucherService)
}

// generateTestToken creates a signed access token for the test user.
func (suite *VoucherHandlerTestSuite) generateTestToken(userID string, role domain.Role) string {
	token, err := utils.GenerateJWT(userID, string(role), "", suite.jwtSecret, time.Hour, "dvt-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *VoucherHandlerTestSuite) authedRequest(method, url string, body any, userID string, role domain.Role) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, role))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *VoucherHandlerTestSuite) TestCreateVoucher_Success() {
	req := dto.CreateVoucherRequest{
		Payee:       "Acme Supplies",
		Amount:      decimal.RequireFromString("1500.00"),
		Particulars: "Office supplies Q3",
	}
	created := &domain.Voucher{
		VoucherID:   "v-1",
		Payee:       "Acme Supplies",
		Amount:      decimal.RequireFromString("1500.00"),
		Particulars: "Office supplies Q3",
		Status:      domain.StatusDraft,
		CreatorRole: domain.RoleGSO,
	}

	suite.mockVoucherService.On("CreateVoucher",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateVoucherRequest) bool { return r.Payee == "Acme Supplies" }),
		domain.Actor{UserID: "u-gso", Role: domain.RoleGSO},
	).Return(created, nil).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/vouchers", req, "u-gso", domain.RoleGSO)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.VoucherResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("v-1", resp.VoucherID)
	suite.Equal(domain.StatusDraft, resp.Status)
	suite.mockVoucherService.AssertExpectations(suite.T())
}

func (suite *VoucherHandlerTestSuite) TestCreateVoucher_MissingPayee() {
	body := map[string]any{"amount": "1500.00", "particulars": "supplies"}

	w := suite.authedRequest(http.MethodPost, "/api/v1/vouchers", body, "u-gso", domain.RoleGSO)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockVoucherService.AssertNotCalled(suite.T(), "CreateVoucher", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherHandlerTestSuite) TestGetVoucher_IncludesReviewer() {
	voucher := &domain.Voucher{
		VoucherID:   "v-1",
		Payee:       "Acme Supplies",
		Status:      domain.StatusPending,
		CreatorRole: domain.RoleHR,
	}
	reviewer := &workflow.Reviewer{
		Role:        domain.RoleSecretary,
		Office:      "Secretary's Office",
		StatusLabel: "Awaiting Secretary Review",
	}
	suite.mockVoucherService.On("GetVoucherByID", mock.Anything, "v-1", mock.Anything).
		Return(voucher, reviewer, nil).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/vouchers/v-1", nil, "u-admin", domain.RoleAdmin)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.VoucherResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.CurrentReviewer)
	suite.Equal("Awaiting Secretary Review", resp.CurrentReviewer.StatusLabel)
}

func (suite *VoucherHandlerTestSuite) TestGetVoucher_NotFound() {
	suite.mockVoucherService.On("GetVoucherByID", mock.Anything, "missing", mock.Anything).
		Return(nil, nil, apperrors.ErrNotFound).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/vouchers/missing", nil, "u-admin", domain.RoleAdmin)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *VoucherHandlerTestSuite) TestGetVoucher_Forbidden() {
	suite.mockVoucherService.On("GetVoucherByID", mock.Anything, "v-1", mock.Anything).
		Return(nil, nil, apperrors.ErrForbidden).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/vouchers/v-1", nil, "u-req", domain.RoleRequester)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *VoucherHandlerTestSuite) TestListVouchers_PassesQueryParams() {
	suite.mockVoucherService.On("ListVouchers",
		mock.Anything,
		mock.MatchedBy(func(p dto.ListVouchersParams) bool {
			return p.Limit == 10 && p.Status != nil && *p.Status == domain.StatusPending
		}),
		mock.Anything,
	).Return(&dto.ListVouchersResponse{Vouchers: []dto.VoucherResponse{}}, nil).Once()

	url := fmt.Sprintf("/api/v1/vouchers?limit=%d&status=%s", 10, domain.StatusPending)
	w := suite.authedRequest(http.MethodGet, url, nil, "u-admin", domain.RoleAdmin)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockVoucherService.AssertExpectations(suite.T())
}

func (suite *VoucherHandlerTestSuite) TestSubmitVoucher_Conflict() {
	suite.mockVoucherService.On("SubmitVoucher", mock.Anything, "v-1", mock.Anything).
		Return(nil, fmt.Errorf("%w: voucher is not in draft status", apperrors.ErrConflict)).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/vouchers/v-1/submit", nil, "u-gso", domain.RoleGSO)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *VoucherHandlerTestSuite) TestDeleteVoucher_NoContent() {
	suite.mockVoucherService.On("DeleteVoucher", mock.Anything, "v-1",
		domain.Actor{UserID: "u-admin", Role: domain.RoleAdmin}).Return(nil).Once()

	w := suite.authedRequest(http.MethodDelete, "/api/v1/vouchers/v-1", nil, "u-admin", domain.RoleAdmin)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *VoucherHandlerTestSuite) TestUnauthenticatedRequestRejected() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/vouchers", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockVoucherService.AssertNotCalled(suite.T(), "ListVouchers", mock.Anything, mock.Anything, mock.Anything)
}

func TestVoucherHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(VoucherHandlerTestSuite))
}
