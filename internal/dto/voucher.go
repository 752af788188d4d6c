package dto

import (
	"time"

	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	"github.com/lgufms/voucher_tracking_app/internal/core/workflow"
	"github.com/shopspring/decimal"
)

// VoucherItemRequest is one line item in a create/update request.
// TotalPrice must equal Quantity x UnitPrice; the service re-checks this.
type VoucherItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    int64           `json:"quantity" binding:"required,gt=0"`
	Unit        string          `json:"unit" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
	TotalPrice  decimal.Decimal `json:"totalPrice" binding:"required"`
}

// CreateVoucherRequest defines the payload for creating a voucher.
type CreateVoucherRequest struct {
	Payee         string               `json:"payee" binding:"required"`
	Address       string               `json:"address"`
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	Particulars   string               `json:"particulars" binding:"required"`
	Tags          []string             `json:"tags"`
	SourceOffices []string             `json:"sourceOffices"`
	AssignedTo    *string              `json:"assignedTo,omitempty"`
	Items         []VoucherItemRequest `json:"items" binding:"omitempty,dive"`
}

// UpdateVoucherRequest defines the payload for editing a draft voucher.
// Nil fields are left unchanged; a non-nil Items slice replaces all items.
type UpdateVoucherRequest struct {
	Payee         *string              `json:"payee,omitempty"`
	Address       *string              `json:"address,omitempty"`
	Amount        *decimal.Decimal     `json:"amount,omitempty"`
	Particulars   *string              `json:"particulars,omitempty"`
	Tags          []string             `json:"tags,omitempty"`
	SourceOffices []string             `json:"sourceOffices,omitempty"`
	AssignedTo    *string              `json:"assignedTo,omitempty"`
	Items         []VoucherItemRequest `json:"items,omitempty" binding:"omitempty,dive"`
}

// ReviewRequest carries the reviewing office's decision payload.
type ReviewRequest struct {
	Comments string `json:"comments"`
}

// RejectRequest carries the rejecting office's reason.
type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RemarksRequest carries follow-up remarks on a voucher.
type RemarksRequest struct {
	Remarks string `json:"remarks" binding:"required"`
}

// ListVouchersParams holds query parameters for listing vouchers.
type ListVouchersParams struct {
	Status    *domain.VoucherStatus `form:"status"`
	Limit     int                   `form:"limit"`
	NextToken *string               `form:"nextToken"`
}

// VoucherItemResponse mirrors a persisted line item.
type VoucherItemResponse struct {
	ItemID      string          `json:"itemID"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// ReviewerResponse names the office whose action is next required.
type ReviewerResponse struct {
	Role        string `json:"role"`
	Office      string `json:"office"`
	StatusLabel string `json:"statusLabel"`
}

// VoucherResponse defines the data returned for a voucher.
type VoucherResponse struct {
	VoucherID       string                `json:"voucherID"`
	Payee           string                `json:"payee"`
	Address         string                `json:"address"`
	Amount          decimal.Decimal       `json:"amount"`
	Particulars     string                `json:"particulars"`
	Tags            []string              `json:"tags"`
	SourceOffices   []string              `json:"sourceOffices"`
	Status          domain.VoucherStatus  `json:"status"`
	CreatorRole     domain.Role           `json:"creatorRole"`
	AssignedTo      *string               `json:"assignedTo,omitempty"`
	Items           []VoucherItemResponse `json:"items,omitempty"`
	CurrentReviewer *ReviewerResponse     `json:"currentReviewer,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
	LastUpdatedAt   time.Time             `json:"lastUpdatedAt"`
}

// ListVouchersResponse is the paginated voucher listing payload.
type ListVouchersResponse struct {
	Vouchers  []VoucherResponse `json:"vouchers"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToVoucherItemResponse converts a domain item to its response DTO.
func ToVoucherItemResponse(it *domain.VoucherItem) VoucherItemResponse {
	return VoucherItemResponse{
		ItemID:      it.ItemID,
		Description: it.Description,
		Quantity:    it.Quantity,
		Unit:        it.Unit,
		UnitPrice:   it.UnitPrice,
		TotalPrice:  it.TotalPrice,
	}
}

// ToVoucherResponse converts a domain voucher (and its derived reviewer, if
// any) to the response DTO.
func ToVoucherResponse(v *domain.Voucher, reviewer *workflow.Reviewer) VoucherResponse {
	resp := VoucherResponse{
		VoucherID:     v.VoucherID,
		Payee:         v.Payee,
		Address:       v.Address,
		Amount:        v.Amount,
		Particulars:   v.Particulars,
		Tags:          v.Tags,
		SourceOffices: v.SourceOffices,
		Status:        v.Status,
		CreatorRole:   v.CreatorRole,
		AssignedTo:    v.AssignedTo,
		CreatedAt:     v.CreatedAt,
		CreatedBy:     v.CreatedBy,
		LastUpdatedAt: v.LastUpdatedAt,
	}
	if len(v.Items) > 0 {
		resp.Items = make([]VoucherItemResponse, len(v.Items))
		for i := range v.Items {
			resp.Items[i] = ToVoucherItemResponse(&v.Items[i])
		}
	}
	if reviewer != nil {
		resp.CurrentReviewer = &ReviewerResponse{
			Role:        string(reviewer.Role),
			Office:      reviewer.Office,
			StatusLabel: reviewer.StatusLabel,
		}
	}
	return resp
}
