package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	portssvc "github.com/lgufms/voucher_tracking_app/internal/core/ports/services"
	"github.com/lgufms/voucher_tracking_app/internal/dto"
)

// ReviewHandler handles the office review actions on a voucher.
type ReviewHandler struct {
	reviewService portssvc.ReviewSvcFacade
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService portssvc.ReviewSvcFacade) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// registerReviewRoutes sets up the review action routes under /vouchers/:voucherID.
func registerReviewRoutes(rg *gin.RouterGroup, reviewService portssvc.ReviewSvcFacade) {
	h := NewReviewHandler(reviewService)

	review := rg.Group("/vouchers/:voucherID")
	{
		review.POST("/secretary-review", h.reviewAction(h.reviewService.SecretaryReview))
		review.POST("/mayor-review", h.reviewAction(h.reviewService.MayorReview))
		review.POST("/bac-review", h.reviewAction(h.reviewService.BACMemberReview))
		review.POST("/budget-review", h.reviewAction(h.reviewService.BudgetReview))
		review.POST("/accounting-review", h.reviewAction(h.reviewService.AccountingReview))
		review.POST("/issue-check", h.reviewAction(h.reviewService.IssueCheck))
		review.POST("/release", h.reviewAction(h.reviewService.MarkReleased))
		review.POST("/reject", h.Reject)
	}
}

type reviewActionFunc func(ctx context.Context, voucherID string, req dto.ReviewRequest, actor domain.Actor) (*domain.Voucher, error)

// reviewAction adapts one review service method into a handler. The body is
// optional; an absent body means a review without comments.
func (h *ReviewHandler) reviewAction(action reviewActionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := getActor(c)
		if !ok {
			return
		}

		var req dto.ReviewRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
				return
			}
		}

		voucher, err := action(c.Request.Context(), c.Param("voucherID"), req, actor)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher, nil))
	}
}

// Reject godoc
// @Summary Reject a voucher
// @Description Rejects the voucher; only the office whose turn it is may reject. Terminal.
// @Tags reviews
// @Accept json
// @Produce json
// @Param voucherID path string true "Voucher ID"
// @Param rejection body dto.RejectRequest true "Rejection reason"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /vouchers/{voucherID}/reject [post]
// @Security BearerAuth
func (h *ReviewHandler) Reject(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	voucher, err := h.reviewService.RejectVoucher(c.Request.Context(), c.Param("voucherID"), req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher, nil))
}
