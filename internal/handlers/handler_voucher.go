package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/lgufms/voucher_tracking_app/internal/core/ports/services"
	"github.com/lgufms/voucher_tracking_app/internal/dto"
)

// VoucherHandler handles voucher lifecycle requests.
type VoucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

// NewVoucherHandler creates a new VoucherHandler.
func NewVoucherHandler(voucherService portssvc.VoucherSvcFacade) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

// registerVoucherRoutes sets up voucher lifecycle routes under /vouchers.
func registerVoucherRoutes(rg *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade) {
	h := NewVoucherHandler(voucherService)

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", h.CreateVoucher)
		vouchers.GET("", h.ListVouchers)
		vouchers.GET("/:voucherID", h.GetVoucher)
		vouchers.PUT("/:voucherID", h.UpdateVoucher)
		vouchers.DELETE("/:voucherID", h.DeleteVoucher)
		vouchers.POST("/:voucherID/submit", h.SubmitVoucher)
		vouchers.POST("/:voucherID/remarks", h.SubmitRemarks)
	}
}

// CreateVoucher godoc
// @Summary Create a voucher
// @Description Creates a DRAFT disbursement voucher with its line items.
// @Tags vouchers
// @Accept json
// @Produce json
// @Param voucher body dto.CreateVoucherRequest true "Voucher"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /vouchers [post]
// @Security BearerAuth
func (h *VoucherHandler) CreateVoucher(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher, nil))
}

// ListVouchers godoc
// @Summary List vouchers
// @Description Lists vouchers visible to the caller, filtered and token paginated.
// @Tags vouchers
// @Produce json
// @Param status query string false "Status filter"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListVouchersResponse
// @Failure 401 {object} ErrorResponse
// @Router /vouchers [get]
// @Security BearerAuth
func (h *VoucherHandler) ListVouchers(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var params dto.ListVouchersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.voucherService.ListVouchers(c.Request.Context(), params, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetVoucher godoc
// @Summary Get a voucher
// @Description Retrieves a voucher with its items and the derived current reviewer.
// @Tags vouchers
// @Produce json
// @Param voucherID path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /vouchers/{voucherID} [get]
// @Security BearerAuth
func (h *VoucherHandler) GetVoucher(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	voucher, reviewer, err := h.voucherService.GetVoucherByID(c.Request.Context(), c.Param("voucherID"), actor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher, reviewer))
}

// UpdateVoucher godoc
// @Summary Update a draft voucher
// @Description Edits a DRAFT voucher; a non-empty items array replaces all items.
// @Tags vouchers
// @Accept json
// @Produce json
// @Param voucherID path string true "Voucher ID"
// @Param voucher body dto.UpdateVoucherRequest true "Fields to update"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /vouchers/{voucherID} [put]
// @Security BearerAuth
func (h *VoucherHandler) UpdateVoucher(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req dto.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	voucher, err := h.voucherService.UpdateVoucher(c.Request.Context(), c.Param("voucherID"), req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher, nil))
}

// DeleteVoucher godoc
// @Summary Delete a voucher
// @Description Deletes a DRAFT voucher (creator) or any voucher (admin). Audit entries remain.
// @Tags vouchers
// @Param voucherID path string true "Voucher ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /vouchers/{voucherID} [delete]
// @Security BearerAuth
func (h *VoucherHandler) DeleteVoucher(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	if err := h.voucherService.DeleteVoucher(c.Request.Context(), c.Param("voucherID"), actor); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmitVoucher godoc
// @Summary Submit a voucher
// @Description Moves a DRAFT voucher with at least one item into the review workflow.
// @Tags vouchers
// @Produce json
// @Param voucherID path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /vouchers/{voucherID}/submit [post]
// @Security BearerAuth
func (h *VoucherHandler) SubmitVoucher(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	voucher, err := h.voucherService.SubmitVoucher(c.Request.Context(), c.Param("voucherID"), actor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher, nil))
}

// SubmitRemarks godoc
// @Summary Add remarks to a voucher
// @Description Appends follow-up remarks to the voucher's audit trail and notifies the chain.
// @Tags vouchers
// @Accept json
// @Param voucherID path string true "Voucher ID"
// @Param remarks body dto.RemarksRequest true "Remarks"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /vouchers/{voucherID}/remarks [post]
// @Security BearerAuth
func (h *VoucherHandler) SubmitRemarks(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req dto.RemarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.voucherService.SubmitRemarks(c.Request.Context(), c.Param("voucherID"), req.Remarks, actor); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
