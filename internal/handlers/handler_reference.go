package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
)

// registerReferenceRoutes sets up the static reference data routes.
func registerReferenceRoutes(rg *gin.RouterGroup) {
	reference := rg.Group("/reference")
	{
		reference.GET("/offices", ListOffices)
	}
}

// ListOffices godoc
// @Summary List offices
// @Description Returns the fixed office directory for selection lists.
// @Tags reference
// @Produce json
// @Success 200 {array} string
// @Router /reference/offices [get]
// @Security BearerAuth
func ListOffices(c *gin.Context) {
	c.JSON(http.StatusOK, domain.Offices())
}
