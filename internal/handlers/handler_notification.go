package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/lgufms/voucher_tracking_app/internal/core/ports/services"
)

// NotificationHandler handles the per-user notification inbox.
type NotificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService portssvc.NotificationSvcFacade) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// registerNotificationRoutes sets up the notification routes.
func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := NewNotificationHandler(notificationService)

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.ListNotifications)
		notifications.POST("/:notificationID/read", h.MarkRead)
	}
}

// ListNotifications godoc
// @Summary List notifications
// @Description Lists the caller's notifications, newest first, token paginated.
// @Tags notifications
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListNotificationsResponse
// @Failure 401 {object} ErrorResponse
// @Router /notifications [get]
// @Security BearerAuth
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	resp, err := h.notificationService.ListForUser(c.Request.Context(), actor.UserID, limit, nextToken)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarkRead godoc
// @Summary Mark a notification read
// @Description Marks one of the caller's notifications as read.
// @Tags notifications
// @Param notificationID path string true "Notification ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /notifications/{notificationID}/read [post]
// @Security BearerAuth
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), c.Param("notificationID"), actor.UserID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
