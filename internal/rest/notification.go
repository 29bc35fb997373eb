package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nansabi/BLOG-WEBSITE/domain"
	"github.com/nansabi/BLOG-WEBSITE/internal/rest/response"
)

type notificationHandler struct {
	Service domain.NotificationUsecase
}

func NewNotificationHandler(svc domain.NotificationUsecase) *notificationHandler {
	return &notificationHandler{
		Service: svc,
	}
}

// FetchUnread lists the caller's unread notifications, newest first
func (h *notificationHandler) FetchUnread(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	list, err := h.Service.FetchUnread(c.Request.Context(), userID.(int64))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Notification, len(list))
	for i := range list {
		res[i] = response.NewNotificationFromDomain(&list[i])
	}
	c.JSON(http.StatusOK, res)
}

// MarkRead marks a notification as read. Repeating the call is harmless.
func (h *notificationHandler) MarkRead(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	if err := h.Service.MarkRead(c.Request.Context(), int64(idP)); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// CountUnread returns the caller's unread badge count
func (h *notificationHandler) CountUnread(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	count, err := h.Service.CountUnread(c.Request.Context(), userID.(int64))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
