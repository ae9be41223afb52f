package handlers

import (
	"database/sql"
	"net/http"

	"storefront-backend/internal/database"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// The storefront polls this feed every 60 seconds, so list responses stay
// small and cheap.
const notificationFeedLimit = 50

type NotificationHandler struct {
	notificationQueries *database.NotificationQueries
}

func NewNotificationHandler(db *sql.DB) *NotificationHandler {
	return &NotificationHandler{notificationQueries: database.NewNotificationQueries(db)}
}

func isAdmin(c *gin.Context) bool {
	role, _ := c.Get("user_role")
	return role == models.RoleAdmin
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	notifications, unread, err := h.notificationQueries.ListNotifications(userID, isAdmin(c), notificationFeedLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, models.NotificationListResponse{
		Notifications: notifications,
		Unread:        unread,
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	if err := h.notificationQueries.MarkRead(c.Param("id"), userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	if err := h.notificationQueries.MarkAllRead(userID, isAdmin(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked read"})
}
