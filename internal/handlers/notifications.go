package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/EcoTrackApp/ecotrack-go/internal/models"
	"github.com/EcoTrackApp/ecotrack-go/internal/store"
)

// ListNotifications returns the authenticated user's notifications with
// their unread count. Supports ?unread_only=true.
func ListNotifications(notifications *store.Notifications) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireSelf(c)
		if !ok {
			return
		}

		unreadOnly := c.Query("unread_only") == "true"
		page, limit, offset := pagination(c, 20)

		list, err := notifications.ListByUser(c.Request.Context(), userID, unreadOnly, limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications", "details": err.Error()})
			return
		}

		unreadCount, err := notifications.UnreadCount(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications", "details": err.Error()})
			return
		}

		responses := make([]models.NotificationResponse, 0, len(list))
		for i := range list {
			responses = append(responses, list[i].ToResponse())
		}

		c.JSON(http.StatusOK, gin.H{
			"notifications": responses,
			"unread_count":  unreadCount,
			"page":          page,
			"limit":         limit,
		})
	}
}

// MarkNotificationRead marks one of the user's notifications as read.
func MarkNotificationRead(notifications *store.Notifications) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middlewareUserID(c)
		if !ok {
			return
		}

		notificationID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID format"})
			return
		}

		marked, err := notifications.MarkRead(c.Request.Context(), notificationID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification read", "details": err.Error()})
			return
		}
		if !marked {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found or already read"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
	}
}

// MarkAllNotificationsRead marks all of the user's unread notifications
// as read.
func MarkAllNotificationsRead(notifications *store.Notifications) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireSelf(c)
		if !ok {
			return
		}

		updated, err := notifications.MarkAllRead(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "All notifications marked as read",
			"marked_count": updated,
		})
	}
}
