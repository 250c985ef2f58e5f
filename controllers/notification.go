// controllers/notification.go
package controllers

import (
	"errors"
	"io"
	"net/http"

	"labtrack-backend/config"
	"labtrack-backend/services"
	"labtrack-backend/utils"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	Notifier *services.Notifier
	Hub      *services.Hub
}

// GetNotifications returns the caller's notifications, newest first.
func (ctl *NotificationController) GetNotifications(c *gin.Context) {
	userID, _, ok := utils.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	notifications, err := ctl.Notifier.Pull(userID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve notifications")
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead flags one of the caller's notifications as read.
func (ctl *NotificationController) MarkNotificationRead(c *gin.Context) {
	userID, _, ok := utils.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := ctl.Notifier.MarkRead(userID, id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Notification not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// StreamNotifications holds an SSE stream open and pushes every notification
// persisted for the caller while the connection lives. Closing the connection
// deregisters the subscription; other subscribers are unaffected.
func (ctl *NotificationController) StreamNotifications(c *gin.Context) {
	userID, _, ok := utils.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	events, cancel := ctl.Hub.Subscribe(userID)
	defer cancel()

	config.SubscriberConnections.Inc()
	defer config.SubscriberConnections.Dec()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case notification := <-events:
			c.SSEvent("notification", notification)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
