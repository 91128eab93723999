package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	notificationsmodels "io.winapps.moodjournal/internal/models/notifications"
	"io.winapps.moodjournal/internal/notifications"
)

type NotificationsHandler struct {
	tokens *notifications.TokenStore
	logger *zap.SugaredLogger
}

func NewNotificationsHandler(tokens *notifications.TokenStore, logger *zap.SugaredLogger) *NotificationsHandler {
	return &NotificationsHandler{
		tokens: tokens,
		logger: logger,
	}
}

// RegisterPushToken stores the device token reminders and digests are sent to
func (h *NotificationsHandler) RegisterPushToken(c *gin.Context) {
	var tokenData notificationsmodels.PushToken
	if err := c.ShouldBindJSON(&tokenData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if tokenData.Target() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expo_push_token or fcm_token is required"})
		return
	}
	// An empty timezone leaves reminders on the server's NOTIFY_TIMEZONE
	if tokenData.Timezone != "" {
		if _, err := time.LoadLocation(tokenData.Timezone); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown timezone"})
			return
		}
	}
	tokenData.UpdatedAt = time.Now().UTC()

	if err := h.tokens.Save(c.Request.Context(), tokenData); err != nil {
		h.logError(c, err, "failed to save push token", "platform", tokenData.Platform)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token registered successfully"})
}
