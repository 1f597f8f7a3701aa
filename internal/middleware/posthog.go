package middleware

import (
	"github.com/SscSPs/queue_mood_board/internal/utils"
	"github.com/gin-gonic/gin"
)

// PosthogEvent sends a custom event keyed by the caller's IP. There are no user
// accounts on the board, so the IP is the only stable distinct id available.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if posthogClient == nil || !posthogClient.IsInitialized() {
		return
	}

	if properties == nil {
		properties = make(map[string]any)
	}
	properties["method"] = c.Request.Method
	properties["path"] = c.Request.URL.Path

	posthogClient.Enqueue(c.ClientIP(), eventName, properties)
}
