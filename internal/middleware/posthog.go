package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const analyticsPropsKey = "analyticsProps"

// AnalyticsSink receives one event per tracked request. *utils.PosthogClientWrapper satisfies it.
type AnalyticsSink interface {
	IsInitialized() bool
	Enqueue(distinctId string, event string, properties map[string]any)
}

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful API calls with PostHog.
// Properties added by handlers through SetAnalyticsProperty are merged into the event.
func PosthogMiddleware(sink AnalyticsSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sink == nil || !sink.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		id, exists := distinctID(c)
		if !exists {
			return
		}

		eventName := analyticsEventName(c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if extra, ok := c.Get(analyticsPropsKey); ok {
			for k, v := range extra.(map[string]any) {
				props[k] = v
			}
		}

		sink.Enqueue(id, eventName, props)
	}
}

// SetAnalyticsProperty attaches a property to the analytics event of the current request.
func SetAnalyticsProperty(c *gin.Context, key string, value any) {
	props, ok := c.Get(analyticsPropsKey)
	if !ok {
		props = map[string]any{}
		c.Set(analyticsPropsKey, props)
	}
	props.(map[string]any)[key] = value
}

// analyticsEventName derives the event from the route template,
// e.g. "/api/imports/:importJobID/status" -> "api_imports_status".
func analyticsEventName(route string) string {
	var parts []string
	for _, segment := range strings.Split(route, "/") {
		if segment == "" || strings.HasPrefix(segment, ":") || strings.HasPrefix(segment, "*") {
			continue
		}
		parts = append(parts, segment)
	}
	return strings.Join(parts, "_")
}
