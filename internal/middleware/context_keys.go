package middleware

import "github.com/gin-gonic/gin"

// GetRequestIDFromContext retrieves the request ID assigned by StructuredLoggingMiddleware.
// It returns the ID and a boolean indicating if it was found.
func GetRequestIDFromContext(c *gin.Context) (string, bool) {
	requestIDVal, exists := c.Get(string(requestIDKey))
	if !exists {
		// check in the request context as well
		if id, ok := c.Request.Context().Value(requestIDKey).(string); ok {
			return id, true
		}
		return "", false
	}

	requestID, ok := requestIDVal.(string)
	if !ok {
		return "", false
	}

	return requestID, true
}

// distinctID identifies the caller for analytics: the client IP, falling back to the request ID.
func distinctID(c *gin.Context) (string, bool) {
	if ip := c.ClientIP(); ip != "" {
		return ip, true
	}
	return GetRequestIDFromContext(c)
}
