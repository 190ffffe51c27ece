package middleware

import (
	"github.com/lumina-works/corporate-site/internal/api/constants"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxRequestIDLength caps client supplied IDs before they reach the logs
const maxRequestIDLength = 64

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check for existing request ID in header
		requestID := c.GetHeader(constants.HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.New().String()
		}

		c.Set(constants.ContextKeyRequestID, requestID)
		c.Header(constants.HeaderRequestID, requestID)

		c.Next()
	}
}
