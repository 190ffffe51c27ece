package middleware

import (
	"time"

	"github.com/lumina-works/corporate-site/internal/api/constants"
	"github.com/lumina-works/corporate-site/internal/logging"
	"github.com/lumina-works/corporate-site/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request through the application logger.
// Whether anything is written is decided by the logger's LogRequests setting.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			utils.GetRealIP(c),
			c.GetString(constants.ContextKeyRequestID),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}
