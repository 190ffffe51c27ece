package utils

import (
	"github.com/lumina-works/corporate-site/internal/api/constants"
	"github.com/lumina-works/corporate-site/internal/api/dto/common"
	"github.com/lumina-works/corporate-site/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleAPIError logs the error with its full detail for operators and sends
// the caller nothing but the fixed message. Error details are never exposed,
// regardless of gin mode.
func HandleAPIError(c *gin.Context, logger *logging.Logger, err error, status int, code common.ErrorCode, message string) {
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		c.GetString(constants.ContextKeyRequestID),
		status,
		string(code),
		err,
	)

	c.Set(constants.ContextKeyErrorCode, string(code))
	c.AbortWithStatusJSON(status, common.NewMessageResponse(message))
}
