package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/lumina-works/corporate-site/internal/api/constants"
	"github.com/lumina-works/corporate-site/internal/api/dto/common"
	"github.com/lumina-works/corporate-site/internal/logging"
	"github.com/lumina-works/corporate-site/internal/utils"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into the generic server-error response. The panic
// value and stack go to the log only.
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error("[PANIC] %s %s | %s | %s | %v\n%s",
			c.Request.Method,
			c.Request.URL.Path,
			utils.GetRealIP(c),
			c.GetString(constants.ContextKeyRequestID),
			recovered,
			debug.Stack(),
		)
		utils.HandleAPIError(c, logger, fmt.Errorf("panic: %v", recovered), http.StatusInternalServerError, common.ErrCodeInternalServer, common.MsgServerError)
	})
}
