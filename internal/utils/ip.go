package utils

import (
	"github.com/gin-gonic/gin"
)

// GetRealIP returns the client IP. Forwarding headers count only when the
// engine trusts the peer (SetTrustedProxies) or a platform header is
// configured (TrustedPlatform); otherwise it is the connection's address.
func GetRealIP(c *gin.Context) string {
	return c.ClientIP()
}
