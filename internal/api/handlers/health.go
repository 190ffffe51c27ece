package handlers

import (
	"net/http"

	"github.com/lumina-works/corporate-site/internal/api/dto/common"
	"github.com/lumina-works/corporate-site/internal/version"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, common.HealthResponse{
		Status:  "ok",
		Version: version.Version,
	})
}
