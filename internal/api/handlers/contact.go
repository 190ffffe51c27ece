package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lumina-works/corporate-site/internal/api/constants"
	"github.com/lumina-works/corporate-site/internal/api/dto/common"
	"github.com/lumina-works/corporate-site/internal/api/dto/v1/contact"
	"github.com/lumina-works/corporate-site/internal/logging"
	"github.com/lumina-works/corporate-site/internal/models"
	"github.com/lumina-works/corporate-site/internal/service"
	"github.com/lumina-works/corporate-site/internal/utils"

	"github.com/gin-gonic/gin"
)

// ContactSubmitter runs the contact pipeline for one submission
type ContactSubmitter interface {
	Submit(ctx context.Context, sub *models.Submission, meta models.SubmissionMeta) error
}

type ContactHandler struct {
	contactService ContactSubmitter
	logger         *logging.Logger
	siteKey        string
	now            func() time.Time
}

func NewContactHandler(contactService ContactSubmitter, siteKey string, logger *logging.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
		siteKey:        siteKey,
		now:            time.Now,
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	// Get contact data from context (set by validation middleware)
	contactData, exists := c.Get(constants.ContextKeyContact)
	if !exists {
		utils.HandleAPIError(c, h.logger, errors.New("contact data not found in context"), http.StatusInternalServerError, common.ErrCodeInternalServer, common.MsgServerError)
		return
	}

	contactPtr, ok := contactData.(*contact.ContactRequest)
	if !ok {
		utils.HandleAPIError(c, h.logger, fmt.Errorf("unexpected contact data type %T", contactData), http.StatusInternalServerError, common.ErrCodeInternalServer, common.MsgServerError)
		return
	}

	meta := models.SubmissionMeta{
		RequestID:  c.GetString(constants.ContextKeyRequestID),
		ClientIP:   utils.GetRealIP(c),
		UserAgent:  c.Request.UserAgent(),
		ReceivedAt: h.now(),
	}

	if err := h.contactService.Submit(c.Request.Context(), contactPtr.ToSubmission(), meta); err != nil {
		status, code, message := classifySubmitError(err)
		utils.HandleAPIError(c, h.logger, err, status, code, message)
		return
	}

	utils.HandleMessage(c, common.MsgSubmitted)
}

// SiteConfig returns the public settings the challenge widget needs
func (h *ContactHandler) SiteConfig(c *gin.Context) {
	utils.HandleSuccess(c, contact.SiteConfigResponse{
		TurnstileSiteKey: h.siteKey,
	})
}

func classifySubmitError(err error) (int, common.ErrorCode, string) {
	switch {
	case errors.Is(err, service.ErrIncompleteSubmission):
		return http.StatusBadRequest, common.ErrCodeValidation, common.MsgMissingFields
	case errors.Is(err, service.ErrVerificationFailed):
		return http.StatusBadRequest, common.ErrCodeBotCheck, common.MsgBotCheckFailed
	case errors.Is(err, service.ErrWebhookNotConfigured):
		return http.StatusInternalServerError, common.ErrCodeNotConfigured, common.MsgServerError
	case errors.Is(err, service.ErrWebhookDelivery):
		return http.StatusInternalServerError, common.ErrCodeDelivery, common.MsgSubmissionFailed
	default:
		return http.StatusInternalServerError, common.ErrCodeInternalServer, common.MsgServerError
	}
}
