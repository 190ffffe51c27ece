package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/lumina-works/corporate-site/internal/api/constants"
	"github.com/lumina-works/corporate-site/internal/api/dto/common"
	"github.com/lumina-works/corporate-site/internal/api/dto/v1/contact"
	"github.com/lumina-works/corporate-site/internal/api/validation"
	"github.com/lumina-works/corporate-site/internal/logging"
	"github.com/lumina-works/corporate-site/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ValidationMiddleware handles request validation
type ValidationMiddleware struct {
	logger *logging.Logger
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware(logger *logging.Logger) *ValidationMiddleware {
	validation.RegisterValidators()
	return &ValidationMiddleware{logger: logger}
}

// ValidateContactRequest binds the contact payload and rejects it before any
// outbound call when a required field is missing, empty or false.
func (m *ValidationMiddleware) ValidateContactRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contact.ContactRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				utils.HandleAPIError(c, m.logger, err, http.StatusRequestEntityTooLarge, common.ErrCodeEntityTooLarge, common.MsgRequestTooLarge)
				return
			}

			var validationErrs validator.ValidationErrors
			if errors.As(err, &validationErrs) {
				err = errors.New("missing fields: " + strings.Join(validation.MissingFields(err), ", "))
			}
			utils.HandleAPIError(c, m.logger, err, http.StatusBadRequest, common.ErrCodeValidation, common.MsgMissingFields)
			return
		}

		c.Set(constants.ContextKeyContact, &req)
		c.Next()
	}
}
