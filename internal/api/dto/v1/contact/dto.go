package contact

import "github.com/lumina-works/corporate-site/internal/models"

// ContactRequest represents a contact form submission. Only presence is
// checked; privacyPolicy must be true for "required" to pass on a bool.
type ContactRequest struct {
	Company        string `json:"company" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required"`
	Phone          string `json:"phone"`
	Message        string `json:"message" binding:"required"`
	PrivacyPolicy  bool   `json:"privacyPolicy" binding:"required"`
	TurnstileToken string `json:"turnstileToken" binding:"required"`
}

// ToSubmission maps the wire shape onto the domain model
func (r *ContactRequest) ToSubmission() *models.Submission {
	return &models.Submission{
		Company:        r.Company,
		ContactName:    r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Message:        r.Message,
		ConsentGiven:   r.PrivacyPolicy,
		ChallengeToken: r.TurnstileToken,
	}
}

// ContactResponse represents the response after submitting a contact form
type ContactResponse struct {
	Message string `json:"message"`
}

// SiteConfigResponse exposes the settings the browser widget needs
type SiteConfigResponse struct {
	TurnstileSiteKey string `json:"turnstileSiteKey"`
}
