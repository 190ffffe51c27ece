package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"net/http"
	"net/url"
	"strings"
	texttemplate "text/template"

	"github.com/resend/resend-go/v2"

	"github.com/lumina-works/corporate-site/internal/config"
	"github.com/lumina-works/corporate-site/internal/models"
)

//go:embed templates/confirmation.html templates/confirmation.txt
var templateFS embed.FS

var (
	confirmationHTML = htmltemplate.Must(htmltemplate.New("confirmation.html").
				Funcs(htmltemplate.FuncMap{"lines": splitLines}).
				ParseFS(templateFS, "templates/confirmation.html"))
	confirmationText = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/confirmation.txt"))
)

// Mailer sends the acknowledgment to the person who submitted the form
type Mailer interface {
	SendConfirmation(ctx context.Context, sub *models.Submission) error
}

// EmailService sends confirmation emails through Resend
type EmailService struct {
	client  *resend.Client
	profile *config.SiteProfile
}

// NewEmailService creates a new email service. Without an API key the
// service stays constructible and every send reports ErrEmailNotConfigured.
// baseURL overrides the Resend API endpoint when non-empty.
func NewEmailService(apiKey, baseURL string, profile *config.SiteProfile, httpClient *http.Client) *EmailService {
	s := &EmailService{profile: profile}
	if apiKey == "" {
		return s
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(defaultClientTimeout)
	}
	s.client = resend.NewCustomClient(httpClient, apiKey)
	if baseURL != "" {
		if u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/"); err == nil {
			s.client.BaseURL = u
		}
	}
	return s
}

// confirmationData is what the templates see
type confirmationData struct {
	Subject          string
	Company          string
	ContactName      string
	Email            string
	Phone            string
	Message          string
	ResponseTime     string
	OrganizationName string
	PostalCode       string
	Address          string
	ContactEmail     string
	WebsiteURL       string
}

// RenderConfirmation renders the HTML and plain-text bodies
func RenderConfirmation(sub *models.Submission, profile *config.SiteProfile) (html, text string, err error) {
	data := confirmationData{
		Subject:          profile.Email.Subject,
		Company:          sub.Company,
		ContactName:      sub.ContactName,
		Email:            sub.Email,
		Phone:            sub.Phone,
		Message:          sub.Message,
		ResponseTime:     profile.Organization.ResponseHours,
		OrganizationName: profile.Organization.Name,
		PostalCode:       profile.Organization.PostalCode,
		Address:          profile.Organization.Address,
		ContactEmail:     profile.Organization.ContactEmail,
		WebsiteURL:       profile.Organization.WebsiteURL,
	}

	var htmlBuf, textBuf bytes.Buffer
	if err := confirmationHTML.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to render html body: %w", err)
	}
	if err := confirmationText.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to render text body: %w", err)
	}
	return htmlBuf.String(), textBuf.String(), nil
}

// SendConfirmation sends one email to the submitter's address
func (s *EmailService) SendConfirmation(ctx context.Context, sub *models.Submission) error {
	if s.client == nil {
		return ErrEmailNotConfigured
	}

	html, text, err := RenderConfirmation(sub, s.profile)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.profile.Email.From,
		To:      []string{sub.Email},
		Subject: s.profile.Email.Subject,
		Html:    html,
		Text:    text,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}

	return nil
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
