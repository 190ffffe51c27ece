package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/lumina-works/corporate-site/internal/config"
	"github.com/lumina-works/corporate-site/internal/models"
)

// Discord rejects embed field values longer than this
const maxFieldValue = 1024

const embedTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Discord rejects blank field values, so they are sent as this instead
const blankFieldValue = "-"

// Field names shown in the chat channel
const (
	FieldCompany = "会社名"
	FieldName    = "お名前"
	FieldEmail   = "メールアドレス"
	FieldPhone   = "電話番号"
	FieldMessage = "お問い合わせ内容"
)

// Notifier records a new inquiry in the operations channel
type Notifier interface {
	Notify(ctx context.Context, sub *models.Submission, meta models.SubmissionMeta) error
}

// DiscordService posts inquiries to a Discord-compatible webhook
type DiscordService struct {
	webhookURL string
	profile    *config.SiteProfile
	client     *http.Client
}

// NewDiscordService creates a new webhook notifier. An empty webhookURL is
// accepted here and reported on every Notify call. The webhook URL embeds its
// token, so client should come from NewWebhookHTTPClient.
func NewDiscordService(webhookURL string, profile *config.SiteProfile, client *http.Client) *DiscordService {
	if client == nil {
		client = NewWebhookHTTPClient(defaultClientTimeout)
	}
	return &DiscordService{
		webhookURL: webhookURL,
		profile:    profile,
		client:     client,
	}
}

// WebhookPayload is the body posted to the webhook
type WebhookPayload struct {
	Embeds []Embed `json:"embeds"`
}

// Embed is one rich message
type Embed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Fields    []EmbedField `json:"fields"`
	Timestamp string       `json:"timestamp"`
	Footer    EmbedFooter  `json:"footer"`
}

// EmbedField is one name/value row of an embed
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// EmbedFooter is the small text under an embed
type EmbedFooter struct {
	Text string `json:"text"`
}

// BuildPayload assembles the notification. Fields keep submission order and
// the phone record is appended only when a phone number was given.
func BuildPayload(sub *models.Submission, meta models.SubmissionMeta, profile *config.SiteProfile) WebhookPayload {
	fields := []EmbedField{
		{Name: FieldCompany, Value: clampField(sub.Company), Inline: true},
		{Name: FieldName, Value: clampField(sub.ContactName), Inline: true},
		{Name: FieldEmail, Value: clampField(sub.Email), Inline: false},
	}
	if sub.HasPhone() {
		fields = append(fields, EmbedField{Name: FieldPhone, Value: clampField(sub.Phone), Inline: true})
	}
	fields = append(fields, EmbedField{Name: FieldMessage, Value: clampField(sub.Message), Inline: false})

	return WebhookPayload{
		Embeds: []Embed{{
			Title:     profile.Notification.Title,
			Color:     profile.Notification.Color,
			Fields:    fields,
			Timestamp: meta.ReceivedAt.UTC().Format(embedTimeLayout),
			Footer:    EmbedFooter{Text: profile.Notification.Footer},
		}},
	}
}

// Notify delivers the inquiry to the webhook
func (s *DiscordService) Notify(ctx context.Context, sub *models.Submission, meta models.SubmissionMeta) error {
	if s.webhookURL == "" {
		return ErrWebhookNotConfigured
	}

	jsonData, err := json.Marshal(BuildPayload(sub, meta, s.profile))
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrWebhookDelivery, stripURL(err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWebhookDelivery, stripURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: webhook returned status %d: %s", ErrWebhookDelivery, resp.StatusCode, readErrorBody(resp.Body))
	}

	return nil
}

// stripURL drops the request URL from net/http errors. Webhook URLs carry
// their token in the path.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func clampField(v string) string {
	if strings.TrimSpace(v) == "" {
		return blankFieldValue
	}
	if utf8.RuneCountInString(v) <= maxFieldValue {
		return v
	}
	runes := []rune(v)
	return string(runes[:maxFieldValue-1]) + "…"
}
