package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumina-works/corporate-site/internal/models"
)

func TestBuildPayload_WithoutPhone(t *testing.T) {
	meta := models.SubmissionMeta{ReceivedAt: time.Date(2024, 4, 1, 9, 30, 0, 0, time.FixedZone("JST", 9*3600))}
	payload := BuildPayload(validSubmission(), meta, testProfile())

	require.Len(t, payload.Embeds, 1)
	embed := payload.Embeds[0]
	assert.Equal(t, "新しいお問い合わせ", embed.Title)
	assert.Equal(t, 3447003, embed.Color)
	assert.Equal(t, "2024-04-01T00:30:00.000Z", embed.Timestamp)
	assert.Equal(t, "株式会社テスト", embed.Footer.Text)

	require.Len(t, embed.Fields, 4)
	assert.Equal(t, []EmbedField{
		{Name: FieldCompany, Value: "Acme", Inline: true},
		{Name: FieldName, Value: "田中太郎", Inline: true},
		{Name: FieldEmail, Value: "t@example.com", Inline: false},
		{Name: FieldMessage, Value: "お見積りをお願いします", Inline: false},
	}, embed.Fields)
}

func TestBuildPayload_WithPhone(t *testing.T) {
	sub := validSubmission()
	sub.Phone = "03-1234-5678"
	payload := BuildPayload(sub, models.SubmissionMeta{ReceivedAt: time.Now()}, testProfile())

	fields := payload.Embeds[0].Fields
	require.Len(t, fields, 5)
	assert.Equal(t, EmbedField{Name: FieldPhone, Value: "03-1234-5678", Inline: true}, fields[3])
	assert.Equal(t, FieldMessage, fields[4].Name)
}

func TestBuildPayload_LongMessageIsClamped(t *testing.T) {
	sub := validSubmission()
	sub.Message = strings.Repeat("あ", 3000)
	payload := BuildPayload(sub, models.SubmissionMeta{ReceivedAt: time.Now()}, testProfile())

	msg := payload.Embeds[0].Fields[3].Value
	assert.Equal(t, maxFieldValue, utf8.RuneCountInString(msg))
	assert.True(t, strings.HasSuffix(msg, "…"))
}

func TestDiscordNotify(t *testing.T) {
	var got WebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	svc := NewDiscordService(srv.URL, testProfile(), srv.Client())
	err := svc.Notify(context.Background(), validSubmission(), models.SubmissionMeta{ReceivedAt: time.Now()})
	require.NoError(t, err)
	require.Len(t, got.Embeds, 1)
	assert.Len(t, got.Embeds[0].Fields, 4)
}

func TestDiscordNotify_NotConfigured(t *testing.T) {
	svc := NewDiscordService("", testProfile(), nil)
	err := svc.Notify(context.Background(), validSubmission(), models.SubmissionMeta{})
	assert.ErrorIs(t, err, ErrWebhookNotConfigured)
}

func TestDiscordNotify_DeliveryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid Form Body"}`))
	}))
	defer srv.Close()

	svc := NewDiscordService(srv.URL, testProfile(), srv.Client())
	err := svc.Notify(context.Background(), validSubmission(), models.SubmissionMeta{ReceivedAt: time.Now()})
	require.ErrorIs(t, err, ErrWebhookDelivery)
	assert.Contains(t, err.Error(), "Invalid Form Body")
}

func TestBuildPayload_BlankValueGetsPlaceholder(t *testing.T) {
	sub := validSubmission()
	sub.Message = "  \n "
	payload := BuildPayload(sub, models.SubmissionMeta{ReceivedAt: time.Now()}, testProfile())

	assert.Equal(t, blankFieldValue, payload.Embeds[0].Fields[3].Value)
}

func TestDiscordNotify_ErrorOmitsWebhookToken(t *testing.T) {
	const token = "wh-token-8f3c2a"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	webhookURL := srv.URL + "/api/webhooks/123/" + token
	srv.Close()

	svc := NewDiscordService(webhookURL, testProfile(), nil)
	err := svc.Notify(context.Background(), validSubmission(), models.SubmissionMeta{ReceivedAt: time.Now()})

	require.ErrorIs(t, err, ErrWebhookDelivery)
	assert.NotContains(t, err.Error(), token)
	assert.NotContains(t, err.Error(), "/api/webhooks")
}

func TestDiscordNotify_MalformedURLOmitsWebhookToken(t *testing.T) {
	const token = "wh-token-8f3c2a"

	svc := NewDiscordService("http://discord.example/api/webhooks/123/"+token+"\x7f", testProfile(), nil)
	err := svc.Notify(context.Background(), validSubmission(), models.SubmissionMeta{ReceivedAt: time.Now()})

	require.ErrorIs(t, err, ErrWebhookDelivery)
	assert.NotContains(t, err.Error(), token)
}
