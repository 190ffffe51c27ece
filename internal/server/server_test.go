package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumina-works/corporate-site/internal/config"
	"github.com/lumina-works/corporate-site/internal/logging"
	"github.com/lumina-works/corporate-site/internal/service"
)

// downstream is a fake external service that counts calls and records bodies
type downstream struct {
	mu     sync.Mutex
	calls  int
	bodies [][]byte
	status int
	reply  string
	srv    *httptest.Server
}

func newDownstream(t *testing.T, status int, reply string) *downstream {
	d := &downstream{status: status, reply: reply}
	d.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d.mu.Lock()
		defer d.mu.Unlock()
		var body json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&body)
		d.calls++
		d.bodies = append(d.bodies, body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(d.status)
		w.Write([]byte(d.reply))
	}))
	t.Cleanup(d.srv.Close)
	return d
}

func (d *downstream) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

type harness struct {
	handler   http.Handler
	turnstile *downstream
	webhook   *downstream
	email     *downstream
}

type harnessOption func(cfg *config.Config, h *harness)

func withoutWebhook() harnessOption {
	return func(cfg *config.Config, h *harness) { cfg.DiscordWebhookURL = "" }
}

func withConfig(fn func(cfg *config.Config)) harnessOption {
	return func(cfg *config.Config, h *harness) { fn(cfg) }
}

func newHarness(t *testing.T, turnstileReply string, webhookStatus, emailStatus int, opts ...harnessOption) *harness {
	h := &harness{
		turnstile: newDownstream(t, http.StatusOK, turnstileReply),
		webhook:   newDownstream(t, webhookStatus, ""),
		email:     newDownstream(t, emailStatus, `{"id":"4ef9a417-02e9-4d39-ad75-9611e0fcc33c"}`),
	}
	if emailStatus >= 300 {
		h.email.reply = `{"statusCode":500,"name":"application_error","message":"boom"}`
	}

	cfg := &config.Config{
		Environment:        "test",
		Port:               "0",
		MaxBodyBytes:       65536,
		LogLevel:           "error",
		TurnstileSecretKey: "server-secret",
		TurnstileSiteKey:   "site-key",
		TurnstileVerifyURL: h.turnstile.srv.URL,
		DiscordWebhookURL:  h.webhook.srv.URL,
		ResendAPIKey:       "re_test",
		ResendBaseURL:      h.email.srv.URL,
		HTTPClientTimeout:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg, h)
	}

	profile, err := config.LoadProfile("")
	require.NoError(t, err)

	h.handler = NewServer(cfg, profile, logging.NewDiscardLogger()).Handler()
	return h
}

func (h *harness) post(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)
	return w
}

const (
	verified = `{"success":true}`
	rejected = `{"success":false,"error-codes":["invalid-input-response"]}`

	exampleBody = `{"company":"Acme","name":"田中太郎","email":"t@example.com","message":"お見積りをお願いします","privacyPolicy":true,"turnstileToken":"tok123"}`
)

func webhookFields(t *testing.T, raw []byte) []service.EmbedField {
	var payload service.WebhookPayload
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Len(t, payload.Embeds, 1)
	return payload.Embeds[0].Fields
}

func TestContact_ExampleSubmission(t *testing.T) {
	h := newHarness(t, verified, http.StatusNoContent, http.StatusOK)

	w := h.post(exampleBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"送信が完了しました"}`, w.Body.String())
	assert.Equal(t, 1, h.turnstile.callCount())
	assert.Equal(t, 1, h.webhook.callCount())
	assert.Equal(t, 1, h.email.callCount())

	fields := webhookFields(t, h.webhook.bodies[0])
	require.Len(t, fields, 4)
	assert.Equal(t, []string{service.FieldCompany, service.FieldName, service.FieldEmail, service.FieldMessage},
		[]string{fields[0].Name, fields[1].Name, fields[2].Name, fields[3].Name})

	var verifyReq map[string]string
	require.NoError(t, json.Unmarshal(h.turnstile.bodies[0], &verifyReq))
	assert.Equal(t, "server-secret", verifyReq["secret"])
	assert.Equal(t, "tok123", verifyReq["response"])
}

func TestContact_PhoneFieldPresentOnlyWhenSupplied(t *testing.T) {
	h := newHarness(t, verified, http.StatusNoContent, http.StatusOK)

	body := strings.Replace(exampleBody, `"message"`, `"phone":"03-1234-5678","message"`, 1)
	w := h.post(body)
	require.Equal(t, http.StatusOK, w.Code)

	fields := webhookFields(t, h.webhook.bodies[0])
	require.Len(t, fields, 5)
	phones := 0
	for _, f := range fields {
		if f.Name == service.FieldPhone {
			phones++
			assert.Equal(t, "03-1234-5678", f.Value)
		}
	}
	assert.Equal(t, 1, phones)
}

func TestContact_MissingFieldMakesNoOutboundCalls(t *testing.T) {
	h := newHarness(t, verified, http.StatusNoContent, http.StatusOK)

	w := h.post(`{"company":"Acme","name":"田中太郎","email":"t@example.com","message":"m","privacyPolicy":false,"turnstileToken":"tok123"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, h.turnstile.callCount())
	assert.Zero(t, h.webhook.callCount())
	assert.Zero(t, h.email.callCount())
}

func TestContact_VerificationRejected(t *testing.T) {
	h := newHarness(t, rejected, http.StatusNoContent, http.StatusOK)

	w := h.post(exampleBody)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), "invalid-input-response")
	assert.Zero(t, h.webhook.callCount())
	assert.Zero(t, h.email.callCount())
}

func TestContact_WebhookNotConfigured(t *testing.T) {
	h := newHarness(t, verified, http.StatusNoContent, http.StatusOK, withoutWebhook())

	w := h.post(exampleBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, h.turnstile.callCount())
	assert.Zero(t, h.email.callCount())
}

func TestContact_WebhookDeliveryFailed(t *testing.T) {
	h := newHarness(t, verified, http.StatusBadGateway, http.StatusOK)

	w := h.post(exampleBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, h.webhook.callCount())
	assert.Zero(t, h.email.callCount())
}

func TestContact_EmailFailureStillSucceeds(t *testing.T) {
	h := newHarness(t, verified, http.StatusNoContent, http.StatusInternalServerError)

	w := h.post(exampleBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"送信が完了しました"}`, w.Body.String())
	assert.GreaterOrEqual(t, h.email.callCount(), 1)
}

func forwardedRemoteIP(t *testing.T, h *harness) string {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(exampleBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("CF-Connecting-IP", "198.51.100.9")
	req.Header.Set("X-Forwarded-For", "198.51.100.10")
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var verifyReq map[string]string
	require.NoError(t, json.Unmarshal(h.turnstile.bodies[0], &verifyReq))
	return verifyReq["remoteip"]
}

func TestContact_RemoteIPHeadersNeedTrust(t *testing.T) {
	t.Run("direct client cannot choose remoteip", func(t *testing.T) {
		h := newHarness(t, verified, http.StatusNoContent, http.StatusOK)
		assert.Equal(t, "192.0.2.1", forwardedRemoteIP(t, h))
	})

	t.Run("cloudflare platform", func(t *testing.T) {
		h := newHarness(t, verified, http.StatusNoContent, http.StatusOK,
			withConfig(func(cfg *config.Config) { cfg.TrustedPlatform = "cloudflare" }))
		assert.Equal(t, "198.51.100.9", forwardedRemoteIP(t, h))
	})

	t.Run("trusted proxy", func(t *testing.T) {
		h := newHarness(t, verified, http.StatusNoContent, http.StatusOK,
			withConfig(func(cfg *config.Config) { cfg.TrustedProxies = []string{"192.0.2.0/24"} }))
		assert.Equal(t, "198.51.100.10", forwardedRemoteIP(t, h))
	})
}

func TestRoutes(t *testing.T) {
	h := newHarness(t, verified, http.StatusNoContent, http.StatusOK)

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("site config", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/site-config", nil))
		assert.JSONEq(t, `{"turnstileSiteKey":"site-key"}`, w.Body.String())
		assert.NotContains(t, w.Body.String(), "server-secret")
	})

	t.Run("versioned submit path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/contact/submit", strings.NewReader(exampleBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown path", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
