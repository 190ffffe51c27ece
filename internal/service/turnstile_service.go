package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// DefaultTurnstileVerifyURL is Cloudflare's siteverify endpoint
const DefaultTurnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// Verifier redeems a challenge token
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// TurnstileService handles Cloudflare Turnstile verification
type TurnstileService struct {
	secretKey string
	verifyURL string
	client    *http.Client
}

// NewTurnstileService creates a new Turnstile service
func NewTurnstileService(secretKey, verifyURL string, client *http.Client) *TurnstileService {
	if verifyURL == "" {
		verifyURL = DefaultTurnstileVerifyURL
	}
	if client == nil {
		client = NewHTTPClient(defaultClientTimeout)
	}
	return &TurnstileService{
		secretKey: secretKey,
		verifyURL: verifyURL,
		client:    client,
	}
}

type turnstileRequest struct {
	Secret   string `json:"secret"`
	Response string `json:"response"`
	RemoteIP string `json:"remoteip,omitempty"`
}

// turnstileResponse represents the response from the siteverify endpoint
type turnstileResponse struct {
	Success     bool     `json:"success"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	Action      string   `json:"action"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// Verify redeems token against the siteverify endpoint. Every failure,
// including transport and decoding errors, wraps ErrVerificationFailed.
func (s *TurnstileService) Verify(ctx context.Context, token, remoteIP string) error {
	if s.secretKey == "" {
		return fmt.Errorf("%w: turnstile secret key not configured", ErrVerificationFailed)
	}

	if token == "" {
		return fmt.Errorf("%w: turnstile token is required", ErrVerificationFailed)
	}

	payload, err := json.Marshal(turnstileRequest{
		Secret:   s.secretKey,
		Response: token,
		RemoteIP: remoteIP,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrVerificationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrVerificationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: siteverify unreachable: %v", ErrVerificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: siteverify returned status %d", ErrVerificationFailed, resp.StatusCode)
	}

	var result turnstileResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: failed to parse siteverify response: %v", ErrVerificationFailed, err)
	}

	if !result.Success {
		return fmt.Errorf("%w: rejected with codes %v", ErrVerificationFailed, result.ErrorCodes)
	}

	return nil
}
