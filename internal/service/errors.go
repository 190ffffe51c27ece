package service

import "errors"

// Sentinel errors for the contact pipeline. The handler maps each one to a
// status code and a fixed caller-visible message.
var (
	ErrIncompleteSubmission = errors.New("required fields missing")
	ErrVerificationFailed   = errors.New("bot verification failed")
	ErrWebhookNotConfigured = errors.New("webhook URL not configured")
	ErrWebhookDelivery      = errors.New("webhook delivery failed")
	ErrEmailNotConfigured   = errors.New("email API key not configured")
	ErrEmailDelivery        = errors.New("email delivery failed")
)
