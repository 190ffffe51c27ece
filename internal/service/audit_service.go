package service

import (
	"time"

	"github.com/lumina-works/corporate-site/internal/logging"
	"github.com/lumina-works/corporate-site/internal/models"
)

// AuditEventType represents the outcome recorded for a submission
type AuditEventType string

const (
	AuditEventRejected       AuditEventType = "SUBMISSION_REJECTED"
	AuditEventBotCheckFailed AuditEventType = "BOT_CHECK_FAILED"
	AuditEventNotifyFailed   AuditEventType = "NOTIFY_FAILED"
	AuditEventAccepted       AuditEventType = "SUBMISSION_ACCEPTED"
	AuditEventEmailFailed    AuditEventType = "CONFIRMATION_EMAIL_FAILED"
)

// AuditService writes one line per pipeline outcome. It records request
// metadata only; submission contents and secrets stay out of the log.
type AuditService struct {
	logger *logging.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(logger *logging.Logger) *AuditService {
	return &AuditService{logger: logger}
}

// LogSubmissionEvent records one outcome
func (s *AuditService) LogSubmissionEvent(eventType AuditEventType, meta models.SubmissionMeta, err error) {
	elapsed := time.Duration(0)
	if !meta.ReceivedAt.IsZero() {
		elapsed = time.Since(meta.ReceivedAt).Round(time.Millisecond)
	}

	if err != nil {
		s.logger.Warn("[AUDIT] %s | Request: %s | IP: %s | Elapsed: %s | Reason: %v",
			eventType, meta.RequestID, meta.ClientIP, elapsed, err)
		return
	}

	s.logger.Info("[AUDIT] %s | Request: %s | IP: %s | Elapsed: %s",
		eventType, meta.RequestID, meta.ClientIP, elapsed)
}
