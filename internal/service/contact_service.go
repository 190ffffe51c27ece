package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lumina-works/corporate-site/internal/logging"
	"github.com/lumina-works/corporate-site/internal/models"
)

const tracerName = "github.com/lumina-works/corporate-site/internal/service"

// ContactService runs the contact pipeline: presence check, bot
// verification, webhook notification, confirmation email. Stages run in
// that order and a failure stops everything after it, except the email,
// whose failure is logged and swallowed.
type ContactService struct {
	verifier Verifier
	notifier Notifier
	mailer   Mailer
	audit    *AuditService
	logger   *logging.Logger
	tracer   trace.Tracer
}

// NewContactService wires the pipeline
func NewContactService(verifier Verifier, notifier Notifier, mailer Mailer, logger *logging.Logger) *ContactService {
	return &ContactService{
		verifier: verifier,
		notifier: notifier,
		mailer:   mailer,
		audit:    NewAuditService(logger),
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
	}
}

// Submit processes one submission. A nil return means the inquiry was
// recorded by the webhook; the confirmation email may still have failed.
func (s *ContactService) Submit(ctx context.Context, sub *models.Submission, meta models.SubmissionMeta) error {
	ctx, span := s.tracer.Start(ctx, "contact.submit",
		trace.WithAttributes(
			attribute.String("request.id", meta.RequestID),
			attribute.Bool("submission.has_phone", sub.HasPhone()),
		))
	defer span.End()

	if !sub.Complete() {
		s.audit.LogSubmissionEvent(AuditEventRejected, meta, ErrIncompleteSubmission)
		return s.fail(span, ErrIncompleteSubmission)
	}

	if err := s.verify(ctx, sub, meta); err != nil {
		s.audit.LogSubmissionEvent(AuditEventBotCheckFailed, meta, err)
		return s.fail(span, err)
	}

	if err := s.notify(ctx, sub, meta); err != nil {
		s.audit.LogSubmissionEvent(AuditEventNotifyFailed, meta, err)
		return s.fail(span, err)
	}

	s.audit.LogSubmissionEvent(AuditEventAccepted, meta, nil)

	// The webhook already holds the inquiry, so a failed email does not
	// change the outcome.
	if err := s.sendConfirmation(ctx, sub); err != nil {
		s.audit.LogSubmissionEvent(AuditEventEmailFailed, meta, err)
		span.AddEvent("confirmation email failed", trace.WithAttributes(attribute.String("error", err.Error())))
	}

	return nil
}

func (s *ContactService) verify(ctx context.Context, sub *models.Submission, meta models.SubmissionMeta) error {
	ctx, span := s.tracer.Start(ctx, "contact.verify")
	defer span.End()

	if err := s.verifier.Verify(ctx, sub.ChallengeToken, meta.ClientIP); err != nil {
		if !errors.Is(err, ErrVerificationFailed) {
			err = fmt.Errorf("%w: %v", ErrVerificationFailed, err)
		}
		return s.fail(span, err)
	}
	return nil
}

func (s *ContactService) notify(ctx context.Context, sub *models.Submission, meta models.SubmissionMeta) error {
	ctx, span := s.tracer.Start(ctx, "contact.notify")
	defer span.End()

	if err := s.notifier.Notify(ctx, sub, meta); err != nil {
		return s.fail(span, err)
	}
	return nil
}

func (s *ContactService) sendConfirmation(ctx context.Context, sub *models.Submission) (err error) {
	ctx, span := s.tracer.Start(ctx, "contact.confirmation_email")
	defer span.End()

	// A panicking mailer must not turn an accepted inquiry into a failure
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrEmailDelivery, r)
			s.fail(span, err)
		}
	}()

	if err := s.mailer.SendConfirmation(ctx, sub); err != nil {
		return s.fail(span, err)
	}
	return nil
}

func (s *ContactService) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
