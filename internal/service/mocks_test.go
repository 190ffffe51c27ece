package service

import (
	"context"

	"github.com/lumina-works/corporate-site/internal/config"
	"github.com/lumina-works/corporate-site/internal/models"
)

type mockVerifier struct {
	verifyFunc func(ctx context.Context, token, remoteIP string) error
	calls      int
}

func (m *mockVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	m.calls++
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, token, remoteIP)
	}
	return nil
}

type mockNotifier struct {
	notifyFunc func(ctx context.Context, sub *models.Submission, meta models.SubmissionMeta) error
	calls      int
}

func (m *mockNotifier) Notify(ctx context.Context, sub *models.Submission, meta models.SubmissionMeta) error {
	m.calls++
	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, sub, meta)
	}
	return nil
}

type mockMailer struct {
	sendFunc func(ctx context.Context, sub *models.Submission) error
	calls    int
}

func (m *mockMailer) SendConfirmation(ctx context.Context, sub *models.Submission) error {
	m.calls++
	if m.sendFunc != nil {
		return m.sendFunc(ctx, sub)
	}
	return nil
}

func testProfile() *config.SiteProfile {
	p := &config.SiteProfile{}
	p.Organization.Name = "株式会社テスト"
	p.Organization.PostalCode = "〒100-0001"
	p.Organization.Address = "東京都千代田区千代田1-1"
	p.Organization.ContactEmail = "info@example.co.jp"
	p.Organization.WebsiteURL = "https://www.example.co.jp"
	p.Organization.ResponseHours = "2営業日以内"
	p.Notification.Title = "新しいお問い合わせ"
	p.Notification.Color = 3447003
	p.Notification.Footer = "株式会社テスト"
	p.Email.From = "株式会社テスト <noreply@example.co.jp>"
	p.Email.Subject = "お問い合わせありがとうございます"
	return p
}

func validSubmission() *models.Submission {
	return &models.Submission{
		Company:        "Acme",
		ContactName:    "田中太郎",
		Email:          "t@example.com",
		Message:        "お見積りをお願いします",
		ConsentGiven:   true,
		ChallengeToken: "tok123",
	}
}
