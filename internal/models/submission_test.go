package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmissionComplete(t *testing.T) {
	full := Submission{
		Company:        "Acme",
		ContactName:    "田中太郎",
		Email:          "t@example.com",
		Message:        "お見積りをお願いします",
		ConsentGiven:   true,
		ChallengeToken: "tok123",
	}

	tests := []struct {
		name   string
		mutate func(s *Submission)
		want   bool
	}{
		{"all required present", func(s *Submission) {}, true},
		{"phone is optional", func(s *Submission) { s.Phone = "" }, true},
		{"lenient email", func(s *Submission) { s.Email = "not-an-address" }, true},
		{"missing company", func(s *Submission) { s.Company = "" }, false},
		{"missing name", func(s *Submission) { s.ContactName = "" }, false},
		{"missing email", func(s *Submission) { s.Email = "" }, false},
		{"missing message", func(s *Submission) { s.Message = "" }, false},
		{"consent not given", func(s *Submission) { s.ConsentGiven = false }, false},
		{"missing token", func(s *Submission) { s.ChallengeToken = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := full
			tt.mutate(&s)
			assert.Equal(t, tt.want, s.Complete())
		})
	}
}
