package models

import "time"

// Submission is one contact-form inquiry. It lives for the duration of a
// single request and is never stored.
type Submission struct {
	Company        string
	ContactName    string
	Email          string
	Phone          string // optional
	Message        string
	ConsentGiven   bool
	ChallengeToken string
}

// Complete reports whether every required attribute is present. Phone is the
// only optional attribute and the email address is not format-checked.
func (s *Submission) Complete() bool {
	return s.Company != "" &&
		s.ContactName != "" &&
		s.Email != "" &&
		s.Message != "" &&
		s.ConsentGiven &&
		s.ChallengeToken != ""
}

// HasPhone reports whether the optional phone number was supplied
func (s *Submission) HasPhone() bool {
	return s.Phone != ""
}

// SubmissionMeta carries server-side facts about the request that delivered a
// Submission. None of it is echoed back to the caller.
type SubmissionMeta struct {
	RequestID  string
	ClientIP   string
	UserAgent  string
	ReceivedAt time.Time
}
