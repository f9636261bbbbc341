package models

import (
	"github.com/google/uuid"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// SessionResponse reports whether the caller's session holds the admin flag.
type SessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

// StatusRequest is the body of a status change.
type StatusRequest struct {
	Status string `json:"status"`
}

// CertificationRequest is the body of an explicit certification change.
// Certified is a pointer so a missing field can be told apart from false.
type CertificationRequest struct {
	Certified *bool `json:"certified"`
}

// CertificationResponse contains the certification state after a change.
type CertificationResponse struct {
	ID          uuid.UUID `json:"id"`
	IsCertified bool      `json:"is_certified"`
}

// ModerationListResponse is the admin list with its filter and per-status counts.
type ModerationListResponse struct {
	Filter any            `json:"filter"`
	Items  []Testimonial  `json:"items"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// ValidationErrorResponse is returned with 422 when a submission is rejected.
type ValidationErrorResponse struct {
	Status string            `json:"status"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}
