package otp

import (
	"errors"
	"time"
)

// Record is a pending one-time code for an email address. The store keeps
// at most one live record per email; issuing a new code supersedes any
// earlier one.
type Record struct {
	Email     string    `json:"email"`
	Code      string    `json:"otp"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired checks if the record is past its expiry.
func (r *Record) IsExpired() bool {
	return time.Now().After(r.ExpiresAt)
}

// Verification failure taxonomy. Handlers map these onto distinct
// user-actionable messages ("request a new code" vs "check and retry").
var (
	ErrNotFound = errors.New("no OTP found for this email")
	ErrExpired  = errors.New("OTP has expired")
	ErrMismatch = errors.New("invalid OTP")
)

// VerifyRequest is the payload of the verification endpoint.
type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"otp"`
}

// RequestOTPRequest is the payload of the issuance endpoint.
type RequestOTPRequest struct {
	Email string `json:"email"`
}

// VerifyResponse is the wire shape of both issuance and verification replies.
type VerifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
