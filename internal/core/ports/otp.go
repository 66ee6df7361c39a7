package ports

import (
	"context"

	"github.com/stridewear/storefront-api/internal/core/domain/otp"
)

// OTPRepository is the durable holder of pending one-time codes, keyed by
// email with at most one live record per key. Implementations must make
// Upsert supersede any prior record and must be safe under concurrent
// requests for different emails (no lost updates).
type OTPRepository interface {
	// Get returns the record for email, otp.ErrNotFound when absent. An
	// expired record is still returned so the caller can tell expired
	// apart from never-issued; purging it is the caller's decision.
	Get(ctx context.Context, email string) (*otp.Record, error)
	// Upsert stores the record, replacing any earlier one for the same email.
	Upsert(ctx context.Context, record *otp.Record) error
	// Delete removes the record for email; absence is not an error.
	Delete(ctx context.Context, email string) error
}

// OTPService issues and verifies one-time codes.
type OTPService interface {
	// RequestCode generates a fresh code for email, supersedes any pending
	// one and delivers it by email.
	RequestCode(ctx context.Context, email string) error
	// VerifyCode checks the submitted code. It returns otp.ErrNotFound,
	// otp.ErrExpired (purging the stale record) or otp.ErrMismatch on
	// failure; on success the record is consumed (single use).
	VerifyCode(ctx context.Context, email, code string) error
}
