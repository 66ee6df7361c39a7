package ports

import (
	"context"
	"time"
)

// EmailService delivers transactional mail
type EmailService interface {
	// SendOTPEmail delivers a one-time code; ttl is shown to the recipient
	// so they know how long the code stays valid.
	SendOTPEmail(ctx context.Context, toEmail, code string, ttl time.Duration) error
}
