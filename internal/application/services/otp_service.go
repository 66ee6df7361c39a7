package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stridewear/storefront-api/internal/core/domain/otp"
	"github.com/stridewear/storefront-api/internal/core/ports"
)

type OTPService struct {
	repo      ports.OTPRepository
	email     ports.EmailService
	customers ports.CustomerService
	ttl       time.Duration
	logger    *logrus.Logger
}

// NewOTPService wires the OTP issuance and verification flow. customers is
// optional: when present, a successful verification also marks a matching
// customer account as email-verified.
func NewOTPService(repo ports.OTPRepository, email ports.EmailService, customers ports.CustomerService, ttl time.Duration, logger *logrus.Logger) ports.OTPService {
	return &OTPService{
		repo:      repo,
		email:     email,
		customers: customers,
		ttl:       ttl,
		logger:    logger,
	}
}

// RequestCode issues a fresh 6-digit code for email. Any pending code for
// the same address is superseded before delivery is attempted, so a failed
// send never leaves an older still-deliverable code alive.
func (s *OTPService) RequestCode(ctx context.Context, email string) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	record := &otp.Record{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	if err := s.email.SendOTPEmail(ctx, email, code, s.ttl); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	otpRequestsTotal.Inc()
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"email": email}).Info("one-time code issued")
	}
	return nil
}

// VerifyCode validates the submitted code against the pending record.
// Expired records are purged as a side effect of the check (lazy expiry);
// a mismatch leaves the record intact so the user can retry until expiry.
// On success the record is deleted, enforcing single use.
func (s *OTPService) VerifyCode(ctx context.Context, email, code string) error {
	record, err := s.repo.Get(ctx, email)
	if err != nil {
		if errors.Is(err, otp.ErrNotFound) {
			otpVerificationsTotal.WithLabelValues("not_found").Inc()
			return otp.ErrNotFound
		}
		otpVerificationsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to load OTP record: %w", err)
	}

	if record.IsExpired() {
		if err := s.repo.Delete(ctx, email); err != nil && s.logger != nil {
			s.logger.WithFields(logrus.Fields{"email": email}).WithError(err).Warn("failed to purge expired OTP")
		}
		otpVerificationsTotal.WithLabelValues("expired").Inc()
		return otp.ErrExpired
	}

	if subtle.ConstantTimeCompare([]byte(record.Code), []byte(code)) != 1 {
		otpVerificationsTotal.WithLabelValues("mismatch").Inc()
		return otp.ErrMismatch
	}

	// Single use: the record must be gone before success is reported, or a
	// replayed request could verify twice.
	if err := s.repo.Delete(ctx, email); err != nil {
		otpVerificationsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to consume OTP record: %w", err)
	}

	if s.customers != nil {
		if err := s.customers.MarkEmailVerified(ctx, email); err != nil && s.logger != nil {
			// The address may belong to a guest without an account yet.
			s.logger.WithFields(logrus.Fields{"email": email}).WithError(err).Debug("no customer account to mark verified")
		}
	}

	otpVerificationsTotal.WithLabelValues("success").Inc()
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"email": email}).Info("one-time code verified")
	}
	return nil
}

// generateCode returns a uniformly random 6-digit code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
