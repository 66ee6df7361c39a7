package services_test

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	impl "github.com/stridewear/storefront-api/internal/application/services"
	"github.com/stridewear/storefront-api/internal/core/domain/otp"
	"github.com/stridewear/storefront-api/internal/infrastructure/repositories"
	"github.com/stridewear/storefront-api/test/mocks"
)

func TestRequestCode_StoresBeforeSending(t *testing.T) {
	var stored *otp.Record
	repo := &mocks.OTPRepositoryMock{
		UpsertFn: func(ctx context.Context, record *otp.Record) error {
			stored = record
			return nil
		},
	}
	var sentCode string
	email := &mocks.EmailServiceMock{
		SendOTPEmailFn: func(ctx context.Context, toEmail, code string, ttl time.Duration) error {
			sentCode = code
			return nil
		},
	}

	svc := impl.NewOTPService(repo, email, nil, 10*time.Minute, nil)
	require.NoError(t, svc.RequestCode(context.Background(), "ana@example.com"))

	require.NotNil(t, stored)
	assert.Equal(t, "ana@example.com", stored.Email)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), stored.Code)
	assert.Equal(t, stored.Code, sentCode)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), stored.ExpiresAt, 5*time.Second)
}

func TestRequestCode_SendFailureReturnsError(t *testing.T) {
	repo := &mocks.OTPRepositoryMock{}
	email := &mocks.EmailServiceMock{
		SendOTPEmailFn: func(ctx context.Context, toEmail, code string, ttl time.Duration) error {
			return fmt.Errorf("sendgrid unavailable")
		},
	}

	svc := impl.NewOTPService(repo, email, nil, 10*time.Minute, nil)
	err := svc.RequestCode(context.Background(), "ana@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send OTP email")
}

func TestVerifyCode_Success_ConsumesRecord(t *testing.T) {
	deleted := false
	repo := &mocks.OTPRepositoryMock{
		GetFn: func(ctx context.Context, email string) (*otp.Record, error) {
			return &otp.Record{Email: email, Code: "482910", ExpiresAt: time.Now().Add(5 * time.Minute)}, nil
		},
		DeleteFn: func(ctx context.Context, email string) error {
			deleted = true
			return nil
		},
	}

	svc := impl.NewOTPService(repo, &mocks.EmailServiceMock{}, nil, 10*time.Minute, nil)
	require.NoError(t, svc.VerifyCode(context.Background(), "ana@example.com", "482910"))
	assert.True(t, deleted)
}

func TestVerifyCode_SecondUseFails(t *testing.T) {
	// Single use: once consumed the record is gone, so a replayed
	// verification with the same code is a not-found failure.
	records := map[string]*otp.Record{
		"ana@example.com": {Email: "ana@example.com", Code: "482910", ExpiresAt: time.Now().Add(5 * time.Minute)},
	}
	repo := &mocks.OTPRepositoryMock{
		GetFn: func(ctx context.Context, email string) (*otp.Record, error) {
			if r, ok := records[email]; ok {
				return r, nil
			}
			return nil, otp.ErrNotFound
		},
		DeleteFn: func(ctx context.Context, email string) error {
			delete(records, email)
			return nil
		},
	}

	svc := impl.NewOTPService(repo, &mocks.EmailServiceMock{}, nil, 10*time.Minute, nil)
	require.NoError(t, svc.VerifyCode(context.Background(), "ana@example.com", "482910"))

	err := svc.VerifyCode(context.Background(), "ana@example.com", "482910")
	assert.ErrorIs(t, err, otp.ErrNotFound)
}

func TestVerifyCode_ExpiredPurgesRecord(t *testing.T) {
	deleted := false
	repo := &mocks.OTPRepositoryMock{
		GetFn: func(ctx context.Context, email string) (*otp.Record, error) {
			return &otp.Record{Email: email, Code: "482910", ExpiresAt: time.Now().Add(-time.Minute)}, nil
		},
		DeleteFn: func(ctx context.Context, email string) error {
			deleted = true
			return nil
		},
	}

	svc := impl.NewOTPService(repo, &mocks.EmailServiceMock{}, nil, 10*time.Minute, nil)
	err := svc.VerifyCode(context.Background(), "ana@example.com", "482910")
	assert.ErrorIs(t, err, otp.ErrExpired)
	assert.True(t, deleted)
}

func TestVerifyCode_ExpiredWithFileStore(t *testing.T) {
	// End to end against the real file store: a code past its expiry is
	// reported as expired, never as not-found, and the stale record is
	// purged by that same check.
	repo := repositories.NewOTPFileRepository(filepath.Join(t.TempDir(), "otp-store.json"), nil)
	require.NoError(t, repo.Upsert(context.Background(), &otp.Record{
		Email:     "ana@example.com",
		Code:      "482910",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	svc := impl.NewOTPService(repo, &mocks.EmailServiceMock{}, nil, 10*time.Minute, nil)
	err := svc.VerifyCode(context.Background(), "ana@example.com", "482910")
	assert.ErrorIs(t, err, otp.ErrExpired)

	// Purged: the next attempt is genuinely not-found.
	err = svc.VerifyCode(context.Background(), "ana@example.com", "482910")
	assert.ErrorIs(t, err, otp.ErrNotFound)
}

func TestVerifyCode_MismatchKeepsRecord(t *testing.T) {
	repo := &mocks.OTPRepositoryMock{
		GetFn: func(ctx context.Context, email string) (*otp.Record, error) {
			return &otp.Record{Email: email, Code: "482910", ExpiresAt: time.Now().Add(5 * time.Minute)}, nil
		},
		DeleteFn: func(ctx context.Context, email string) error {
			t.Error("record must not be deleted on mismatch")
			return nil
		},
	}

	svc := impl.NewOTPService(repo, &mocks.EmailServiceMock{}, nil, 10*time.Minute, nil)
	err := svc.VerifyCode(context.Background(), "ana@example.com", "000000")
	assert.ErrorIs(t, err, otp.ErrMismatch)

	// A correct retry after a mismatch still succeeds.
	repo.DeleteFn = func(ctx context.Context, email string) error { return nil }
	require.NoError(t, svc.VerifyCode(context.Background(), "ana@example.com", "482910"))
}

func TestVerifyCode_NotFound(t *testing.T) {
	svc := impl.NewOTPService(&mocks.OTPRepositoryMock{}, &mocks.EmailServiceMock{}, nil, 10*time.Minute, nil)
	err := svc.VerifyCode(context.Background(), "nobody@example.com", "123456")
	assert.ErrorIs(t, err, otp.ErrNotFound)
}

func TestVerifyCode_MarksCustomerVerified(t *testing.T) {
	repo := &mocks.OTPRepositoryMock{
		GetFn: func(ctx context.Context, email string) (*otp.Record, error) {
			return &otp.Record{Email: email, Code: "482910", ExpiresAt: time.Now().Add(5 * time.Minute)}, nil
		},
	}
	var markedEmail string
	customers := &mocks.CustomerServiceMock{
		MarkEmailVerifiedFn: func(ctx context.Context, email string) error {
			markedEmail = email
			return nil
		},
	}

	svc := impl.NewOTPService(repo, &mocks.EmailServiceMock{}, customers, 10*time.Minute, nil)
	require.NoError(t, svc.VerifyCode(context.Background(), "ana@example.com", "482910"))
	assert.Equal(t, "ana@example.com", markedEmail)
}
