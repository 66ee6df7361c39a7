package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/stridewear/storefront-api/internal/core/domain/otp"
	"github.com/stridewear/storefront-api/internal/core/ports"
)

const otpKeyPrefix = "storefront:otp"

// otpExpiredRetention keeps a key alive past the record's expiry so a late
// verification attempt sees an expired record instead of nothing. Within
// this window expired and never-issued stay distinguishable; afterwards
// Redis reclaims the key.
const otpExpiredRetention = time.Hour

// OTPRedisRepository holds pending one-time codes as per-email keys. The
// key TTL is the record expiry plus a retention window; per-key writes are
// atomic, so concurrent requests for different emails never interfere.
type OTPRedisRepository struct {
	redisClient *redis.Client
	logger      *logrus.Logger
}

func NewOTPRedisRepository(redisClient *redis.Client, logger *logrus.Logger) *OTPRedisRepository {
	return &OTPRedisRepository{redisClient: redisClient, logger: logger}
}

var _ ports.OTPRepository = (*OTPRedisRepository)(nil)

func (r *OTPRedisRepository) key(email string) string {
	return fmt.Sprintf("%s:%s", otpKeyPrefix, email)
}

func (r *OTPRedisRepository) Get(ctx context.Context, email string) (*otp.Record, error) {
	b, err := r.redisClient.Get(ctx, r.key(email)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, otp.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get OTP record from redis: %w", err)
	}

	var rec otp.Record
	if err := json.Unmarshal(b, &rec); err != nil {
		// Fail open as for a corrupt file store: an unreadable record is
		// treated as absent, not as a server error.
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"email": email}).WithError(err).Warn("otp: corrupt redis record, treating as absent")
		}
		return nil, otp.ErrNotFound
	}
	return &rec, nil
}

func (r *OTPRedisRepository) Upsert(ctx context.Context, record *otp.Record) error {
	b, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal OTP record: %w", err)
	}

	ttl := time.Until(record.ExpiresAt) + otpExpiredRetention
	if ttl <= 0 {
		return fmt.Errorf("OTP record already expired")
	}

	if err := r.redisClient.Set(ctx, r.key(record.Email), b, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store OTP record in redis: %w", err)
	}
	return nil
}

func (r *OTPRedisRepository) Delete(ctx context.Context, email string) error {
	if err := r.redisClient.Del(ctx, r.key(email)).Err(); err != nil {
		return fmt.Errorf("failed to delete OTP record from redis: %w", err)
	}
	return nil
}
