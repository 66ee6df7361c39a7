package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/stridewear/storefront-api/internal/core/domain/otp"
	"github.com/stridewear/storefront-api/internal/core/ports"
)

// OTPFileRepository persists pending one-time codes as a single JSON file.
// Every operation is a whole-collection read-modify-write; a single mutex
// serializes them so concurrent requests for different emails cannot lose
// each other's updates. Expired records are kept until explicitly deleted:
// the verify path must be able to see an expired record and answer with
// the expired outcome rather than not-found.
type OTPFileRepository struct {
	path   string
	logger *logrus.Logger
	mu     sync.Mutex
}

func NewOTPFileRepository(path string, logger *logrus.Logger) *OTPFileRepository {
	return &OTPFileRepository{path: path, logger: logger}
}

var _ ports.OTPRepository = (*OTPFileRepository)(nil)

func (r *OTPFileRepository) Get(ctx context.Context, email string) (*otp.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.load()
	for i := range records {
		if records[i].Email == email {
			rec := records[i]
			return &rec, nil
		}
	}
	return nil, otp.ErrNotFound
}

func (r *OTPFileRepository) Upsert(ctx context.Context, record *otp.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.load()
	replaced := false
	for i := range records {
		if records[i].Email == record.Email {
			records[i] = *record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, *record)
	}
	return r.save(records)
}

func (r *OTPFileRepository) Delete(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.load()
	kept := records[:0]
	for _, rec := range records {
		if rec.Email != email {
			kept = append(kept, rec)
		}
	}
	return r.save(kept)
}

// load reads the whole collection, treating a missing or unparseable file
// as empty (fail-open). Expired records are returned as-is; deciding what
// an expired record means belongs to the caller.
func (r *OTPFileRepository) load() []otp.Record {
	b, err := os.ReadFile(r.path)
	if err != nil {
		return nil
	}

	var records []otp.Record
	if err := json.Unmarshal(b, &records); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"path": r.path}).WithError(err).Warn("otp: corrupt store file, starting empty")
		}
		return nil
	}
	return records
}

// save overwrites the whole collection, creating the parent directory if
// it does not exist yet.
func (r *OTPFileRepository) save(records []otp.Record) error {
	if records == nil {
		records = []otp.Record{}
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create OTP store dir: %w", err)
		}
	}

	b, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode OTP store: %w", err)
	}
	if err := os.WriteFile(r.path, b, 0o600); err != nil {
		return fmt.Errorf("failed to write OTP store: %w", err)
	}
	return nil
}
