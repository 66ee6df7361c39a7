package repositories_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridewear/storefront-api/internal/core/domain/otp"
	"github.com/stridewear/storefront-api/internal/infrastructure/repositories"
)

func newFileRepo(t *testing.T) (*repositories.OTPFileRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "otp-store.json")
	return repositories.NewOTPFileRepository(path, nil), path
}

func TestOTPFileRepository_RoundTrip(t *testing.T) {
	repo, _ := newFileRepo(t)
	ctx := context.Background()

	rec := &otp.Record{Email: "ana@example.com", Code: "482910", ExpiresAt: time.Now().Add(10 * time.Minute)}
	require.NoError(t, repo.Upsert(ctx, rec))

	got, err := repo.Get(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "482910", got.Code)

	_, err = repo.Get(ctx, "other@example.com")
	assert.ErrorIs(t, err, otp.ErrNotFound)
}

func TestOTPFileRepository_UpsertSupersedes(t *testing.T) {
	repo, _ := newFileRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &otp.Record{Email: "ana@example.com", Code: "111111", ExpiresAt: time.Now().Add(10 * time.Minute)}))
	require.NoError(t, repo.Upsert(ctx, &otp.Record{Email: "ana@example.com", Code: "222222", ExpiresAt: time.Now().Add(10 * time.Minute)}))

	got, err := repo.Get(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", got.Code)
}

func TestOTPFileRepository_DeleteIsIdempotent(t *testing.T) {
	repo, _ := newFileRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &otp.Record{Email: "ana@example.com", Code: "482910", ExpiresAt: time.Now().Add(10 * time.Minute)}))
	require.NoError(t, repo.Delete(ctx, "ana@example.com"))

	_, err := repo.Get(ctx, "ana@example.com")
	assert.ErrorIs(t, err, otp.ErrNotFound)

	// Deleting an absent record is not an error.
	require.NoError(t, repo.Delete(ctx, "ana@example.com"))
}

func TestOTPFileRepository_ExpiredRecordStillReadable(t *testing.T) {
	// An expired record must come back from Get, not vanish into
	// ErrNotFound: the caller tells the two cases apart and owns the purge.
	repo, _ := newFileRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &otp.Record{Email: "stale@example.com", Code: "111111", ExpiresAt: time.Now().Add(-time.Minute)}))
	require.NoError(t, repo.Upsert(ctx, &otp.Record{Email: "live@example.com", Code: "222222", ExpiresAt: time.Now().Add(10 * time.Minute)}))

	got, err := repo.Get(ctx, "stale@example.com")
	require.NoError(t, err)
	assert.Equal(t, "111111", got.Code)
	assert.True(t, got.IsExpired())

	got, err = repo.Get(ctx, "live@example.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", got.Code)

	// Only an explicit delete removes the expired record.
	require.NoError(t, repo.Delete(ctx, "stale@example.com"))
	_, err = repo.Get(ctx, "stale@example.com")
	assert.ErrorIs(t, err, otp.ErrNotFound)
}

func TestOTPFileRepository_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "otp-store.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0o600))

	repo := repositories.NewOTPFileRepository(path, nil)
	_, err := repo.Get(context.Background(), "ana@example.com")
	assert.ErrorIs(t, err, otp.ErrNotFound)

	// The store stays usable after corruption.
	require.NoError(t, repo.Upsert(context.Background(), &otp.Record{Email: "ana@example.com", Code: "482910", ExpiresAt: time.Now().Add(10 * time.Minute)}))
	got, err := repo.Get(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "482910", got.Code)
}

func TestOTPFileRepository_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "otp-store.json")
	repo := repositories.NewOTPFileRepository(path, nil)

	require.NoError(t, repo.Upsert(context.Background(), &otp.Record{Email: "ana@example.com", Code: "482910", ExpiresAt: time.Now().Add(10 * time.Minute)}))
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestOTPFileRepository_ConcurrentUpsertsDoNotLoseRecords(t *testing.T) {
	repo, _ := newFileRepo(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := fmt.Sprintf("user%d@example.com", i)
			assert.NoError(t, repo.Upsert(ctx, &otp.Record{
				Email:     email,
				Code:      fmt.Sprintf("%06d", i),
				ExpiresAt: time.Now().Add(10 * time.Minute),
			}))
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		got, err := repo.Get(ctx, fmt.Sprintf("user%d@example.com", i))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%06d", i), got.Code)
	}
}
