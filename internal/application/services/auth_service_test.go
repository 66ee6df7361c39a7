package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	config "github.com/stridewear/storefront-api/configs"
	impl "github.com/stridewear/storefront-api/internal/application/services"
	"github.com/stridewear/storefront-api/internal/core/domain/customer"
	"github.com/stridewear/storefront-api/test/mocks"
)

func testCustomer(t *testing.T, password string) *customer.Customer {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &customer.Customer{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: string(hash),
	}
}

func TestLogin_ValidCredentials(t *testing.T) {
	c := testCustomer(t, "s3cret-password")
	var updated *customer.Customer
	repo := &mocks.CustomerRepositoryMock{
		GetByEmailFn: func(ctx context.Context, email string) (*customer.Customer, error) {
			if email == c.Email {
				return c, nil
			}
			return nil, fmt.Errorf("not found")
		},
		UpdateFn: func(ctx context.Context, cu *customer.Customer) error {
			updated = cu
			return nil
		},
	}

	svc := impl.NewAuthService(repo, &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour}, nil)

	tokens, err := svc.Login(context.Background(), &customer.LoginRequest{Email: c.Email, Password: "s3cret-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, int64(3600), tokens.ExpiresIn)

	require.NotNil(t, updated)
	require.NotNil(t, updated.LastLoginAt)

	// The issued token round-trips through validation.
	claims, err := svc.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, c.ID, claims.UserID)
	assert.Equal(t, c.Email, claims.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	c := testCustomer(t, "s3cret-password")
	repo := &mocks.CustomerRepositoryMock{
		GetByEmailFn: func(ctx context.Context, email string) (*customer.Customer, error) {
			return c, nil
		},
	}

	svc := impl.NewAuthService(repo, &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour}, nil)

	_, err := svc.Login(context.Background(), &customer.LoginRequest{Email: c.Email, Password: "wrong"})
	require.Error(t, err)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := impl.NewAuthService(&mocks.CustomerRepositoryMock{}, &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour}, nil)

	_, err := svc.Login(context.Background(), &customer.LoginRequest{Email: "nobody@example.com", Password: "x"})
	require.Error(t, err)
}

func TestValidateToken_RejectsWrongSecret(t *testing.T) {
	c := testCustomer(t, "s3cret-password")
	repo := &mocks.CustomerRepositoryMock{
		GetByEmailFn: func(ctx context.Context, email string) (*customer.Customer, error) {
			return c, nil
		},
	}

	issuer := impl.NewAuthService(repo, &config.JWTConfig{Secret: "secret-a", AccessTokenTTL: time.Hour}, nil)
	tokens, err := issuer.Login(context.Background(), &customer.LoginRequest{Email: c.Email, Password: "s3cret-password"})
	require.NoError(t, err)

	verifier := impl.NewAuthService(repo, &config.JWTConfig{Secret: "secret-b", AccessTokenTTL: time.Hour}, nil)
	_, err = verifier.ValidateToken(tokens.AccessToken)
	require.Error(t, err)
}

func TestValidateToken_RejectsExpired(t *testing.T) {
	c := testCustomer(t, "s3cret-password")
	repo := &mocks.CustomerRepositoryMock{
		GetByEmailFn: func(ctx context.Context, email string) (*customer.Customer, error) {
			return c, nil
		},
	}

	svc := impl.NewAuthService(repo, &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: -time.Minute}, nil)
	tokens, err := svc.Login(context.Background(), &customer.LoginRequest{Email: c.Email, Password: "s3cret-password"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokens.AccessToken)
	require.Error(t, err)
}
