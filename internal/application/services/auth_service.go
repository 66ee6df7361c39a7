package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	config "github.com/stridewear/storefront-api/configs"
	"github.com/stridewear/storefront-api/internal/core/domain/customer"
	"github.com/stridewear/storefront-api/internal/core/ports"
)

type AuthService struct {
	customerRepo ports.CustomerRepository
	jwtConfig    *config.JWTConfig
	logger       *logrus.Logger
}

func NewAuthService(customerRepo ports.CustomerRepository, jwtConfig *config.JWTConfig, logger *logrus.Logger) ports.AuthService {
	return &AuthService{
		customerRepo: customerRepo,
		jwtConfig:    jwtConfig,
		logger:       logger,
	}
}

func (s *AuthService) Login(ctx context.Context, req *customer.LoginRequest) (*customer.AuthTokens, error) {
	found, err := s.customerRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("customer not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	tokens, err := s.generateTokens(found)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	found.LastLoginAt = &now
	if err := s.customerRepo.Update(ctx, found); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"customer_id": found.ID}).WithError(err).Warn("failed to update customer last login time")
		}
	}

	return tokens, nil
}

func (s *AuthService) generateTokens(c *customer.Customer) (*customer.AuthTokens, error) {
	now := time.Now()

	claims := &customer.Claims{
		UserID: c.ID,
		Email:  c.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessTokenString, err := accessToken.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &customer.AuthTokens{
		AccessToken: accessTokenString,
		ExpiresIn:   int64(s.jwtConfig.AccessTokenTTL.Seconds()),
	}, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*customer.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &customer.Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC (prevent alg confusion)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*customer.Claims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
