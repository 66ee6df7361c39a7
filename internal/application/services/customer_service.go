package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/stridewear/storefront-api/internal/core/domain/customer"
	"github.com/stridewear/storefront-api/internal/core/ports"
)

type CustomerService struct {
	repo   ports.CustomerRepository
	logger *logrus.Logger
}

func NewCustomerService(repo ports.CustomerRepository, logger *logrus.Logger) ports.CustomerService {
	return &CustomerService{
		repo:   repo,
		logger: logger,
	}
}

func (s *CustomerService) Register(ctx context.Context, req *customer.RegisterRequest) (*customer.Customer, error) {
	// Validate email uniqueness
	if existing, err := s.repo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("email '%s' is already taken", req.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	c := &customer.Customer{
		ID:            uuid.New(),
		Email:         req.Email,
		PasswordHash:  string(hashedPassword),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		EmailVerified: false,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"customer_id": c.ID, "email": c.Email}).Info("customer registered")
	}
	return c, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CustomerService) MarkEmailVerified(ctx context.Context, email string) error {
	c, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("customer not found: %w", err)
	}

	if c.EmailVerified {
		return nil
	}

	c.EmailVerified = true
	c.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, c); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	return nil
}
