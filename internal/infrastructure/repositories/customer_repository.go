package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stridewear/storefront-api/internal/core/domain/customer"
	"github.com/stridewear/storefront-api/internal/core/ports"
	"github.com/stridewear/storefront-api/internal/infrastructure/db"
)

// CustomerRepository implements the customer repository interface
type CustomerRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(database *db.Database, logger *logrus.Logger) ports.CustomerRepository {
	return &CustomerRepository{
		db:     database,
		logger: logger,
	}
}

// Create creates a new customer
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (id, email, password_hash, first_name, last_name, email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.DB.ExecContext(ctx, query,
		c.ID, c.Email, c.PasswordHash, c.FirstName, c.LastName, c.EmailVerified, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"customer_id": c.ID, "email": c.Email}).WithError(err).Error("db: failed to create customer")
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"customer_id": c.ID, "email": c.Email}).Info("db: customer created")
	}

	return nil
}

// GetByID retrieves a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	var c customer.Customer
	query := `
		SELECT id, email, password_hash, first_name, last_name, email_verified, last_login_at, created_at, updated_at
		FROM customers
		WHERE id = $1`

	err := r.db.DB.GetContext(ctx, &c, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("customer with ID %s not found", id)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"customer_id": id}).WithError(err).Error("db: failed to get customer by ID")
		}
		return nil, fmt.Errorf("failed to get customer by ID: %w", err)
	}

	return &c, nil
}

// GetByEmail retrieves a customer by email
func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	var c customer.Customer
	query := `
		SELECT id, email, password_hash, first_name, last_name, email_verified, last_login_at, created_at, updated_at
		FROM customers
		WHERE email = $1`

	err := r.db.DB.GetContext(ctx, &c, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("customer with email %s not found", email)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"email": email}).WithError(err).Error("db: failed to get customer by email")
		}
		return nil, fmt.Errorf("failed to get customer by email: %w", err)
	}

	return &c, nil
}

// Update updates an existing customer
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers
		SET email = $2, password_hash = $3, first_name = $4, last_name = $5,
			email_verified = $6, last_login_at = $7, updated_at = $8
		WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query,
		c.ID, c.Email, c.PasswordHash, c.FirstName, c.LastName,
		c.EmailVerified, c.LastLoginAt, c.UpdatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"customer_id": c.ID}).WithError(err).Error("db: failed to update customer")
		}
		return fmt.Errorf("failed to update customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("customer with ID %s not found", c.ID)
	}

	return nil
}
