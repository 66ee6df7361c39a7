package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stridewear/storefront-api/internal/core/domain/customer"
	"github.com/stridewear/storefront-api/internal/core/domain/guest"
	"github.com/stridewear/storefront-api/internal/core/domain/order"
	"github.com/stridewear/storefront-api/internal/core/domain/otp"
	"github.com/stridewear/storefront-api/internal/core/domain/product"
)

// OTPRepositoryMock is a lightweight mock for OTPRepository
type OTPRepositoryMock struct {
	GetFn    func(ctx context.Context, email string) (*otp.Record, error)
	UpsertFn func(ctx context.Context, record *otp.Record) error
	DeleteFn func(ctx context.Context, email string) error
}

func (m *OTPRepositoryMock) Get(ctx context.Context, email string) (*otp.Record, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, email)
	}
	return nil, otp.ErrNotFound
}
func (m *OTPRepositoryMock) Upsert(ctx context.Context, record *otp.Record) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, record)
	}
	return nil
}
func (m *OTPRepositoryMock) Delete(ctx context.Context, email string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, email)
	}
	return nil
}

// MergeRepository mock
type MergeRepositoryMock struct {
	UpsertCartItemFn func(ctx context.Context, userID uuid.UUID, item guest.CartItem) (bool, error)
	UpsertOrderFn    func(ctx context.Context, o *order.Order) (bool, error)
}

func (m *MergeRepositoryMock) UpsertCartItem(ctx context.Context, userID uuid.UUID, item guest.CartItem) (bool, error) {
	if m.UpsertCartItemFn != nil {
		return m.UpsertCartItemFn(ctx, userID, item)
	}
	return true, nil
}
func (m *MergeRepositoryMock) UpsertOrder(ctx context.Context, o *order.Order) (bool, error) {
	if m.UpsertOrderFn != nil {
		return m.UpsertOrderFn(ctx, o)
	}
	return true, nil
}

// CustomerRepository mock
type CustomerRepositoryMock struct {
	CreateFn     func(ctx context.Context, c *customer.Customer) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
	GetByEmailFn func(ctx context.Context, email string) (*customer.Customer, error)
	UpdateFn     func(ctx context.Context, c *customer.Customer) error
}

func (m *CustomerRepositoryMock) Create(ctx context.Context, c *customer.Customer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}
func (m *CustomerRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("not found")
}
func (m *CustomerRepositoryMock) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, fmt.Errorf("not found")
}
func (m *CustomerRepositoryMock) Update(ctx context.Context, c *customer.Customer) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, c)
	}
	return nil
}

// EmailService mock
type EmailServiceMock struct {
	SendOTPEmailFn func(ctx context.Context, toEmail, code string, ttl time.Duration) error
}

func (m *EmailServiceMock) SendOTPEmail(ctx context.Context, toEmail, code string, ttl time.Duration) error {
	if m.SendOTPEmailFn != nil {
		return m.SendOTPEmailFn(ctx, toEmail, code, ttl)
	}
	return nil
}

// CustomerService mock
type CustomerServiceMock struct {
	RegisterFn          func(ctx context.Context, req *customer.RegisterRequest) (*customer.Customer, error)
	GetCustomerFn       func(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
	MarkEmailVerifiedFn func(ctx context.Context, email string) error
}

func (m *CustomerServiceMock) Register(ctx context.Context, req *customer.RegisterRequest) (*customer.Customer, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, req)
	}
	return nil, nil
}
func (m *CustomerServiceMock) GetCustomer(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	if m.GetCustomerFn != nil {
		return m.GetCustomerFn(ctx, id)
	}
	return nil, fmt.Errorf("not found")
}
func (m *CustomerServiceMock) MarkEmailVerified(ctx context.Context, email string) error {
	if m.MarkEmailVerifiedFn != nil {
		return m.MarkEmailVerifiedFn(ctx, email)
	}
	return nil
}

// OTPService mock
type OTPServiceMock struct {
	RequestCodeFn func(ctx context.Context, email string) error
	VerifyCodeFn  func(ctx context.Context, email, code string) error
}

func (m *OTPServiceMock) RequestCode(ctx context.Context, email string) error {
	if m.RequestCodeFn != nil {
		return m.RequestCodeFn(ctx, email)
	}
	return nil
}
func (m *OTPServiceMock) VerifyCode(ctx context.Context, email, code string) error {
	if m.VerifyCodeFn != nil {
		return m.VerifyCodeFn(ctx, email, code)
	}
	return nil
}

// SyncService mock
type SyncServiceMock struct {
	SyncGuestDataFn func(ctx context.Context, userID uuid.UUID, cart []guest.CartItem, orders []guest.Order) (*guest.SyncResult, error)
}

func (m *SyncServiceMock) SyncGuestData(ctx context.Context, userID uuid.UUID, cart []guest.CartItem, orders []guest.Order) (*guest.SyncResult, error) {
	if m.SyncGuestDataFn != nil {
		return m.SyncGuestDataFn(ctx, userID, cart, orders)
	}
	return &guest.SyncResult{}, nil
}

// AuthService mock
type AuthServiceMock struct {
	LoginFn         func(ctx context.Context, req *customer.LoginRequest) (*customer.AuthTokens, error)
	ValidateTokenFn func(tokenString string) (*customer.Claims, error)
}

func (m *AuthServiceMock) Login(ctx context.Context, req *customer.LoginRequest) (*customer.AuthTokens, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, req)
	}
	return nil, fmt.Errorf("invalid credentials")
}
func (m *AuthServiceMock) ValidateToken(tokenString string) (*customer.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(tokenString)
	}
	return nil, fmt.Errorf("invalid credentials")
}

// OrderService mock
type OrderServiceMock struct {
	CheckoutFn   func(ctx context.Context, userID uuid.UUID, req *order.CreateOrderRequest) (*order.Order, error)
	ListOrdersFn func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error)
	GetOrderFn   func(ctx context.Context, userID uuid.UUID, orderNumber string) (*order.Order, error)
}

func (m *OrderServiceMock) Checkout(ctx context.Context, userID uuid.UUID, req *order.CreateOrderRequest) (*order.Order, error) {
	if m.CheckoutFn != nil {
		return m.CheckoutFn(ctx, userID, req)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *OrderServiceMock) ListOrders(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error) {
	if m.ListOrdersFn != nil {
		return m.ListOrdersFn(ctx, userID, limit, offset)
	}
	return nil, nil
}
func (m *OrderServiceMock) GetOrder(ctx context.Context, userID uuid.UUID, orderNumber string) (*order.Order, error) {
	if m.GetOrderFn != nil {
		return m.GetOrderFn(ctx, userID, orderNumber)
	}
	return nil, fmt.Errorf("not found")
}

// OrderRepository mock
type OrderRepositoryMock struct {
	CreateFn      func(ctx context.Context, o *order.Order) error
	ListByUserFn  func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error)
	GetByNumberFn func(ctx context.Context, userID uuid.UUID, orderNumber string) (*order.Order, error)
}

func (m *OrderRepositoryMock) Create(ctx context.Context, o *order.Order) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}
func (m *OrderRepositoryMock) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, limit, offset)
	}
	return nil, nil
}
func (m *OrderRepositoryMock) GetByNumber(ctx context.Context, userID uuid.UUID, orderNumber string) (*order.Order, error) {
	if m.GetByNumberFn != nil {
		return m.GetByNumberFn(ctx, userID, orderNumber)
	}
	return nil, fmt.Errorf("not found")
}

// PaymentGateway mock
type PaymentGatewayMock struct {
	CreatePaymentOrderFn func(ctx context.Context, orderNumber string, amount float64, currency string) (string, error)
}

func (m *PaymentGatewayMock) CreatePaymentOrder(ctx context.Context, orderNumber string, amount float64, currency string) (string, error) {
	if m.CreatePaymentOrderFn != nil {
		return m.CreatePaymentOrderFn(ctx, orderNumber, amount, currency)
	}
	return "pay_mock_ref", nil
}

// ShippingProvider mock
type ShippingProviderMock struct {
	CreateShipmentFn func(ctx context.Context, orderNumber string, addr order.Address) (string, error)
}

func (m *ShippingProviderMock) CreateShipment(ctx context.Context, orderNumber string, addr order.Address) (string, error) {
	if m.CreateShipmentFn != nil {
		return m.CreateShipmentFn(ctx, orderNumber, addr)
	}
	return "trk_mock_ref", nil
}

// ProductRepository mock
type ProductRepositoryMock struct {
	GetByIDFn func(ctx context.Context, id string) (*product.Product, error)
	ListFn    func(ctx context.Context, limit, offset int) ([]*product.Product, error)
}

func (m *ProductRepositoryMock) GetByID(ctx context.Context, id string) (*product.Product, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("not found")
}
func (m *ProductRepositoryMock) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	return nil, nil
}
