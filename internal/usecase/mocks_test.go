package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/monteeverest/backend/internal/entity"
	"github.com/monteeverest/backend/internal/infra/integration/pagarme"
	"github.com/monteeverest/backend/internal/infra/queue"
)

// MockProfessionalRepository
type MockProfessionalRepository struct {
	mock.Mock
}

func (m *MockProfessionalRepository) Create(ctx context.Context, p *entity.Professional) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfessionalRepository) FindByID(ctx context.Context, id string) (*entity.Professional, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Professional), args.Error(1)
}

func (m *MockProfessionalRepository) FindByEmail(ctx context.Context, email string) (*entity.Professional, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Professional), args.Error(1)
}

func (m *MockProfessionalRepository) ExistsByEmailOrDocument(ctx context.Context, email, document string) (bool, bool, error) {
	args := m.Called(ctx, email, document)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *MockProfessionalRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProfessionalRepository) Activate(ctx context.Context, id string, paidAt, expiresAt time.Time) error {
	args := m.Called(ctx, id, paidAt, expiresAt)
	return args.Error(0)
}

func (m *MockProfessionalRepository) SetPendingPix(ctx context.Context, id, pixCode, pixURL string, expiry time.Time) error {
	args := m.Called(ctx, id, pixCode, pixURL, expiry)
	return args.Error(0)
}

func (m *MockProfessionalRepository) SetPasswordHash(ctx context.Context, id, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *MockProfessionalRepository) DeactivateExpired(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (m *MockProfessionalRepository) FindNearExpiry(ctx context.Context, daysAhead int) ([]*entity.Professional, error) {
	args := m.Called(ctx, daysAhead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Professional), args.Error(1)
}

func (m *MockProfessionalRepository) DeleteStalePendingRegistrations(ctx context.Context, olderThan time.Time) (int, error) {
	args := m.Called(ctx, olderThan)
	return args.Int(0), args.Error(1)
}

// MockPaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *MockPaymentRepository) MarkPaidByPagarmeSubscriptionID(ctx context.Context, subscriptionID string, paidAt time.Time) (*entity.Payment, error) {
	args := m.Called(ctx, subscriptionID, paidAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatusByPagarmeSubscriptionID(ctx context.Context, subscriptionID, status string) error {
	args := m.Called(ctx, subscriptionID, status)
	return args.Error(0)
}

func (m *MockPaymentRepository) CountByProfessionalID(ctx context.Context, professionalID string) (int, error) {
	args := m.Called(ctx, professionalID)
	return args.Int(0), args.Error(1)
}

// MockPlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id string) (*entity.SubscriptionPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SubscriptionPlan), args.Error(1)
}

func (m *MockPlanRepository) FindAll(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.SubscriptionPlan), args.Error(1)
}

func (m *MockPlanRepository) SetPagarmeProductID(ctx context.Context, planID, productID string) error {
	args := m.Called(ctx, planID, productID)
	return args.Error(0)
}

// MockPaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePlan(ctx context.Context, input pagarme.CreatePlanInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) CreateCheckoutOrder(ctx context.Context, input pagarme.CheckoutOrderInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) CreatePixCharge(ctx context.Context, input pagarme.PixChargeInput) (*pagarme.PixCharge, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagarme.PixCharge), args.Error(1)
}

// MockNotificationQueue
type MockNotificationQueue struct {
	mock.Mock
}

func (m *MockNotificationQueue) PublishCredentialsEmail(ctx context.Context, payload queue.CredentialsEmailPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendCredentialsEmail(to, professionalName, email, password, planName string) bool {
	args := m.Called(to, professionalName, email, password, planName)
	return args.Bool(0)
}

func (m *MockEmailService) SendPasswordResetEmail(to, professionalName, resetURL string) bool {
	args := m.Called(to, professionalName, resetURL)
	return args.Bool(0)
}
