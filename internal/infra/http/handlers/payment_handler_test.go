package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/monteeverest/backend/internal/entity"
	"github.com/monteeverest/backend/internal/infra/http/handlers"
	"github.com/monteeverest/backend/internal/infra/http/middleware"
	"github.com/monteeverest/backend/internal/infra/integration/pagarme"
	"github.com/monteeverest/backend/internal/usecase"
)

// mockProfessionalRepo
type mockProfessionalRepo struct {
	mock.Mock
}

func (m *mockProfessionalRepo) Create(ctx context.Context, p *entity.Professional) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProfessionalRepo) FindByID(ctx context.Context, id string) (*entity.Professional, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Professional), args.Error(1)
}

func (m *mockProfessionalRepo) FindByEmail(ctx context.Context, email string) (*entity.Professional, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Professional), args.Error(1)
}

func (m *mockProfessionalRepo) ExistsByEmailOrDocument(ctx context.Context, email, document string) (bool, bool, error) {
	args := m.Called(ctx, email, document)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *mockProfessionalRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProfessionalRepo) Activate(ctx context.Context, id string, paidAt, expiresAt time.Time) error {
	return m.Called(ctx, id, paidAt, expiresAt).Error(0)
}

func (m *mockProfessionalRepo) SetPendingPix(ctx context.Context, id, pixCode, pixURL string, expiry time.Time) error {
	return m.Called(ctx, id, pixCode, pixURL, expiry).Error(0)
}

func (m *mockProfessionalRepo) SetPasswordHash(ctx context.Context, id, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *mockProfessionalRepo) DeactivateExpired(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (m *mockProfessionalRepo) FindNearExpiry(ctx context.Context, daysAhead int) ([]*entity.Professional, error) {
	args := m.Called(ctx, daysAhead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Professional), args.Error(1)
}

func (m *mockProfessionalRepo) DeleteStalePendingRegistrations(ctx context.Context, olderThan time.Time) (int, error) {
	args := m.Called(ctx, olderThan)
	return args.Int(0), args.Error(1)
}

// mockPlanRepo
type mockPlanRepo struct {
	mock.Mock
}

func (m *mockPlanRepo) FindByID(ctx context.Context, id string) (*entity.SubscriptionPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SubscriptionPlan), args.Error(1)
}

func (m *mockPlanRepo) FindAll(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.SubscriptionPlan), args.Error(1)
}

func (m *mockPlanRepo) SetPagarmeProductID(ctx context.Context, planID, productID string) error {
	return m.Called(ctx, planID, productID).Error(0)
}

// mockGateway
type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreatePlan(ctx context.Context, input pagarme.CreatePlanInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) CreateCheckoutOrder(ctx context.Context, input pagarme.CheckoutOrderInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) CreatePixCharge(ctx context.Context, input pagarme.PixChargeInput) (*pagarme.PixCharge, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagarme.PixCharge), args.Error(1)
}

func authedRequest(method, target, body, userID, role string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.ContextUserID, userID)
	ctx = context.WithValue(ctx, middleware.ContextRole, role)
	return req.WithContext(ctx)
}

// TestCreateCheckoutDeOutroProfissionalProibido - um profissional não gera
// cobrança para o cadastro de outro
func TestCreateCheckoutDeOutroProfissionalProibido(t *testing.T) {
	handler := handlers.NewPaymentHandler(nil, nil, nil)

	body := `{"professional_id": "prof-outro", "plan_id": "plan-1"}`
	req := authedRequest(http.MethodPost, "/api/payments/create-checkout", body, "prof-123", "professional")
	rec := httptest.NewRecorder()

	handler.HandleCreateCheckout(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// TestCreateCheckoutDoProprioCadastro
func TestCreateCheckoutDoProprioCadastro(t *testing.T) {
	profRepo := new(mockProfessionalRepo)
	planRepo := new(mockPlanRepo)
	gateway := new(mockGateway)

	professional := &entity.Professional{ID: "prof-123", FullName: "Maria", Email: "maria@example.com", Document: "52998224725"}
	plan := &entity.SubscriptionPlan{ID: "plan-1", Name: "Plano Ouro", MonthlyPrice: 59.90}

	profRepo.On("FindByID", mock.Anything, "prof-123").Return(professional, nil)
	planRepo.On("FindByID", mock.Anything, "plan-1").Return(plan, nil)
	gateway.On("CreateCheckoutOrder", mock.Anything, mock.Anything).Return("https://pagar.me/checkout/abc", nil)

	checkoutUC := usecase.NewCreateCheckoutUseCase(profRepo, planRepo, gateway, "https://monteeverest.com.br/sucesso")
	handler := handlers.NewPaymentHandler(nil, checkoutUC, profRepo)

	body := `{"professional_id": "prof-123", "plan_id": "plan-1"}`
	req := authedRequest(http.MethodPost, "/api/payments/create-checkout", body, "prof-123", "professional")
	rec := httptest.NewRecorder()

	handler.HandleCreateCheckout(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://pagar.me/checkout/abc")
}

// TestAdminCriaCheckoutParaQualquerCadastro
func TestAdminCriaCheckoutParaQualquerCadastro(t *testing.T) {
	profRepo := new(mockProfessionalRepo)
	planRepo := new(mockPlanRepo)
	gateway := new(mockGateway)

	professional := &entity.Professional{ID: "prof-outro", FullName: "Ana", Email: "ana@example.com", Document: "52998224725"}
	plan := &entity.SubscriptionPlan{ID: "plan-1", Name: "Plano Ouro", MonthlyPrice: 59.90}

	profRepo.On("FindByID", mock.Anything, "prof-outro").Return(professional, nil)
	planRepo.On("FindByID", mock.Anything, "plan-1").Return(plan, nil)
	gateway.On("CreateCheckoutOrder", mock.Anything, mock.Anything).Return("https://pagar.me/checkout/xyz", nil)

	checkoutUC := usecase.NewCreateCheckoutUseCase(profRepo, planRepo, gateway, "https://monteeverest.com.br/sucesso")
	handler := handlers.NewPaymentHandler(nil, checkoutUC, profRepo)

	body := `{"professional_id": "prof-outro", "plan_id": "plan-1"}`
	req := authedRequest(http.MethodPost, "/api/payments/create-checkout", body, "admin", "admin")
	rec := httptest.NewRecorder()

	handler.HandleCreateCheckout(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

// TestGetStatusPolling - página de "aguardando pagamento" consulta o status
// sem autenticação
func TestGetStatusPolling(t *testing.T) {
	profRepo := new(mockProfessionalRepo)
	professional := &entity.Professional{
		ID:            "prof-123",
		FullName:      "Maria Souza",
		Email:         "maria@example.com",
		Status:        entity.StatusActive,
		PaymentStatus: entity.PaymentStatusActive,
	}
	profRepo.On("FindByID", mock.Anything, "prof-123").Return(professional, nil)

	handler := handlers.NewPaymentHandler(nil, nil, profRepo)

	r := chi.NewRouter()
	r.Get("/api/payments/status/{professionalId}", handler.HandleGetStatus)

	req := httptest.NewRequest(http.MethodGet, "/api/payments/status/prof-123", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"active"`)
	assert.Contains(t, rec.Body.String(), `"paymentStatus":"active"`)
}

// TestGetStatusInexistente
func TestGetStatusInexistente(t *testing.T) {
	profRepo := new(mockProfessionalRepo)
	profRepo.On("FindByID", mock.Anything, "prof-sumiu").Return(nil, entity.ErrProfessionalNotFound)

	handler := handlers.NewPaymentHandler(nil, nil, profRepo)

	r := chi.NewRouter()
	r.Get("/api/payments/status/{professionalId}", handler.HandleGetStatus)

	req := httptest.NewRequest(http.MethodGet, "/api/payments/status/prof-sumiu", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestRegisterWithCheckoutJSONInvalido
func TestRegisterWithCheckoutJSONInvalido(t *testing.T) {
	handler := handlers.NewPaymentHandler(nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/register-with-checkout", strings.NewReader("{quebrado"))
	rec := httptest.NewRecorder()

	handler.HandleRegisterWithCheckout(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
