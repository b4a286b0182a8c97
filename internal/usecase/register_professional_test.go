package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/monteeverest/backend/internal/entity"
	"github.com/monteeverest/backend/internal/infra/integration/pagarme"
	"github.com/monteeverest/backend/internal/usecase"
)

func newRegisterUC(profRepo *MockProfessionalRepository, planRepo *MockPlanRepository, gateway *MockPaymentGateway) *usecase.RegisterProfessionalUseCase {
	checkout := usecase.NewCreateCheckoutUseCase(profRepo, planRepo, gateway, "https://monteeverest.com.br/pagamento/sucesso")
	return usecase.NewRegisterProfessionalUseCase(profRepo, planRepo, checkout)
}

func validInput() usecase.RegisterProfessionalInput {
	return usecase.RegisterProfessionalInput{
		FullName:      "João Silva",
		Email:         "joao@example.com",
		Document:      "529.982.247-25",
		Phone:         "(11) 99999-9999",
		PlanID:        "plan-123",
		PaymentMethod: "credit_card",
	}
}

// TestRegisterCheckoutSuccess - Fluxo completo de pré-cadastro com link de checkout
func TestRegisterCheckoutSuccess(t *testing.T) {
	ctx := context.Background()

	profRepo := new(MockProfessionalRepository)
	planRepo := new(MockPlanRepository)
	gateway := new(MockPaymentGateway)

	plan := &entity.SubscriptionPlan{ID: "plan-123", Name: "Plano Ouro", MonthlyPrice: 59.90}

	planRepo.On("FindByID", ctx, "plan-123").Return(plan, nil)
	profRepo.On("ExistsByEmailOrDocument", ctx, "joao@example.com", "529.982.247-25").Return(false, false, nil)
	profRepo.On("Create", ctx, mock.MatchedBy(func(p *entity.Professional) bool {
		return p.Status == entity.StatusPendingPayment && p.PaymentStatus == entity.PaymentStatusPending
	})).Return(nil)
	gateway.On("CreateCheckoutOrder", ctx, mock.MatchedBy(func(in pagarme.CheckoutOrderInput) bool {
		return in.PriceCents == 5990 && in.PlanID == "plan-123" && in.ProfessionalID != ""
	})).Return("https://pagar.me/checkout/abc", nil)

	uc := newRegisterUC(profRepo, planRepo, gateway)

	output, err := uc.Execute(ctx, validInput())

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.Equal(t, entity.StatusPendingPayment, output.Status)
	assert.Equal(t, "https://pagar.me/checkout/abc", output.CheckoutURL)
	assert.Nil(t, output.Pix)
	assert.NotEmpty(t, output.ProfessionalID)
	assert.Equal(t, "Pré-cadastro realizado com sucesso!", output.Msg)

	profRepo.AssertCalled(t, "Create", ctx, mock.Anything)
	profRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// TestRegisterPixSuccess - Pré-cadastro PIX devolve o copia-e-cola e grava a
// cobrança pendente no profissional
func TestRegisterPixSuccess(t *testing.T) {
	ctx := context.Background()

	profRepo := new(MockProfessionalRepository)
	planRepo := new(MockPlanRepository)
	gateway := new(MockPaymentGateway)

	plan := &entity.SubscriptionPlan{ID: "plan-123", Name: "Plano Ouro", MonthlyPrice: 59.90}
	pixExpiry := time.Now().Add(30 * time.Minute)

	planRepo.On("FindByID", ctx, "plan-123").Return(plan, nil)
	profRepo.On("ExistsByEmailOrDocument", ctx, mock.Anything, mock.Anything).Return(false, false, nil)
	profRepo.On("Create", ctx, mock.Anything).Return(nil)
	gateway.On("CreatePixCharge", ctx, mock.MatchedBy(func(in pagarme.PixChargeInput) bool {
		return in.PriceCents == 5990 && in.CustomerCPF == "529.982.247-25"
	})).Return(&pagarme.PixCharge{
		TransactionID: "ch_pix_1",
		QRCode:        "00020126580014br.gov.bcb.pix",
		QRCodeURL:     "https://api.pagar.me/qr/ch_pix_1.png",
		ExpiresAt:     pixExpiry,
	}, nil)
	profRepo.On("SetPendingPix", ctx, mock.Anything, "00020126580014br.gov.bcb.pix", "https://api.pagar.me/qr/ch_pix_1.png", pixExpiry).Return(nil)

	uc := newRegisterUC(profRepo, planRepo, gateway)

	input := validInput()
	input.PaymentMethod = "pix"

	output, err := uc.Execute(ctx, input)

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.Empty(t, output.CheckoutURL)
	assert.NotNil(t, output.Pix)
	assert.Equal(t, "00020126580014br.gov.bcb.pix", output.Pix.PixCode)
	profRepo.AssertCalled(t, "SetPendingPix", ctx, mock.Anything, mock.Anything, mock.Anything, pixExpiry)
}

// TestRegisterDuplicateEmail
func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()

	profRepo := new(MockProfessionalRepository)
	planRepo := new(MockPlanRepository)
	gateway := new(MockPaymentGateway)

	plan := &entity.SubscriptionPlan{ID: "plan-123", Name: "Plano Ouro", MonthlyPrice: 59.90}
	planRepo.On("FindByID", ctx, "plan-123").Return(plan, nil)
	profRepo.On("ExistsByEmailOrDocument", ctx, mock.Anything, mock.Anything).Return(true, false, nil)

	uc := newRegisterUC(profRepo, planRepo, gateway)

	output, err := uc.Execute(ctx, validInput())

	assert.Error(t, err)
	assert.Nil(t, output)
	var de *usecase.DomainError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, usecase.CodeDuplicateEmail, de.Code)
	profRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestRegisterDuplicateDocument
func TestRegisterDuplicateDocument(t *testing.T) {
	ctx := context.Background()

	profRepo := new(MockProfessionalRepository)
	planRepo := new(MockPlanRepository)
	gateway := new(MockPaymentGateway)

	plan := &entity.SubscriptionPlan{ID: "plan-123", Name: "Plano Ouro", MonthlyPrice: 59.90}
	planRepo.On("FindByID", ctx, "plan-123").Return(plan, nil)
	profRepo.On("ExistsByEmailOrDocument", ctx, mock.Anything, mock.Anything).Return(false, true, nil)

	uc := newRegisterUC(profRepo, planRepo, gateway)

	output, err := uc.Execute(ctx, validInput())

	assert.Error(t, err)
	assert.Nil(t, output)
	var de *usecase.DomainError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, usecase.CodeDuplicateDocument, de.Code)
}

// TestRegisterGatewayFailureRollsBack - gateway recusou: o profissional
// recém-criado é apagado (compensação da saga)
func TestRegisterGatewayFailureRollsBack(t *testing.T) {
	ctx := context.Background()

	profRepo := new(MockProfessionalRepository)
	planRepo := new(MockPlanRepository)
	gateway := new(MockPaymentGateway)

	plan := &entity.SubscriptionPlan{ID: "plan-123", Name: "Plano Ouro", MonthlyPrice: 59.90}
	planRepo.On("FindByID", ctx, "plan-123").Return(plan, nil)
	profRepo.On("ExistsByEmailOrDocument", ctx, mock.Anything, mock.Anything).Return(false, false, nil)
	profRepo.On("Create", ctx, mock.Anything).Return(nil)
	gateway.On("CreateCheckoutOrder", ctx, mock.Anything).Return("", &pagarme.APIError{StatusCode: 503, Message: "service unavailable"})
	profRepo.On("Delete", ctx, mock.Anything).Return(nil)

	uc := newRegisterUC(profRepo, planRepo, gateway)

	output, err := uc.Execute(ctx, validInput())

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, usecase.IsTechnicalError(err))
	profRepo.AssertCalled(t, "Delete", ctx, mock.Anything)
}

// TestRegisterInvalidCPF - CPF com dígito verificador errado não passa
func TestRegisterInvalidCPF(t *testing.T) {
	ctx := context.Background()

	profRepo := new(MockProfessionalRepository)
	planRepo := new(MockPlanRepository)
	gateway := new(MockPaymentGateway)

	uc := newRegisterUC(profRepo, planRepo, gateway)

	input := validInput()
	input.Document = "529.982.247-26"

	output, err := uc.Execute(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, usecase.IsDomainError(err))
	planRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// TestRegisterInvalidPaymentMethod
func TestRegisterInvalidPaymentMethod(t *testing.T) {
	ctx := context.Background()

	profRepo := new(MockProfessionalRepository)
	planRepo := new(MockPlanRepository)
	gateway := new(MockPaymentGateway)

	uc := newRegisterUC(profRepo, planRepo, gateway)

	input := validInput()
	input.PaymentMethod = "boleto"

	output, err := uc.Execute(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, usecase.IsDomainError(err))
	gateway.AssertNotCalled(t, "CreateCheckoutOrder", mock.Anything, mock.Anything)
}

// TestRegisterPlanNotFound
func TestRegisterPlanNotFound(t *testing.T) {
	ctx := context.Background()

	profRepo := new(MockProfessionalRepository)
	planRepo := new(MockPlanRepository)
	gateway := new(MockPaymentGateway)

	planRepo.On("FindByID", ctx, "plan-123").Return(nil, entity.ErrPlanNotFound)

	uc := newRegisterUC(profRepo, planRepo, gateway)

	output, err := uc.Execute(ctx, validInput())

	assert.Error(t, err)
	assert.Nil(t, output)
	var de *usecase.DomainError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, usecase.CodePlanNotFound, de.Code)
}
