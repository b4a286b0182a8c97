package usecase

import (
	"context"
	"time"

	"github.com/monteeverest/backend/internal/entity"
	"github.com/monteeverest/backend/internal/infra/integration/pagarme"
)

// CreateCheckoutUseCase monta o ponto de entrada de pagamento no gateway:
// link de checkout hospedado ou cobrança PIX direta. É usado tanto pelo
// cadastro público quanto pelos endpoints autenticados do profissional.
type CreateCheckoutUseCase struct {
	ProfessionalRepo entity.ProfessionalRepositoryInterface
	PlanRepo         entity.PlanRepositoryInterface
	Gateway          PaymentGateway
	SuccessURL       string
	PixExpiry        time.Duration
}

func NewCreateCheckoutUseCase(
	professionalRepo entity.ProfessionalRepositoryInterface,
	planRepo entity.PlanRepositoryInterface,
	gateway PaymentGateway,
	successURL string,
) *CreateCheckoutUseCase {
	return &CreateCheckoutUseCase{
		ProfessionalRepo: professionalRepo,
		PlanRepo:         planRepo,
		Gateway:          gateway,
		SuccessURL:       successURL,
		PixExpiry:        30 * time.Minute,
	}
}

func (uc *CreateCheckoutUseCase) Execute(ctx context.Context, input CreateCheckoutInput) (*CreateCheckoutOutput, error) {
	if err := validate.Struct(input); err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: "dados inválidos: " + err.Error()}
	}

	professional, err := uc.ProfessionalRepo.FindByID(ctx, input.ProfessionalID)
	if err != nil {
		return nil, &DomainError{Code: CodeProfessionalNotFound, Message: "profissional não encontrado"}
	}
	plan, err := uc.PlanRepo.FindByID(ctx, input.PlanID)
	if err != nil {
		return nil, &DomainError{Code: CodePlanNotFound, Message: "plano inválido"}
	}

	url, err := uc.CheckoutLinkFor(ctx, professional, plan, []string{MethodPix, MethodCreditCard})
	if err != nil {
		return nil, err
	}
	return &CreateCheckoutOutput{CheckoutURL: url}, nil
}

func (uc *CreateCheckoutUseCase) ExecutePix(ctx context.Context, input CreatePixInput) (*PixInfo, error) {
	if err := validate.Struct(input); err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: "dados inválidos: " + err.Error()}
	}

	professional, err := uc.ProfessionalRepo.FindByID(ctx, input.ProfessionalID)
	if err != nil {
		return nil, &DomainError{Code: CodeProfessionalNotFound, Message: "profissional não encontrado"}
	}
	plan, err := uc.PlanRepo.FindByID(ctx, input.PlanID)
	if err != nil {
		return nil, &DomainError{Code: CodePlanNotFound, Message: "plano inválido"}
	}

	document := input.Document
	if document == "" {
		document = professional.Document
	}
	return uc.PixChargeFor(ctx, professional, plan, document)
}

// CheckoutLinkFor cria o link hospedado. Nenhuma correlação local é gravada
// antes do redirect: o webhook reencontra o profissional pelo metadata do
// item/pedido.
func (uc *CreateCheckoutUseCase) CheckoutLinkFor(ctx context.Context, professional *entity.Professional, plan *entity.SubscriptionPlan, methods []string) (string, error) {
	url, err := uc.Gateway.CreateCheckoutOrder(ctx, pagarme.CheckoutOrderInput{
		ProfessionalID: professional.ID,
		PlanID:         plan.ID,
		PlanName:       plan.Name,
		PriceCents:     plan.PriceCents(),
		CustomerName:   professional.FullName,
		CustomerEmail:  professional.Email,
		CustomerCPF:    professional.Document,
		Methods:        methods,
		SuccessURL:     uc.SuccessURL,
	})
	if err != nil {
		return "", MapGatewayError(err)
	}
	return url, nil
}

// PixChargeFor cria a cobrança PIX e grava código/URL/expiração nos campos
// transitórios do profissional. paymentStatus continua pending até o webhook.
func (uc *CreateCheckoutUseCase) PixChargeFor(ctx context.Context, professional *entity.Professional, plan *entity.SubscriptionPlan, document string) (*PixInfo, error) {
	charge, err := uc.Gateway.CreatePixCharge(ctx, pagarme.PixChargeInput{
		ProfessionalID: professional.ID,
		PlanID:         plan.ID,
		PlanName:       plan.Name,
		PriceCents:     plan.PriceCents(),
		CustomerName:   professional.FullName,
		CustomerEmail:  professional.Email,
		CustomerCPF:    document,
		ExpiresIn:      uc.PixExpiry,
	})
	if err != nil {
		return nil, MapGatewayError(err)
	}

	if err := uc.ProfessionalRepo.SetPendingPix(ctx, professional.ID, charge.QRCode, charge.QRCodeURL, charge.ExpiresAt); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "falha ao gravar PIX pendente: " + err.Error()}
	}

	return &PixInfo{
		PixCode:   charge.QRCode,
		PixURL:    charge.QRCodeURL,
		ExpiresAt: charge.ExpiresAt,
	}, nil
}
