package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/monteeverest/backend/internal/entity"
)

// RegisterProfessionalUseCase faz o pré-cadastro: valida, checa duplicidade de
// email/CPF, cria o profissional em pending_payment e delega ao checkout.
// Se o gateway recusar, a linha recém-criada é apagada (compensação).
type RegisterProfessionalUseCase struct {
	ProfessionalRepo entity.ProfessionalRepositoryInterface
	PlanRepo         entity.PlanRepositoryInterface
	Checkout         *CreateCheckoutUseCase
}

func NewRegisterProfessionalUseCase(
	professionalRepo entity.ProfessionalRepositoryInterface,
	planRepo entity.PlanRepositoryInterface,
	checkout *CreateCheckoutUseCase,
) *RegisterProfessionalUseCase {
	return &RegisterProfessionalUseCase{
		ProfessionalRepo: professionalRepo,
		PlanRepo:         planRepo,
		Checkout:         checkout,
	}
}

func (uc *RegisterProfessionalUseCase) Execute(ctx context.Context, input RegisterProfessionalInput) (*RegisterProfessionalOutput, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	plan, err := uc.PlanRepo.FindByID(ctx, input.PlanID)
	if err != nil {
		return nil, &DomainError{Code: CodePlanNotFound, Message: "plano inválido"}
	}

	emailTaken, documentTaken, err := uc.ProfessionalRepo.ExistsByEmailOrDocument(ctx, input.Email, input.Document)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "falha ao checar duplicidade: " + err.Error()}
	}
	if emailTaken {
		return nil, &DomainError{Code: CodeDuplicateEmail, Message: "email já cadastrado"}
	}
	if documentTaken {
		return nil, &DomainError{Code: CodeDuplicateDocument, Message: "CPF já cadastrado"}
	}

	professional := entity.NewProfessional(input.FullName, input.Email, input.Document, input.Phone, plan.ID)

	var checkoutURL string
	var pixInfo *PixInfo

	txn := NewTransaction()
	txn.AddOperation("create_professional", func(ctx context.Context) error {
		// O pré-check pode perder a corrida; a constraint decide.
		return uc.ProfessionalRepo.Create(ctx, professional)
	})
	txn.AddCompensation("delete_professional", func(ctx context.Context) error {
		return uc.ProfessionalRepo.Delete(ctx, professional.ID)
	})
	txn.AddOperation("create_gateway_entry", func(ctx context.Context) error {
		var err error
		if input.PaymentMethod == MethodPix {
			pixInfo, err = uc.Checkout.PixChargeFor(ctx, professional, plan, input.Document)
		} else {
			checkoutURL, err = uc.Checkout.CheckoutLinkFor(ctx, professional, plan, []string{MethodPix, MethodCreditCard})
		}
		return err
	})

	if err := txn.Execute(ctx); err != nil {
		log.Printf("❌ Cadastro de %s abortado: %v", input.Email, err)
		return nil, unwrapTransactionError(err)
	}

	return &RegisterProfessionalOutput{
		ProfessionalID: professional.ID,
		Status:         professional.Status,
		PaymentStatus:  professional.PaymentStatus,
		CheckoutURL:    checkoutURL,
		Pix:            pixInfo,
		Msg:            "Pré-cadastro realizado com sucesso!",
	}, nil
}

// unwrapTransactionError devolve o erro de domínio/técnico original em vez do
// wrapper da saga, para o handler mapear o status HTTP certo.
func unwrapTransactionError(err error) error {
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te
	}
	mapped := MapRepositoryError(err)
	if IsDomainError(mapped) {
		return mapped
	}
	return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
}
