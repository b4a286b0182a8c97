package usecase

import (
	"errors"

	"github.com/monteeverest/backend/internal/entity"
	"github.com/monteeverest/backend/internal/infra/integration/pagarme"
)

// Códigos de erro expostos para o front renderizar mensagens direcionadas.
const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeDuplicateEmail       = "DUPLICATE_EMAIL"
	CodeDuplicateDocument    = "DUPLICATE_DOCUMENT"
	CodePlanNotFound         = "PLAN_NOT_FOUND"
	CodeProfessionalNotFound = "PROFESSIONAL_NOT_FOUND"
	CodeInvalidDocument      = "INVALID_DOCUMENT"
	CodeGatewayUnavailable   = "GATEWAY_UNAVAILABLE"
	CodeGatewayAuth          = "GATEWAY_AUTH_ERROR"
	CodeGatewayError         = "UNKNOWN_GATEWAY_ERROR"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// MapGatewayError converte a resposta crua do Pagar.me na taxonomia do
// sistema: 502/503 é retentável pelo caller, 401 é problema de configuração
// (visível só para o admin), recusa de CPF vira erro de formulário.
func MapGatewayError(err error) error {
	var apiErr *pagarme.APIError
	if !errors.As(err, &apiErr) {
		return &TechnicalError{Code: CodeGatewayError, Message: "falha na comunicação com o gateway: " + err.Error()}
	}

	switch {
	case apiErr.Unavailable():
		return &TechnicalError{Code: CodeGatewayUnavailable, Message: "gateway de pagamento indisponível, tente novamente"}
	case apiErr.AuthFailure():
		return &TechnicalError{Code: CodeGatewayAuth, Message: "credencial do gateway inválida, verifique a configuração"}
	case apiErr.InvalidDocument():
		return &DomainError{Code: CodeInvalidDocument, Message: "CPF recusado pelo gateway de pagamento"}
	default:
		return &TechnicalError{Code: CodeGatewayError, Message: "gateway recusou a operação: " + apiErr.Message}
	}
}

// MapRepositoryError traduz as violações de unicidade do banco (o pré-check
// pode perder a corrida) para os mesmos códigos do fluxo feliz.
func MapRepositoryError(err error) error {
	switch {
	case errors.Is(err, entity.ErrEmailAlreadyExists):
		return &DomainError{Code: CodeDuplicateEmail, Message: "email já cadastrado"}
	case errors.Is(err, entity.ErrDocumentAlreadyExists):
		return &DomainError{Code: CodeDuplicateDocument, Message: "CPF já cadastrado"}
	default:
		return err
	}
}
