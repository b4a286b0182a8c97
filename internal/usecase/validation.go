package usecase

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var nonDigits = regexp.MustCompile(`\D`)

// IsValidCPF checa tamanho e os dois dígitos verificadores do CPF.
func IsValidCPF(cpf string) bool {
	cleaned := nonDigits.ReplaceAllString(cpf, "")
	if len(cleaned) != 11 {
		return false
	}

	allEqual := true
	for i := 1; i < len(cleaned); i++ {
		if cleaned[i] != cleaned[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	digits := make([]int, 11)
	for i, r := range cleaned {
		digits[i] = int(r - '0')
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += digits[i] * (10 - i)
	}
	check := (sum * 10) % 11
	if check == 10 {
		check = 0
	}
	if check != digits[9] {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += digits[i] * (11 - i)
	}
	check = (sum * 10) % 11
	if check == 10 {
		check = 0
	}
	return check == digits[10]
}

func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	return len(cleaned) >= 10 && len(cleaned) <= 11
}

// validateRegisterInput roda as tags do validator e as regras que tag nenhuma
// expressa (CPF, telefone brasileiro).
func validateRegisterInput(input RegisterProfessionalInput) error {
	if err := validate.Struct(input); err != nil {
		return &DomainError{Code: CodeValidation, Message: "dados inválidos: " + err.Error()}
	}
	if !IsValidCPF(input.Document) {
		return &DomainError{Code: CodeValidation, Message: "dados inválidos: document (CPF inválido)"}
	}
	if !isValidPhoneNumber(input.Phone) {
		return &DomainError{Code: CodeValidation, Message: "dados inválidos: phone (telefone inválido)"}
	}
	return nil
}
