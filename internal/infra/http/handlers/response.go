package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/monteeverest/backend/internal/infra/http/middleware"
	"github.com/monteeverest/backend/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("⚠️ Falha ao serializar resposta: %v", err)
		}
	}
}

// writeError mapeia a taxonomia de erros do usecase para status HTTP. O campo
// code vai junto para o front renderizar mensagem direcionada (ex: CPF
// duplicado destaca o campo certo do formulário).
func writeError(w http.ResponseWriter, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeJSON(w, statusForCode(de.Code), map[string]string{"error": de.Message, "code": de.Code})
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		log.Printf("❌ Erro técnico [%s]: %s", te.Code, te.Message)
		switch te.Code {
		case usecase.CodeGatewayUnavailable, usecase.CodeGatewayAuth, usecase.CodeGatewayError:
			middleware.RecordIntegrationError("pagarme")
		}
		writeJSON(w, statusForCode(te.Code), map[string]string{"error": te.Message, "code": te.Code})
		return
	}

	log.Printf("❌ Erro não mapeado: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "erro interno"})
}

func statusForCode(code string) int {
	switch code {
	case usecase.CodeValidation,
		usecase.CodeDuplicateEmail,
		usecase.CodeDuplicateDocument,
		usecase.CodeInvalidDocument,
		usecase.CodePlanNotFound:
		return http.StatusBadRequest
	case usecase.CodeProfessionalNotFound:
		return http.StatusNotFound
	case usecase.CodeGatewayUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
