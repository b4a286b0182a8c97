package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/monteeverest/backend/internal/entity"
	"github.com/monteeverest/backend/internal/infra/http/middleware"
	"github.com/monteeverest/backend/internal/usecase"
)

type PaymentHandler struct {
	RegisterUC       *usecase.RegisterProfessionalUseCase
	CheckoutUC       *usecase.CreateCheckoutUseCase
	ProfessionalRepo entity.ProfessionalRepositoryInterface
}

func NewPaymentHandler(
	registerUC *usecase.RegisterProfessionalUseCase,
	checkoutUC *usecase.CreateCheckoutUseCase,
	professionalRepo entity.ProfessionalRepositoryInterface,
) *PaymentHandler {
	return &PaymentHandler{
		RegisterUC:       registerUC,
		CheckoutUC:       checkoutUC,
		ProfessionalRepo: professionalRepo,
	}
}

// HandleRegisterWithCheckout é o cadastro público: cria o profissional em
// pending_payment e já devolve o link de checkout ou os dados do PIX.
func (h *PaymentHandler) HandleRegisterWithCheckout(w http.ResponseWriter, r *http.Request) {
	var input usecase.RegisterProfessionalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "JSON inválido"})
		return
	}

	output, err := h.RegisterUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, output)
}

// HandleCreateCheckout cria um novo link de pagamento para o profissional
// autenticado (ex: reativação após suspensão).
func (h *PaymentHandler) HandleCreateCheckout(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateCheckoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "JSON inválido"})
		return
	}
	if !h.authorized(w, r, input.ProfessionalID) {
		return
	}

	output, err := h.CheckoutUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, output)
}

func (h *PaymentHandler) HandleCreatePix(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreatePixInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "JSON inválido"})
		return
	}
	if !h.authorized(w, r, input.ProfessionalID) {
		return
	}

	pix, err := h.CheckoutUC.ExecutePix(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pix)
}

// HandleGetStatus é público: a página "aguardando pagamento" faz polling aqui.
func (h *PaymentHandler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	professionalID := chi.URLParam(r, "professionalId")

	professional, err := h.ProfessionalRepo.FindByID(r.Context(), professionalID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "profissional não encontrado"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":        professional.Status,
		"paymentStatus": professional.PaymentStatus,
		"email":         professional.Email,
		"fullName":      professional.FullName,
	})
}

// authorized barra um profissional agindo sobre o cadastro de outro. Admin
// passa direto.
func (h *PaymentHandler) authorized(w http.ResponseWriter, r *http.Request, professionalID string) bool {
	if middleware.RoleFrom(r.Context()) == "admin" {
		return true
	}
	if middleware.UserIDFrom(r.Context()) != professionalID {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "operação não permitida para este cadastro"})
		return false
	}
	return true
}
