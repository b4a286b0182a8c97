package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/monteeverest/backend/internal/entity"
	"github.com/monteeverest/backend/internal/infra/integration/pagarme"
	"github.com/monteeverest/backend/internal/usecase"
)

type PlanHandler struct {
	PlanRepo entity.PlanRepositoryInterface
	Gateway  usecase.PaymentGateway
}

func NewPlanHandler(planRepo entity.PlanRepositoryInterface, gateway usecase.PaymentGateway) *PlanHandler {
	return &PlanHandler{PlanRepo: planRepo, Gateway: gateway}
}

func (h *PlanHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	plans, err := h.PlanRepo.FindAll(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao listar planos"})
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

// HandleSyncPagarme empurra o plano local para o gateway e grava o id externo
// retornado. Rodar de novo recria o plano no gateway e atualiza o vínculo.
func (h *PlanHandler) HandleSyncPagarme(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "id")

	plan, err := h.PlanRepo.FindByID(r.Context(), planID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plano não encontrado"})
		return
	}

	productID, err := h.Gateway.CreatePlan(r.Context(), pagarme.CreatePlanInput{
		Name:       plan.Name,
		PriceCents: plan.PriceCents(),
		Interval:   "month",
	})
	if err != nil {
		writeError(w, usecase.MapGatewayError(err))
		return
	}

	if err := h.PlanRepo.SetPagarmeProductID(r.Context(), plan.ID, productID); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "plano criado no gateway, mas falhou ao gravar o vínculo"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"plan_id":            plan.ID,
		"pagarme_product_id": productID,
	})
}
