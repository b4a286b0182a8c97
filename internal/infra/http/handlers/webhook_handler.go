package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/monteeverest/backend/internal/infra/http/middleware"
	"github.com/monteeverest/backend/internal/usecase"
)

type WebhookHandler struct {
	ProcessUC *usecase.ProcessWebhookUseCase
}

func NewWebhookHandler(processUC *usecase.ProcessWebhookUseCase) *WebhookHandler {
	return &WebhookHandler{ProcessUC: processUC}
}

type webhookEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Handle responde 200 {received:true} para qualquer desfecho de
// processamento: o provedor entrega at-least-once e um status de erro aqui só
// geraria tempestade de retries. Erros internos vão para o log.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var envelope webhookEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "JSON inválido"})
		return
	}

	middleware.RecordWebhookEvent(envelope.Event)

	if err := h.ProcessUC.Execute(r.Context(), envelope.Event, envelope.Data); err != nil {
		log.Printf("❌ Erro ao processar webhook %s: %v", envelope.Event, err)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
