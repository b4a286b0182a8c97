package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/monteeverest/backend/internal/entity"
)

// ConfigHandler expõe o key/value de configuração para o admin. É por aqui
// que a chave do Pagar.me é trocada; o client do gateway relê a cada chamada,
// então a mudança vale sem reiniciar.
type ConfigHandler struct {
	ConfigRepo entity.SystemConfigRepositoryInterface
}

func NewConfigHandler(configRepo entity.SystemConfigRepositoryInterface) *ConfigHandler {
	return &ConfigHandler{ConfigRepo: configRepo}
}

type setConfigRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (h *ConfigHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	var req setConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "JSON inválido"})
		return
	}
	if strings.TrimSpace(req.Key) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "key é obrigatória"})
		return
	}

	if err := h.ConfigRepo.Set(r.Context(), req.Key, req.Value); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao gravar configuração"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": req.Key})
}

func (h *ConfigHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "key é obrigatória"})
		return
	}

	value, err := h.ConfigRepo.Get(r.Context(), key)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao ler configuração"})
		return
	}

	// Segredos não voltam inteiros para a UI.
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": maskSecret(key, value)})
}

func maskSecret(key, value string) string {
	if !strings.Contains(key, "KEY") && !strings.Contains(key, "SECRET") {
		return value
	}
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}
