package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/monteeverest/backend/internal/auth"
	"github.com/monteeverest/backend/internal/entity"
)

type AuthHandler struct {
	ProfessionalRepo entity.ProfessionalRepositoryInterface
	JWTSecret        string
	AdminEmail       string
	AdminPassword    string
	TokenTTL         time.Duration
}

func NewAuthHandler(professionalRepo entity.ProfessionalRepositoryInterface, jwtSecret, adminEmail, adminPassword string) *AuthHandler {
	return &AuthHandler{
		ProfessionalRepo: professionalRepo,
		JWTSecret:        jwtSecret,
		AdminEmail:       adminEmail,
		AdminPassword:    adminPassword,
		TokenTTL:         24 * time.Hour,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// HandleLogin autentica admin (credenciais de ambiente) ou profissional
// (senha enviada no email de credenciais) e emite o JWT.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "JSON inválido"})
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email e senha são obrigatórios"})
		return
	}

	if h.AdminEmail != "" && req.Email == h.AdminEmail {
		if req.Password != h.AdminPassword {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "credenciais inválidas"})
			return
		}
		h.issueToken(w, "admin", req.Email, auth.RoleAdmin)
		return
	}

	professional, err := h.ProfessionalRepo.FindByEmail(r.Context(), req.Email)
	if err != nil || professional.PasswordHash == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "credenciais inválidas"})
		return
	}
	if !auth.CheckPasswordHash(req.Password, professional.PasswordHash) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "credenciais inválidas"})
		return
	}

	h.issueToken(w, professional.ID, professional.Email, auth.RoleProfessional)
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, subject, email, role string) {
	token, err := auth.GenerateToken(h.JWTSecret, subject, email, role, h.TokenTTL)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao gerar token"})
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, Role: role})
}
