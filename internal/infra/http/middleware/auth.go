package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/monteeverest/backend/internal/auth"
)

type contextKey string

const (
	ContextUserID contextKey = "user_id"
	ContextEmail  contextKey = "user_email"
	ContextRole   contextKey = "user_role"
)

// Auth valida o bearer token e injeta id/email/role no contexto.
func Auth(jwtSecret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, http.StatusUnauthorized, "token não informado")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				writeAuthError(w, http.StatusUnauthorized, "header de autorização inválido")
				return
			}

			claims, err := auth.ParseToken(jwtSecret, parts[1])
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "token inválido ou expirado")
				return
			}

			ctx := context.WithValue(r.Context(), ContextUserID, claims.Subject)
			ctx = context.WithValue(ctx, ContextEmail, claims.Email)
			ctx = context.WithValue(ctx, ContextRole, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly exige role admin; usar depois do Auth.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(ContextRole).(string)
		if !ok || role != auth.RoleAdmin {
			writeAuthError(w, http.StatusForbidden, "acesso restrito ao admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFrom devolve o id do usuário autenticado colocado pelo Auth.
func UserIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ContextUserID).(string)
	return id
}

func RoleFrom(ctx context.Context) string {
	role, _ := ctx.Value(ContextRole).(string)
	return role
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
