package middleware

import (
	"encoding/json"
	"net/http"
)

const SessionCookieName = "auth_session"

// RequireSession protege as rotas administrativas: sem o cookie de sessão a
// resposta é 401. É um portão binário, não há papéis nem escopos.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Não autorizado"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
