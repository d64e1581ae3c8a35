package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cezarfreitas/completa-hub/internal/infra/http/middleware"
)

type AuthHandler struct {
	AdminUser     string
	AdminPassword string
	SecureCookie  bool
}

func NewAuthHandler(adminUser, adminPassword string, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		AdminUser:     adminUser,
		AdminPassword: adminPassword,
		SecureCookie:  secureCookie,
	}
}

// HandleLogin atende POST /api/auth/login. Credencial única de operador;
// sucesso grava o cookie de sessão por 7 dias.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if h.AdminPassword == "" {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"ok":    false,
			"error": "ADMIN_PASSWORD não configurado",
		})
		return
	}

	var input struct {
		User     string `json:"user"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"ok":    false,
			"error": "Erro ao processar",
		})
		return
	}

	if input.User != h.AdminUser || input.Password != h.AdminPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"ok":    false,
			"error": "Usuário ou senha inválidos",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "ok",
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 7, // 7 dias
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// HandleLogout atende POST /api/auth/logout.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
