package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/cezarfreitas/completa-hub/internal/entity"
	"github.com/cezarfreitas/completa-hub/internal/usecase"
)

type LogsHandler struct {
	Logs usecase.VerificationLogRepositoryInterface
}

func NewLogsHandler(logs usecase.VerificationLogRepositoryInterface) *LogsHandler {
	return &LogsHandler{Logs: logs}
}

// Handle atende GET /api/logs?slug=&limit= (padrão 50, teto 500).
func (h *LogsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}

	logs, err := h.Logs.List(r.Context(), slug, limit)
	if err != nil {
		log.Printf("Erro ao listar logs: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro ao listar logs")
		return
	}

	if logs == nil {
		logs = []*entity.VerificationLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}
