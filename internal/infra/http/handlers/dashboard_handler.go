package handlers

import (
	"log"
	"net/http"

	"github.com/cezarfreitas/completa-hub/internal/usecase"
)

type DashboardHandler struct {
	Stats *usecase.DashboardUseCase
}

func NewDashboardHandler(stats *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{Stats: stats}
}

// Handle atende GET /api/dashboard/stats.
func (h *DashboardHandler) Handle(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.Execute(r.Context())
	if err != nil {
		log.Printf("Dashboard stats error: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro ao carregar estatísticas")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
