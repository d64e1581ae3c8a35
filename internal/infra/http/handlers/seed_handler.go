package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/cezarfreitas/completa-hub/internal/entity"
	"github.com/cezarfreitas/completa-hub/internal/usecase"
)

type SeedHandler struct {
	Repo usecase.IntegrationRepositoryInterface
}

func NewSeedHandler(repo usecase.IntegrationRepositoryInterface) *SeedHandler {
	return &SeedHandler{Repo: repo}
}

// Handle atende POST /api/seed: cria o cliente inicial se o banco estiver
// vazio. Idempotente.
func (h *SeedHandler) Handle(w http.ResponseWriter, r *http.Request) {
	count, err := h.Repo.CountActive(r.Context())
	if err != nil {
		log.Printf("Erro no seed: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro ao executar seed")
		return
	}

	if count > 0 {
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Banco já possui clientes",
			"count":   count,
		})
		return
	}

	now := time.Now()
	err = h.Repo.Create(r.Context(), &entity.Integration{
		ID:             uuid.New().String(),
		Slug:           "completa-2025",
		Name:           "Completa 2025",
		PlanID:         4928,
		CompletaAPIURL: "https://assine.completa.vc/api/v2/subscriptions",
		CompletaOrigin: "https://completa.conecte.ai/api/NYoTwiBvcZKoeunF",
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		log.Printf("Erro no seed: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro ao executar seed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Cliente inicial criado: completa-2025",
	})
}
