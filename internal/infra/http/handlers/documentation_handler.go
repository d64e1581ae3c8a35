package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cezarfreitas/completa-hub/internal/entity"
	"github.com/cezarfreitas/completa-hub/internal/infra/http/middleware"
	"github.com/cezarfreitas/completa-hub/internal/usecase"
)

type DocumentationHandler struct {
	Integrations usecase.IntegrationRepositoryInterface
	Logs         usecase.VerificationLogRepositoryInterface
}

func NewDocumentationHandler(
	integrations usecase.IntegrationRepositoryInterface,
	logs usecase.VerificationLogRepositoryInterface,
) *DocumentationHandler {
	return &DocumentationHandler{
		Integrations: integrations,
		Logs:         logs,
	}
}

// Handle recebe o payload de documentação: POST /api/{slug}/documentacao.
// Pass-through com checagem do id da viabilidade; nenhuma transformação além
// de normalizar as duas grafias do campo (id_conectai / id_conecteai).
func (h *DocumentationHandler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	_, err := h.Integrations.FindBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, entity.ErrIntegrationNotFound) {
			disponiveis, _ := h.Integrations.ListSlugs(r.Context())
			writeJSON(w, http.StatusNotFound, map[string]any{
				"error":       fmt.Sprintf("Cliente %q não encontrado", slug),
				"disponiveis": disponiveis,
			})
			return
		}
		log.Printf("Erro ao buscar integração: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro interno ao processar a requisição")
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	id := firstNonEmpty(body["id_conectai"], body["id_conecteai"])
	if id == "" {
		writeError(w, http.StatusBadRequest, "Campo id_conectai ou id_conecteai é obrigatório")
		return
	}

	payload := make(map[string]any, len(body)+1)
	for k, v := range body {
		payload[k] = v
	}
	payload["id_conectai"] = id

	response := map[string]any{
		"ok":      true,
		"message": "Documentação recebida",
		"payload": payload,
	}

	requestJSON, _ := json.Marshal(body)
	responseJSON, _ := json.Marshal(response)
	err = h.Logs.Create(r.Context(), &entity.VerificationLog{
		IntegrationSlug: slug,
		Type:            entity.LogTypeDocumentacao,
		Request:         requestJSON,
		Response:        responseJSON,
	})
	if err != nil {
		log.Printf("Erro ao salvar log: %v", err)
	}

	middleware.RecordDocumentation(slug)
	writeRawJSON(w, http.StatusOK, responseJSON)
}

func firstNonEmpty(values ...any) string {
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}
