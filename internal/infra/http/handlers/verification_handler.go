package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cezarfreitas/completa-hub/internal/entity"
	"github.com/cezarfreitas/completa-hub/internal/infra/http/middleware"
	"github.com/cezarfreitas/completa-hub/internal/infra/queue"
	"github.com/cezarfreitas/completa-hub/internal/usecase"
)

const MsgCamposObrigatorios = "Campos obrigatórios: rua, numero, bairro, cidade, cep, nome, whatsapp"

type VerificationHandler struct {
	Integrations usecase.IntegrationRepositoryInterface
	Logs         usecase.VerificationLogRepositoryInterface
	Flow         *usecase.VerificationUseCase
	Producer     usecase.QueueProducerInterface
}

func NewVerificationHandler(
	integrations usecase.IntegrationRepositoryInterface,
	logs usecase.VerificationLogRepositoryInterface,
	flow *usecase.VerificationUseCase,
	producer usecase.QueueProducerInterface,
) *VerificationHandler {
	return &VerificationHandler{
		Integrations: integrations,
		Logs:         logs,
		Flow:         flow,
		Producer:     producer,
	}
}

// Handle é o webhook de viabilidade: POST /api/{slug}/viabilidade (e o alias
// POST /api/{slug}, mantido por retrocompatibilidade).
func (h *VerificationHandler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	config, err := h.Integrations.FindBySlug(r.Context(), slug)
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

	var body entity.WebhookBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if len(usecase.ValidateWebhookBody(body)) > 0 {
		writeError(w, http.StatusBadRequest, MsgCamposObrigatorios)
		return
	}

	result, err := h.Flow.Execute(r.Context(), body, config)

	var flowErr *entity.FlowError
	switch {
	case err == nil:
		responseJSON, _ := json.Marshal(result)
		h.saveLog(r.Context(), slug, body, responseJSON)
		h.forwardResult(r.Context(), config, responseJSON)

		outcome := "no_coverage"
		if result.Cobertura == entity.CoberturaSim {
			outcome = "coverage"
		}
		middleware.RecordVerification(slug, outcome)

		writeRawJSON(w, http.StatusOK, responseJSON)

	case errors.As(err, &flowErr):
		responseJSON, _ := json.Marshal(flowErr)
		h.saveLog(r.Context(), slug, body, responseJSON)
		middleware.RecordVerification(slug, "error")

		// Endereço não encontrado é condição corrigível pelo cliente: 400.
		// As demais falhas estruturadas são 500.
		status := http.StatusInternalServerError
		if strings.Contains(flowErr.Message, "não encontrado") {
			status = http.StatusBadRequest
		}
		writeRawJSON(w, status, responseJSON)

	default:
		log.Printf("Erro no fluxo: %v", err)
		middleware.RecordVerification(slug, "error")
		middleware.RecordIntegrationError("viabilidade")
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Erro interno ao processar a requisição",
			"details": err.Error(),
		})
	}
}

// saveLog persiste o par request/response. Best-effort: falha não muda a
// resposta já calculada.
func (h *VerificationHandler) saveLog(ctx context.Context, slug string, body entity.WebhookBody, response []byte) {
	requestJSON, _ := json.Marshal(body)
	err := h.Logs.Create(ctx, &entity.VerificationLog{
		IntegrationSlug: slug,
		Type:            entity.LogTypeViabilidade,
		Request:         requestJSON,
		Response:        response,
	})
	if err != nil {
		log.Printf("Erro ao salvar log: %v", err)
	}
}

// forwardResult publica o resultado para entrega assíncrona (webhook n8n e
// email de lead). Também best-effort.
func (h *VerificationHandler) forwardResult(ctx context.Context, config *entity.Integration, result []byte) {
	if h.Producer == nil {
		return
	}
	if config.N8NWebhookURL == "" && config.NotifyEmail == "" {
		return
	}

	err := h.Producer.PublishForward(ctx, queue.ForwardPayload{
		Slug:        config.Slug,
		ClientName:  config.Name,
		WebhookURL:  config.N8NWebhookURL,
		NotifyEmail: config.NotifyEmail,
		Result:      result,
	})
	if err != nil {
		log.Printf("Erro fila: %v", err)
	}
}
