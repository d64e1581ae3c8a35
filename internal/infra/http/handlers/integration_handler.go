package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cezarfreitas/completa-hub/internal/entity"
	"github.com/cezarfreitas/completa-hub/internal/usecase"
)

type IntegrationHandler struct {
	Repo usecase.IntegrationRepositoryInterface
}

func NewIntegrationHandler(repo usecase.IntegrationRepositoryInterface) *IntegrationHandler {
	return &IntegrationHandler{Repo: repo}
}

type createIntegrationInput struct {
	Slug               string `json:"slug"`
	Name               string `json:"name"`
	PlanID             int    `json:"plan_id"`
	CompletaAPIURL     string `json:"completa_api_url"`
	CompletaOrigin     string `json:"completa_origin"`
	N8NWebhookURL      string `json:"n8n_webhook_url"`
	N8NConfigURL       string `json:"n8n_config_url"`
	NotifyEmail        string `json:"notify_email"`
	DocumentacaoAPIURL string `json:"documentacao_api_url"`
	DocumentacaoOrigin string `json:"documentacao_origin"`
	DocumentacaoPlanID *int   `json:"documentacao_plan_id"`
}

// Campos com ponteiro para diferenciar "ausente" de "limpar".
type updateIntegrationInput struct {
	Name               *string `json:"name"`
	PlanID             *int    `json:"plan_id"`
	CompletaAPIURL     *string `json:"completa_api_url"`
	CompletaOrigin     *string `json:"completa_origin"`
	N8NWebhookURL      *string `json:"n8n_webhook_url"`
	N8NConfigURL       *string `json:"n8n_config_url"`
	NotifyEmail        *string `json:"notify_email"`
	DocumentacaoAPIURL *string `json:"documentacao_api_url"`
	DocumentacaoOrigin *string `json:"documentacao_origin"`
	DocumentacaoPlanID *int    `json:"documentacao_plan_id"`
	Active             *bool   `json:"active"`
}

func endpoints(slug string) map[string]string {
	return map[string]string{
		"endpoint":              "/api/" + slug,
		"endpoint_viabilidade":  "/api/" + slug + "/viabilidade",
		"endpoint_documentacao": "/api/" + slug + "/documentacao",
	}
}

// HandleList atende GET /api/integrations.
// ?admin=1 devolve a lista completa com ids; ?slug=x devolve os dados
// públicos de um cliente; sem parâmetro, a lista pública.
func (h *IntegrationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if slug := r.URL.Query().Get("slug"); slug != "" {
		h.listPublicOne(w, r, usecase.NormalizeSlug(slug))
		return
	}

	list, err := h.Repo.ListActive(r.Context())
	if err != nil {
		log.Printf("Erro ao listar integrações: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro ao listar integrações")
		return
	}

	if r.URL.Query().Get("admin") == "1" {
		out := make([]map[string]any, 0, len(list))
		for _, i := range list {
			item := map[string]any{
				"id":                   i.ID,
				"slug":                 i.Slug,
				"name":                 i.Name,
				"plan_id":              i.PlanID,
				"completa_api_url":     i.CompletaAPIURL,
				"completa_origin":      i.CompletaOrigin,
				"n8n_webhook_url":      nullable(i.N8NWebhookURL),
				"n8n_config_url":       nullable(i.N8NConfigURL),
				"notify_email":         nullable(i.NotifyEmail),
				"documentacao_api_url": nullable(i.DocumentacaoAPIURL),
				"documentacao_origin":  nullable(i.DocumentacaoOrigin),
				"documentacao_plan_id": i.DocumentacaoPlanID,
			}
			for k, v := range endpoints(i.Slug) {
				item[k] = v
			}
			out = append(out, item)
		}
		writeJSON(w, http.StatusOK, out)
		return
	}

	out := make([]map[string]any, 0, len(list))
	for _, i := range list {
		item := map[string]any{"slug": i.Slug, "name": i.Name}
		for k, v := range endpoints(i.Slug) {
			item[k] = v
		}
		out = append(out, item)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *IntegrationHandler) listPublicOne(w http.ResponseWriter, r *http.Request, slug string) {
	i, err := h.Repo.FindBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, entity.ErrIntegrationNotFound) {
			writeError(w, http.StatusNotFound, "Cliente não encontrado")
			return
		}
		writeError(w, http.StatusInternalServerError, "Erro ao listar integrações")
		return
	}

	item := map[string]any{
		"slug":                 i.Slug,
		"name":                 i.Name,
		"n8n_webhook_url":      nullable(i.N8NWebhookURL),
		"n8n_config_url":       nullable(i.N8NConfigURL),
		"documentacao_api_url": nullable(i.DocumentacaoAPIURL),
		"documentacao_origin":  nullable(i.DocumentacaoOrigin),
		"documentacao_plan_id": i.DocumentacaoPlanID,
	}
	for k, v := range endpoints(i.Slug) {
		item[k] = v
	}
	writeJSON(w, http.StatusOK, item)
}

// HandleCreate atende POST /api/integrations.
func (h *IntegrationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input createIntegrationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if input.Slug == "" || input.Name == "" || input.PlanID == 0 ||
		input.CompletaAPIURL == "" || input.CompletaOrigin == "" {
		writeError(w, http.StatusBadRequest,
			"Campos obrigatórios: slug, name, plan_id, completa_api_url, completa_origin")
		return
	}

	now := time.Now()
	integration := &entity.Integration{
		ID:                 uuid.New().String(),
		Slug:               usecase.NormalizeSlug(input.Slug),
		Name:               input.Name,
		PlanID:             input.PlanID,
		CompletaAPIURL:     input.CompletaAPIURL,
		CompletaOrigin:     input.CompletaOrigin,
		N8NWebhookURL:      input.N8NWebhookURL,
		N8NConfigURL:       input.N8NConfigURL,
		NotifyEmail:        input.NotifyEmail,
		DocumentacaoAPIURL: input.DocumentacaoAPIURL,
		DocumentacaoOrigin: input.DocumentacaoOrigin,
		DocumentacaoPlanID: input.DocumentacaoPlanID,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := h.Repo.Create(r.Context(), integration); err != nil {
		if errors.Is(err, entity.ErrSlugAlreadyExists) {
			writeError(w, http.StatusConflict,
				fmt.Sprintf("Cliente com identificador %q já existe", integration.Slug))
			return
		}
		log.Printf("Erro ao criar integração: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro ao criar integração")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":       integration.ID,
		"slug":     integration.Slug,
		"name":     integration.Name,
		"endpoint": "/api/" + integration.Slug,
	})
}

// HandleGet atende GET /api/integrations/{id}.
func (h *IntegrationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	i, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrIntegrationNotFound) {
			writeError(w, http.StatusNotFound, "Integração não encontrada")
			return
		}
		log.Printf("Erro ao buscar integração: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro ao buscar integração")
		return
	}

	item := map[string]any{
		"id":                   i.ID,
		"slug":                 i.Slug,
		"name":                 i.Name,
		"plan_id":              i.PlanID,
		"completa_api_url":     i.CompletaAPIURL,
		"completa_origin":      i.CompletaOrigin,
		"n8n_webhook_url":      nullable(i.N8NWebhookURL),
		"n8n_config_url":       nullable(i.N8NConfigURL),
		"notify_email":         nullable(i.NotifyEmail),
		"documentacao_api_url": nullable(i.DocumentacaoAPIURL),
		"documentacao_origin":  nullable(i.DocumentacaoOrigin),
		"documentacao_plan_id": i.DocumentacaoPlanID,
		"active":               i.Active,
		"endpoint":             "/api/" + i.Slug,
		"createdAt":            i.CreatedAt,
		"updatedAt":            i.UpdatedAt,
	}
	writeJSON(w, http.StatusOK, item)
}

// HandleUpdate atende PUT /api/integrations/{id}. Atualização parcial:
// campo ausente no JSON fica como está.
func (h *IntegrationHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	var input updateIntegrationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	i, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrIntegrationNotFound) {
			writeError(w, http.StatusNotFound, "Integração não encontrada")
			return
		}
		log.Printf("Erro ao atualizar integração: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro ao atualizar integração")
		return
	}

	if input.Name != nil {
		i.Name = *input.Name
	}
	if input.PlanID != nil {
		i.PlanID = *input.PlanID
	}
	if input.CompletaAPIURL != nil {
		i.CompletaAPIURL = *input.CompletaAPIURL
	}
	if input.CompletaOrigin != nil {
		i.CompletaOrigin = *input.CompletaOrigin
	}
	if input.N8NWebhookURL != nil {
		i.N8NWebhookURL = *input.N8NWebhookURL
	}
	if input.N8NConfigURL != nil {
		i.N8NConfigURL = *input.N8NConfigURL
	}
	if input.NotifyEmail != nil {
		i.NotifyEmail = *input.NotifyEmail
	}
	if input.DocumentacaoAPIURL != nil {
		i.DocumentacaoAPIURL = *input.DocumentacaoAPIURL
	}
	if input.DocumentacaoOrigin != nil {
		i.DocumentacaoOrigin = *input.DocumentacaoOrigin
	}
	if input.DocumentacaoPlanID != nil {
		i.DocumentacaoPlanID = input.DocumentacaoPlanID
	}
	if input.Active != nil {
		i.Active = *input.Active
	}

	if err := h.Repo.Update(r.Context(), i); err != nil {
		log.Printf("Erro ao atualizar integração: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro ao atualizar integração")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":       i.ID,
		"slug":     i.Slug,
		"name":     i.Name,
		"endpoint": "/api/" + i.Slug,
	})
}

// HandleDelete atende DELETE /api/integrations/{id}. Soft delete.
func (h *IntegrationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	i, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrIntegrationNotFound) {
			writeError(w, http.StatusNotFound, "Integração não encontrada")
			return
		}
		log.Printf("Erro ao remover integração: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro ao remover integração")
		return
	}

	if err := h.Repo.Deactivate(r.Context(), id); err != nil {
		log.Printf("Erro ao remover integração: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro ao remover integração")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Integração desativada",
		"slug":    i.Slug,
	})
}

// nullable troca string vazia por null no JSON, como o console espera.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
