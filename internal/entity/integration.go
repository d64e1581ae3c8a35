package entity

import (
	"errors"
	"time"
)

var (
	ErrIntegrationNotFound = errors.New("integração não encontrada")
	ErrSlugAlreadyExists   = errors.New("cliente com este identificador já existe")
)

// Entidade: Integration (um cliente/tenant, identificado pelo slug)
type Integration struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`

	// Configuração da viabilidade
	PlanID         int    `json:"plan_id"`
	CompletaAPIURL string `json:"completa_api_url"`
	CompletaOrigin string `json:"completa_origin"`

	// Integrações opcionais
	N8NWebhookURL string `json:"n8n_webhook_url"`
	N8NConfigURL  string `json:"n8n_config_url"`
	NotifyEmail   string `json:"notify_email"`

	// Configuração do fluxo de documentação (pode diferir da viabilidade)
	DocumentacaoAPIURL string `json:"documentacao_api_url"`
	DocumentacaoOrigin string `json:"documentacao_origin"`
	DocumentacaoPlanID *int   `json:"documentacao_plan_id"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *Integration) Validate() error {
	if i.Slug == "" {
		return errors.New("slug is required")
	}
	if i.Name == "" {
		return errors.New("name is required")
	}
	if i.PlanID == 0 {
		return errors.New("plan_id is required")
	}
	if i.CompletaAPIURL == "" {
		return errors.New("completa_api_url is required")
	}
	if i.CompletaOrigin == "" {
		return errors.New("completa_origin is required")
	}
	return nil
}
