package usecase

import (
	"fmt"
	"strings"

	"github.com/cezarfreitas/completa-hub/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateWebhookBody checa presença dos sete campos obrigatórios do webhook
// de viabilidade. Nenhuma outra normalização acontece aqui.
func ValidateWebhookBody(body entity.WebhookBody) []ValidationError {
	var errors []ValidationError

	fields := []struct {
		name  string
		value string
	}{
		{"rua", body.Rua},
		{"numero", body.Numero},
		{"bairro", body.Bairro},
		{"cidade", body.Cidade},
		{"cep", body.Cep},
		{"nome", body.Nome},
		{"whatsapp", body.Whatsapp},
	}

	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			errors = append(errors, ValidationError{f.name, "is required"})
		}
	}

	return errors
}

// NormalizeSlug deixa o identificador no formato de URL: minúsculas e
// espaços viram hífen.
func NormalizeSlug(slug string) string {
	return strings.Join(strings.Fields(strings.ToLower(slug)), "-")
}
