package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cezarfreitas/completa-hub/internal/entity"
	"github.com/cezarfreitas/completa-hub/internal/infra/integration/completa"
)

const (
	MsgChaveNaoConfigurada   = "Chave Google Geocode não configurada. Configure GOOGLE_GEOCODE_API_KEY no .env"
	MsgEnderecoNaoEncontrado = "Endereço não encontrado no Google Geocode"
)

type VerificationUseCase struct {
	Geocoder      GeocodeGateway
	Subscriptions SubscriptionGateway
	GeocodeAPIKey string
}

func NewVerificationUseCase(geocoder GeocodeGateway, subscriptions SubscriptionGateway, geocodeAPIKey string) *VerificationUseCase {
	return &VerificationUseCase{
		Geocoder:      geocoder,
		Subscriptions: subscriptions,
		GeocodeAPIKey: geocodeAPIKey,
	}
}

// NormalizeAddress monta a query livre de geocodificação. O template, com a
// vírgula sem espaço antes do número, é contrato fixo: as consultas
// históricas foram geradas exatamente assim. Não "corrigir".
func NormalizeAddress(body entity.WebhookBody) string {
	return fmt.Sprintf("Rua %s,%s - %s, %s, %s", body.Rua, body.Numero, body.Bairro, body.Cidade, body.Cep)
}

// Execute roda o fluxo de viabilidade: geocodifica o endereço, extrai os
// componentes, envia a pré-assinatura para a API Completa do cliente e monta
// o resultado canônico.
//
// Só duas condições viram *entity.FlowError: chave do Geocode ausente e
// geocode sem resultados. Falha de transporte ou resposta ilegível sobe como
// erro comum e é o handler quem converte em 500 genérico.
func (uc *VerificationUseCase) Execute(ctx context.Context, body entity.WebhookBody, config *entity.Integration) (*entity.FlowResult, error) {
	if uc.GeocodeAPIKey == "" {
		return nil, &entity.FlowError{Message: MsgChaveNaoConfigurada}
	}

	// 1. Google Geocode
	query := NormalizeAddress(body)
	results, err := uc.Geocoder.Lookup(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, &entity.FlowError{Message: MsgEnderecoNaoEncontrado}
	}

	// Só o primeiro resultado interessa. Sem desambiguação.
	first := results[0]
	fields := extractAddress(first, body)

	// 2. Pré-assinatura na API Completa do cliente
	payload := completa.SubscriptionRequest{
		PlanID: config.PlanID,
		Subscription: completa.Subscription{
			PreSubscription: true,
			TelefoneCelular: fields.Whatsapp,
			NomeRazaoSocial: fields.Nome,
			Rua:             fields.Rua,
			Numero:          fields.Numero,
			Cidade:          fields.Cidade,
			Bairro:          fields.Bairro,
			Cep:             fields.Cep,
			Coordinates: completa.Coordinates{
				Lat: formatCoordinate(fields.Latitude),
				Lng: formatCoordinate(fields.Longitude),
			},
		},
	}

	subscription, err := uc.Subscriptions.Subscribe(ctx, config.CompletaAPIURL, config.CompletaOrigin, payload)
	if err != nil {
		return nil, err
	}

	// 3. Resposta final
	cobertura := entity.CoberturaNao
	if subscription.Coverage {
		cobertura = entity.CoberturaSim
	}

	// O CEP da resposta sai do short_name do geocode; o payload acima usou o
	// long_name. A dupla extração vem do fluxo n8n e fica como está.
	cepFinal := shortByTypes(first.AddressComponents, []string{"postal_code"})
	if cepFinal == "" {
		cepFinal = fields.Cep
	}

	return &entity.FlowResult{
		Cobertura:   cobertura,
		Rua:         fields.Rua,
		Numero:      fields.Numero,
		Bairro:      fields.Bairro,
		Cidade:      fields.Cidade,
		Estado:      fields.Estado,
		Cep:         cepFinal,
		Latitude:    fields.Latitude,
		Longitude:   fields.Longitude,
		IDConecteAI: subscription.SubscriberID,
	}, nil
}

// formatCoordinate serializa como a API Completa espera: string decimal,
// sem zeros à direita.
func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
