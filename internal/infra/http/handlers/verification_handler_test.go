package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cezarfreitas/completa-hub/internal/entity"
	"github.com/cezarfreitas/completa-hub/internal/infra/integration/completa"
	"github.com/cezarfreitas/completa-hub/internal/infra/integration/geocode"
	"github.com/cezarfreitas/completa-hub/internal/usecase"
)

func activeIntegration() *entity.Integration {
	return &entity.Integration{
		ID:             "int-1",
		Slug:           "completa-2025",
		Name:           "Completa 2025",
		PlanID:         4928,
		CompletaAPIURL: "https://assine.completa.vc/api/v2/subscriptions",
		CompletaOrigin: "https://completa.conecte.ai/api/xyz",
		Active:         true,
	}
}

func geocodeFixture() []geocode.Result {
	return []geocode.Result{{
		AddressComponents: []geocode.AddressComponent{
			{LongName: "Rua Exemplo", ShortName: "R. Exemplo", Types: []string{"route"}},
			{LongName: "100", ShortName: "100", Types: []string{"street_number"}},
			{LongName: "Centro", ShortName: "Centro", Types: []string{"sublocality_level_1", "sublocality"}},
			{LongName: "São Paulo", ShortName: "São Paulo", Types: []string{"administrative_area_level_2"}},
			{LongName: "São Paulo", ShortName: "SP", Types: []string{"administrative_area_level_1"}},
			{LongName: "01000-000", ShortName: "01000-000", Types: []string{"postal_code"}},
		},
		Geometry: geocode.Geometry{Location: geocode.Location{Lat: -23.5, Lng: -46.6}},
	}}
}

const validBodyJSON = `{
	"rua": "Rua Exemplo",
	"numero": "100",
	"bairro": "Centro",
	"cidade": "São Paulo",
	"cep": "01000000",
	"nome": "João Silva",
	"whatsapp": "5511999999999"
}`

func serveVerification(h *VerificationHandler, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Post("/api/{slug}/viabilidade", h.Handle)

	req := httptest.NewRequest("POST", "/api/completa-2025/viabilidade", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func newFlowUseCase(geocoder *MockGeocodeGateway, subscriptions *MockSubscriptionGateway) *usecase.VerificationUseCase {
	return usecase.NewVerificationUseCase(geocoder, subscriptions, "fake-key")
}

func TestVerificationWebhookSuccess(t *testing.T) {
	integrations := new(MockIntegrationRepository)
	logs := new(MockVerificationLogRepository)
	geocoder := new(MockGeocodeGateway)
	subscriptions := new(MockSubscriptionGateway)

	integrations.On("FindBySlug", mock.Anything, "completa-2025").Return(activeIntegration(), nil)
	geocoder.On("Lookup", mock.Anything, mock.Anything).Return(geocodeFixture(), nil)
	id := "abc-123"
	subscriptions.On("Subscribe", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&completa.SubscriptionResult{Coverage: true, SubscriberID: &id}, nil)
	logs.On("Create", mock.Anything, mock.AnythingOfType("*entity.VerificationLog")).Return(nil)

	h := NewVerificationHandler(integrations, logs, newFlowUseCase(geocoder, subscriptions), nil)
	rec := serveVerification(h, validBodyJSON)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]any
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Tem Cobertura", response["Cobertura"])
	assert.Equal(t, "abc-123", response["id_conecteai"])
	assert.Equal(t, "Rua Exemplo", response["rua"])

	logs.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(l *entity.VerificationLog) bool {
		return l.IntegrationSlug == "completa-2025" && l.Type == entity.LogTypeViabilidade
	}))
}

func TestVerificationWebhookUnknownSlug(t *testing.T) {
	integrations := new(MockIntegrationRepository)
	logs := new(MockVerificationLogRepository)

	integrations.On("FindBySlug", mock.Anything, "completa-2025").Return(nil, entity.ErrIntegrationNotFound)
	integrations.On("ListSlugs", mock.Anything).Return([]string{"outro-cliente"}, nil)

	h := NewVerificationHandler(integrations, logs, newFlowUseCase(new(MockGeocodeGateway), new(MockSubscriptionGateway)), nil)
	rec := serveVerification(h, validBodyJSON)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var response map[string]any
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Contains(t, response["error"], "completa-2025")
	assert.Equal(t, []any{"outro-cliente"}, response["disponiveis"])
}

func TestVerificationWebhookMissingFields(t *testing.T) {
	integrations := new(MockIntegrationRepository)
	logs := new(MockVerificationLogRepository)

	integrations.On("FindBySlug", mock.Anything, "completa-2025").Return(activeIntegration(), nil)

	h := NewVerificationHandler(integrations, logs, newFlowUseCase(new(MockGeocodeGateway), new(MockSubscriptionGateway)), nil)
	rec := serveVerification(h, `{"rua": "Rua Exemplo"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]any
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, MsgCamposObrigatorios, response["error"])

	logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVerificationWebhookInvalidJSON(t *testing.T) {
	integrations := new(MockIntegrationRepository)
	logs := new(MockVerificationLogRepository)

	integrations.On("FindBySlug", mock.Anything, "completa-2025").Return(activeIntegration(), nil)

	h := NewVerificationHandler(integrations, logs, newFlowUseCase(new(MockGeocodeGateway), new(MockSubscriptionGateway)), nil)
	rec := serveVerification(h, `{invalido`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerificationWebhookAddressNotFound(t *testing.T) {
	integrations := new(MockIntegrationRepository)
	logs := new(MockVerificationLogRepository)
	geocoder := new(MockGeocodeGateway)

	integrations.On("FindBySlug", mock.Anything, "completa-2025").Return(activeIntegration(), nil)
	geocoder.On("Lookup", mock.Anything, mock.Anything).Return([]geocode.Result{}, nil)
	logs.On("Create", mock.Anything, mock.AnythingOfType("*entity.VerificationLog")).Return(nil)

	h := NewVerificationHandler(integrations, logs, newFlowUseCase(geocoder, new(MockSubscriptionGateway)), nil)
	rec := serveVerification(h, validBodyJSON)

	// Endereço não encontrado é erro do cliente: 400, e o log é gravado
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]any
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Endereço não encontrado no Google Geocode", response["error"])

	logs.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVerificationWebhookMissingAPIKey(t *testing.T) {
	integrations := new(MockIntegrationRepository)
	logs := new(MockVerificationLogRepository)

	integrations.On("FindBySlug", mock.Anything, "completa-2025").Return(activeIntegration(), nil)
	logs.On("Create", mock.Anything, mock.AnythingOfType("*entity.VerificationLog")).Return(nil)

	flow := usecase.NewVerificationUseCase(new(MockGeocodeGateway), new(MockSubscriptionGateway), "")
	h := NewVerificationHandler(integrations, logs, flow, nil)
	rec := serveVerification(h, validBodyJSON)

	// Falha de configuração não é culpa do cliente: 500
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var response map[string]any
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Contains(t, response["error"], "GOOGLE_GEOCODE_API_KEY")
}

func TestVerificationWebhookTransportError(t *testing.T) {
	integrations := new(MockIntegrationRepository)
	logs := new(MockVerificationLogRepository)
	geocoder := new(MockGeocodeGateway)

	integrations.On("FindBySlug", mock.Anything, "completa-2025").Return(activeIntegration(), nil)
	geocoder.On("Lookup", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	h := NewVerificationHandler(integrations, logs, newFlowUseCase(geocoder, new(MockSubscriptionGateway)), nil)
	rec := serveVerification(h, validBodyJSON)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var response map[string]any
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Erro interno ao processar a requisição", response["error"])
	assert.Contains(t, response["details"], "connection refused")

	// Falha de transporte não vai para o log de verificações
	logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVerificationWebhookLogFailureKeepsResponse(t *testing.T) {
	integrations := new(MockIntegrationRepository)
	logs := new(MockVerificationLogRepository)
	geocoder := new(MockGeocodeGateway)
	subscriptions := new(MockSubscriptionGateway)

	integrations.On("FindBySlug", mock.Anything, "completa-2025").Return(activeIntegration(), nil)
	geocoder.On("Lookup", mock.Anything, mock.Anything).Return(geocodeFixture(), nil)
	subscriptions.On("Subscribe", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&completa.SubscriptionResult{Coverage: false}, nil)
	logs.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	h := NewVerificationHandler(integrations, logs, newFlowUseCase(geocoder, subscriptions), nil)
	rec := serveVerification(h, validBodyJSON)

	// Persistência do log é best-effort: a resposta não muda
	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]any
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Sem Cobertura", response["Cobertura"])
}

func TestVerificationWebhookPublishesForward(t *testing.T) {
	integrations := new(MockIntegrationRepository)
	logs := new(MockVerificationLogRepository)
	geocoder := new(MockGeocodeGateway)
	subscriptions := new(MockSubscriptionGateway)
	producer := new(MockQueueProducer)

	config := activeIntegration()
	config.N8NWebhookURL = "https://n8n.exemplo.com/webhook/abc"

	integrations.On("FindBySlug", mock.Anything, "completa-2025").Return(config, nil)
	geocoder.On("Lookup", mock.Anything, mock.Anything).Return(geocodeFixture(), nil)
	id := "abc-123"
	subscriptions.On("Subscribe", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&completa.SubscriptionResult{Coverage: true, SubscriberID: &id}, nil)
	logs.On("Create", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishForward", mock.Anything, mock.Anything).Return(nil)

	h := NewVerificationHandler(integrations, logs, newFlowUseCase(geocoder, subscriptions), producer)
	rec := serveVerification(h, validBodyJSON)

	assert.Equal(t, http.StatusOK, rec.Code)
	producer.AssertCalled(t, "PublishForward", mock.Anything, mock.Anything)
}
