package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cezarfreitas/completa-hub/internal/entity"
)

func integrationRouter(h *IntegrationHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/integrations", h.HandleList)
	r.Post("/api/integrations", h.HandleCreate)
	r.Get("/api/integrations/{id}", h.HandleGet)
	r.Put("/api/integrations/{id}", h.HandleUpdate)
	r.Delete("/api/integrations/{id}", h.HandleDelete)
	return r
}

func TestCreateIntegrationNormalizesSlug(t *testing.T) {
	repo := new(MockIntegrationRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(i *entity.Integration) bool {
		return i.Slug == "cliente-novo" && i.Active && i.ID != ""
	})).Return(nil)

	body := `{
		"slug": "Cliente Novo",
		"name": "Cliente Novo LTDA",
		"plan_id": 4928,
		"completa_api_url": "https://assine.completa.vc/api/v2/subscriptions",
		"completa_origin": "https://cliente.conecte.ai/api/abc"
	}`

	req := httptest.NewRequest("POST", "/api/integrations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	integrationRouter(NewIntegrationHandler(repo)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]any
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "cliente-novo", response["slug"])
	assert.Equal(t, "/api/cliente-novo", response["endpoint"])
	repo.AssertExpectations(t)
}

func TestCreateIntegrationMissingFields(t *testing.T) {
	repo := new(MockIntegrationRepository)

	req := httptest.NewRequest("POST", "/api/integrations", strings.NewReader(`{"slug": "x"}`))
	rec := httptest.NewRecorder()
	integrationRouter(NewIntegrationHandler(repo)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]any
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Campos obrigatórios: slug, name, plan_id, completa_api_url, completa_origin", response["error"])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateIntegrationDuplicateSlug(t *testing.T) {
	repo := new(MockIntegrationRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(entity.ErrSlugAlreadyExists)

	body := `{
		"slug": "completa-2025",
		"name": "Completa",
		"plan_id": 4928,
		"completa_api_url": "https://assine.completa.vc/api/v2/subscriptions",
		"completa_origin": "https://completa.conecte.ai/api/xyz"
	}`

	req := httptest.NewRequest("POST", "/api/integrations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	integrationRouter(NewIntegrationHandler(repo)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var response map[string]any
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Contains(t, response["error"], "já existe")
}

func TestGetIntegrationInvalidID(t *testing.T) {
	repo := new(MockIntegrationRepository)

	req := httptest.NewRequest("GET", "/api/integrations/nao-e-uuid", nil)
	rec := httptest.NewRecorder()
	integrationRouter(NewIntegrationHandler(repo)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestGetIntegrationNotFound(t *testing.T) {
	repo := new(MockIntegrationRepository)
	repo.On("FindByID", mock.Anything, "3b241101-e2bb-4255-8caf-4136c566a964").
		Return(nil, entity.ErrIntegrationNotFound)

	req := httptest.NewRequest("GET", "/api/integrations/3b241101-e2bb-4255-8caf-4136c566a964", nil)
	rec := httptest.NewRecorder()
	integrationRouter(NewIntegrationHandler(repo)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateIntegrationPartial(t *testing.T) {
	repo := new(MockIntegrationRepository)
	existing := activeIntegration()
	existing.ID = "3b241101-e2bb-4255-8caf-4136c566a964"

	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(i *entity.Integration) bool {
		// Só o nome mudou; o resto segue intacto
		return i.Name == "Novo Nome" && i.PlanID == 4928 && i.Slug == "completa-2025"
	})).Return(nil)

	req := httptest.NewRequest("PUT", "/api/integrations/"+existing.ID, strings.NewReader(`{"name": "Novo Nome"}`))
	rec := httptest.NewRecorder()
	integrationRouter(NewIntegrationHandler(repo)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestDeleteIntegrationSoftDeletes(t *testing.T) {
	repo := new(MockIntegrationRepository)
	existing := activeIntegration()
	existing.ID = "3b241101-e2bb-4255-8caf-4136c566a964"

	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Deactivate", mock.Anything, existing.ID).Return(nil)

	req := httptest.NewRequest("DELETE", "/api/integrations/"+existing.ID, nil)
	rec := httptest.NewRecorder()
	integrationRouter(NewIntegrationHandler(repo)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]any
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Integração desativada", response["message"])
	assert.Equal(t, "completa-2025", response["slug"])
	repo.AssertExpectations(t)
}

func TestListIntegrationsPublicOmitsSecrets(t *testing.T) {
	repo := new(MockIntegrationRepository)
	repo.On("ListActive", mock.Anything).Return([]*entity.Integration{activeIntegration()}, nil)

	req := httptest.NewRequest("GET", "/api/integrations", nil)
	rec := httptest.NewRecorder()
	integrationRouter(NewIntegrationHandler(repo)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	json.Unmarshal(rec.Body.Bytes(), &list)
	assert.Len(t, list, 1)
	assert.Equal(t, "completa-2025", list[0]["slug"])
	assert.Equal(t, "/api/completa-2025/viabilidade", list[0]["endpoint_viabilidade"])
	// A lista pública não expõe credenciais da API Completa
	assert.NotContains(t, list[0], "completa_origin")
	assert.NotContains(t, list[0], "completa_api_url")
}

func TestListIntegrationsAdminView(t *testing.T) {
	repo := new(MockIntegrationRepository)
	repo.On("ListActive", mock.Anything).Return([]*entity.Integration{activeIntegration()}, nil)

	req := httptest.NewRequest("GET", "/api/integrations?admin=1", nil)
	rec := httptest.NewRecorder()
	integrationRouter(NewIntegrationHandler(repo)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	json.Unmarshal(rec.Body.Bytes(), &list)
	assert.Len(t, list, 1)
	assert.Equal(t, "int-1", list[0]["id"])
	assert.Equal(t, "https://completa.conecte.ai/api/xyz", list[0]["completa_origin"])
	// Campos vazios aparecem como null, não string vazia
	assert.Nil(t, list[0]["n8n_webhook_url"])
}
