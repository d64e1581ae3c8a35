package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
)

// ConfigFetcher busca um JSON de configuração em URL externa.
type ConfigFetcher interface {
	FetchConfig(ctx context.Context, configURL string) (json.RawMessage, error)
}

type ConfigProxyHandler struct {
	Fetcher ConfigFetcher
}

func NewConfigProxyHandler(fetcher ConfigFetcher) *ConfigProxyHandler {
	return &ConfigProxyHandler{Fetcher: fetcher}
}

// Handle atende GET /api/config-proxy?url=. O console usa isso para ler
// configurações remotas sem esbarrar em CORS no navegador.
func (h *ConfigProxyHandler) Handle(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, "Parâmetro url é obrigatório")
		return
	}

	data, err := h.Fetcher.FetchConfig(r.Context(), url)
	if err != nil {
		log.Printf("Erro ao buscar config: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Erro ao buscar configuração",
			"details": err.Error(),
		})
		return
	}

	writeRawJSON(w, http.StatusOK, data)
}
