package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL permite apontar para um servidor de teste.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

// Lookup consulta o endereço livre no Google Geocode e devolve a lista crua
// de resultados. Lista vazia não é erro aqui: quem decide é o fluxo.
func (c *Client) Lookup(ctx context.Context, address string) ([]Result, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.apiKey)
	params.Set("language", "pt-BR")

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro de comunicação com google geocode: %w", err)
	}
	defer resp.Body.Close()

	var data geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("erro ao ler resposta do geocode: %w", err)
	}

	return data.Results, nil
}
