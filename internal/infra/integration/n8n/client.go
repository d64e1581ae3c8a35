package n8n

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client repassa o resultado de uma viabilidade para o webhook n8n que o
// cliente configurou na integração. Entrega best-effort: quem decide o que
// fazer com a falha é o worker.
type Client struct {
	http *http.Client
}

func NewClient() *Client {
	return &Client{
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Forward(ctx context.Context, webhookURL string, result json.RawMessage) error {
	req, err := http.NewRequestWithContext(ctx, "POST", webhookURL, bytes.NewReader(result))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao encaminhar para n8n: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("n8n retornou status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// FetchConfig busca um JSON de configuração em URL externa. Usado pelo
// config-proxy do console para contornar CORS no navegador.
func (c *Client) FetchConfig(ctx context.Context, configURL string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", configURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar configuração: %w", err)
	}
	defer resp.Body.Close()

	var data json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("resposta de configuração não é JSON: %w", err)
	}

	return data, nil
}
