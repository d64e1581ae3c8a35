package completa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	http *http.Client
}

func NewClient() *Client {
	return &Client{
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// Subscribe envia a pré-assinatura para a URL do cliente. A API Completa usa
// o header Origin como credencial, não tem token.
//
// O status HTTP não é checado antes de ler o corpo: comportamento herdado do
// fluxo n8n original. Corpo bem-formado sem "data" vira coverage=false,
// id=nil silenciosamente.
func (c *Client) Subscribe(ctx context.Context, apiURL, origin string, payload SubscriptionRequest) (*SubscriptionResult, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Origin", origin)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro de comunicação com api completa: %w", err)
	}
	defer resp.Body.Close()

	var response subscriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("erro ao ler resposta da api completa: %w", err)
	}

	result := &SubscriptionResult{}
	if response.Data != nil {
		id := response.Data.ID
		result.SubscriberID = &id
		if response.Data.Attributes != nil && response.Data.Attributes.Coverage != nil {
			result.Coverage = *response.Data.Attributes.Coverage
		}
	}

	return result, nil
}
