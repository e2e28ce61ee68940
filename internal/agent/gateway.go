package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const maxResponseBytes = 10 << 20

// GatewayInvoker calls hosted agents over HTTP
type GatewayInvoker struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewGatewayInvoker creates an invoker for {baseURL}/v1/agents/{id}/invoke.
// Deadlines come from the call context, so the client should not set its own timeout.
func NewGatewayInvoker(baseURL, apiKey string, httpClient *http.Client) *GatewayInvoker {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &GatewayInvoker{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type invokeRequest struct {
	Message string `json:"message"`
}

// Invoke posts the message to the agent and decodes the response envelope
func (g *GatewayInvoker) Invoke(ctx context.Context, message, agentID string) (*Response, error) {
	body, err := json.Marshal(invokeRequest{Message: message})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/agents/%s/invoke", g.baseURL, url.PathEscape(agentID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var out Response
	if resp.StatusCode >= http.StatusBadRequest {
		if json.Unmarshal(data, &out) == nil && out.Error != "" {
			return &Response{Success: false, Error: out.Error}, nil
		}
		return &Response{Success: false, Error: fmt.Sprintf("agent gateway returned status %d", resp.StatusCode)}, nil
	}

	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}
