package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// postJSON sends payload to url and returns the body of a 2xx response.
// Non-2xx responses become *HTTPError carrying the body verbatim; failures
// before a response arrives become *TransportError.
func postJSON(ctx context.Context, client *http.Client, provider ProviderName, url string, headers map[string]string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", provider, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", provider, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Provider: provider, Err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{Provider: provider, Err: fmt.Errorf("reading response: %w", err)}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, &HTTPError{Provider: provider, StatusCode: httpResp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}

// splitSystem separates the first system message from the conversation.
// Additional system messages are dropped.
func splitSystem(messages []Message) (system string, rest []Message) {
	found := false
	for _, msg := range messages {
		if msg.Role == RoleSystem {
			if !found {
				system = msg.Content
				found = true
			}
			continue
		}
		rest = append(rest, msg)
	}
	return system, rest
}
