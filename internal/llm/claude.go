package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	claudeAPIBaseURL = "https://api.anthropic.com/v1"
	claudeAPIVersion = "2023-06-01"
)

// ClaudeProvider implements Provider using the Anthropic Messages API via direct HTTP.
type ClaudeProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewClaudeProvider creates a new Claude provider. An empty baseURL selects
// the public endpoint.
func NewClaudeProvider(apiKey, model, baseURL string, client *http.Client) *ClaudeProvider {
	if baseURL == "" {
		baseURL = claudeAPIBaseURL
	}
	if client == nil {
		client = &http.Client{}
	}
	return &ClaudeProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (p *ClaudeProvider) Name() ProviderName {
	return ProviderClaude
}

type claudeRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
	System      string          `json:"system,omitempty"`
	Messages    []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content    []claudeContent `json:"content"`
	Model      string          `json:"model"`
	StopReason string          `json:"stop_reason"`
	Usage      *claudeUsage    `json:"usage"`
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

func (p *ClaudeProvider) Call(ctx context.Context, messages []Message, cfg CallConfig) (*CallResult, error) {
	model := cfg.Model
	if model == "" {
		model = p.model
	}

	system, rest := splitSystem(messages)

	conversation := make([]claudeMessage, 0, len(rest))
	for _, msg := range rest {
		conversation = append(conversation, claudeMessage{Role: string(msg.Role), Content: msg.Content})
	}

	apiReq := claudeRequest{
		Model:       model,
		MaxTokens:   cfg.maxTokens(),
		Temperature: cfg.temperature(),
		System:      system,
		Messages:    conversation,
	}

	respBody, err := postJSON(ctx, p.client, ProviderClaude, p.baseURL+"/messages", map[string]string{
		"x-api-key":         p.apiKey,
		"anthropic-version": claudeAPIVersion,
	}, apiReq)
	if err != nil {
		return nil, err
	}

	var apiResp claudeResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal claude response: %w", err)
	}

	var content string
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	result := &CallResult{
		Content:  content,
		Provider: ProviderClaude,
		Model:    model,
	}
	if apiResp.Model != "" {
		result.Model = apiResp.Model
	}
	// Downstream cost tracking expects a single combined count.
	if apiResp.Usage != nil {
		total := apiResp.Usage.InputTokens + apiResp.Usage.OutputTokens
		result.TokensUsed = &total
	}
	return result, nil
}
