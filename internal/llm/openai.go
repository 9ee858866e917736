package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using the OpenAI Chat Completions API.
type OpenAIProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAIProvider creates a new OpenAI provider. An empty baseURL selects
// the public endpoint.
func NewOpenAIProvider(apiKey, model, baseURL string, client *http.Client) *OpenAIProvider {
	if client == nil {
		client = &http.Client{}
	}
	return &OpenAIProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  client,
	}
}

func (p *OpenAIProvider) Name() ProviderName {
	return ProviderOpenAI
}

// responseRecorder keeps the body of a non-2xx response so it can be
// surfaced verbatim; go-openai only exposes the decoded message.
type responseRecorder struct {
	doer   openai.HTTPDoer
	status int
	body   []byte
	err    error
}

func (r *responseRecorder) Do(req *http.Request) (*http.Response, error) {
	resp, err := r.doer.Do(req)
	if err != nil {
		r.err = err
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			r.err = readErr
			return nil, readErr
		}
		r.status = resp.StatusCode
		r.body = data
		resp.Body = io.NopCloser(bytes.NewReader(data))
	}
	return resp, nil
}

func (p *OpenAIProvider) Call(ctx context.Context, messages []Message, cfg CallConfig) (*CallResult, error) {
	model := cfg.Model
	if model == "" {
		model = p.model
	}

	recorder := &responseRecorder{doer: p.client}
	clientCfg := openai.DefaultConfig(p.apiKey)
	if p.baseURL != "" {
		clientCfg.BaseURL = p.baseURL
	}
	clientCfg.HTTPClient = recorder
	client := openai.NewClientWithConfig(clientCfg)

	chat := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		chat = append(chat, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	// go-openai omits a zero temperature, which the API reads as 1.0.
	temperature := float32(cfg.temperature())
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	apiReq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    chat,
		MaxTokens:   cfg.maxTokens(),
		Temperature: temperature,
	}

	resp, err := client.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		switch {
		case recorder.status != 0:
			return nil, &HTTPError{Provider: ProviderOpenAI, StatusCode: recorder.status, Body: string(recorder.body)}
		case recorder.err != nil:
			return nil, &TransportError{Provider: ProviderOpenAI, Err: err}
		default:
			return nil, fmt.Errorf("openai: %w", err)
		}
	}

	var content string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	result := &CallResult{
		Content:  content,
		Provider: ProviderOpenAI,
		Model:    model,
	}
	if resp.Model != "" {
		result.Model = resp.Model
	}
	if resp.Usage.TotalTokens > 0 {
		total := resp.Usage.TotalTokens
		result.TokensUsed = &total
	}
	return result, nil
}
