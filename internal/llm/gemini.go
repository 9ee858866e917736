package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const geminiAPIBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiProvider implements Provider using the Google Gemini API via direct HTTP.
type GeminiProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiProvider creates a new Gemini provider. An empty baseURL selects
// the public endpoint.
func NewGeminiProvider(apiKey, model, baseURL string, client *http.Client) *GeminiProvider {
	if baseURL == "" {
		baseURL = geminiAPIBaseURL
	}
	if client == nil {
		client = &http.Client{}
	}
	return &GeminiProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (p *GeminiProvider) Name() ProviderName {
	return ProviderGemini
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature"`
}

type geminiResponse struct {
	Candidates    []geminiCandidate    `json:"candidates"`
	UsageMetadata *geminiUsageMetadata `json:"usageMetadata"`
	ModelVersion  string               `json:"modelVersion"`
}

type geminiCandidate struct {
	Content      *geminiContent `json:"content"`
	FinishReason string         `json:"finishReason"`
}

type geminiUsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

func (p *GeminiProvider) Call(ctx context.Context, messages []Message, cfg CallConfig) (*CallResult, error) {
	model := cfg.Model
	if model == "" {
		model = p.model
	}

	system, rest := splitSystem(messages)

	var contents []geminiContent
	for _, msg := range rest {
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: msg.Content}},
		})
	}

	// Gemini rejects an empty contents array.
	if len(contents) == 0 {
		contents = append(contents, geminiContent{
			Role:  "user",
			Parts: []geminiPart{{Text: ""}},
		})
	}

	apiReq := geminiRequest{
		Contents: contents,
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     cfg.temperature(),
			MaxOutputTokens: cfg.maxTokens(),
		},
	}
	if system != "" {
		apiReq.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: system}},
		}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, model)
	respBody, err := postJSON(ctx, p.client, ProviderGemini, url, map[string]string{
		"x-goog-api-key": p.apiKey,
	}, apiReq)
	if err != nil {
		return nil, err
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gemini response: %w", err)
	}

	var content string
	if len(apiResp.Candidates) > 0 && apiResp.Candidates[0].Content != nil {
		for _, part := range apiResp.Candidates[0].Content.Parts {
			content += part.Text
		}
	}

	result := &CallResult{
		Content:  content,
		Provider: ProviderGemini,
		Model:    model,
	}
	if apiResp.ModelVersion != "" {
		result.Model = apiResp.ModelVersion
	}
	if apiResp.UsageMetadata != nil {
		total := apiResp.UsageMetadata.TotalTokenCount
		result.TokensUsed = &total
	}
	return result, nil
}
