package agent

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/ngofund/ngoai/internal/llm"
)

// Completer runs a conversation against the configured providers.
// *llm.Dispatcher implements it.
type Completer interface {
	CallOnce(ctx context.Context, messages []llm.Message, cfg llm.CallConfig) (*llm.CallResult, error)
	CallWithFallback(ctx context.Context, messages []llm.Message, cfg llm.CallConfig) (*llm.CallResult, error)
}

// AgentRequest asks the router to run one capability.
type AgentRequest struct {
	Capability string         `json:"capability"`
	Context    map[string]any `json:"context,omitempty"`
	Language   string         `json:"language,omitempty"`
	Provider   string         `json:"provider,omitempty"`
	// Strict makes a single attempt on the resolved provider instead of
	// falling back to the others.
	Strict     bool           `json:"strict,omitempty"`
}

// AgentResponse is the normalized answer of a capability.
type AgentResponse struct {
	Capability  Capability       `json:"capability"`
	Result      Result           `json:"result"`
	Explanation string           `json:"explanation"`
	Suggestions []string         `json:"suggestions,omitempty"`
	Confidence  *float64         `json:"confidence,omitempty"`
	Provider    llm.ProviderName `json:"provider"`
	Model       string           `json:"model"`
	TokensUsed  *int             `json:"tokensUsed,omitempty"`
}

// Router maps capability requests onto prompts and parses the replies.
type Router struct {
	completer       Completer
	defaultLanguage Language
	maxTokens       int
	logger          *slog.Logger
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithDefaultLanguage sets the language used when a request names none.
func WithDefaultLanguage(lang Language) RouterOption {
	return func(r *Router) { r.defaultLanguage = lang }
}

// WithMaxTokens caps the reply length of every capability call.
func WithMaxTokens(n int) RouterOption {
	return func(r *Router) { r.maxTokens = n }
}

// WithLogger sets the router logger.
func WithLogger(l *slog.Logger) RouterOption {
	return func(r *Router) { r.logger = l }
}

// NewRouter creates a Router backed by completer.
func NewRouter(completer Completer, opts ...RouterOption) *Router {
	r := &Router{
		completer:       completer,
		defaultLanguage: LanguageRomanian,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ParseLanguage maps a request language to a Language. Empty or
// unrecognized values yield ok=false.
func ParseLanguage(s string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ro", "ro-ro", "romanian", "română", "romana":
		return LanguageRomanian, true
	case "en", "en-us", "en-gb", "english":
		return LanguageEnglish, true
	default:
		return "", false
	}
}

// Execute runs one capability. Unknown capabilities and bad provider names
// fail before any provider is contacted.
func (r *Router) Execute(ctx context.Context, req AgentRequest) (*AgentResponse, error) {
	capability, err := ParseCapability(req.Capability)
	if err != nil {
		return nil, err
	}
	spec, err := specFor(capability)
	if err != nil {
		return nil, err
	}

	var provider llm.ProviderName
	if req.Provider != "" {
		provider, err = llm.ParseProviderName(req.Provider)
		if err != nil {
			return nil, err
		}
	}

	lang, ok := ParseLanguage(req.Language)
	if !ok {
		lang = r.defaultLanguage
	}

	messages := r.buildMessages(spec, lang, req.Context)
	cfg := llm.CallConfig{
		Provider:    provider,
		Temperature: llm.Temp(spec.temperature),
		MaxTokens:   r.maxTokens,
	}

	r.logger.Debug("executing capability",
		"capability", capability, "language", lang, "provider", provider, "strict", req.Strict, "messages", len(messages))

	call := r.completer.CallWithFallback
	if req.Strict {
		call = r.completer.CallOnce
	}
	res, err := call(ctx, messages, cfg)
	if err != nil {
		return nil, err
	}

	resp := &AgentResponse{
		Capability:  capability,
		Explanation: spec.explanation,
		Provider:    res.Provider,
		Model:       res.Model,
		TokensUsed:  res.TokensUsed,
	}
	if !spec.structured {
		resp.Result = Reply(res.Content)
		return resp, nil
	}

	resp.Result = ExtractJSON(res.Content)
	if resp.Result.Kind == KindRaw {
		r.logger.Warn("capability reply was not valid JSON", "capability", capability, "provider", res.Provider)
	}
	if spec.suggestionsKey != "" {
		resp.Suggestions = stringItems(resp.Result, spec.suggestionsKey)
	}
	if spec.confidenceKey != "" {
		resp.Confidence = percentage(resp.Result, spec.confidenceKey)
	}
	return resp, nil
}

func (r *Router) buildMessages(spec capabilitySpec, lang Language, raw map[string]any) []llm.Message {
	system := persona + "\n\n" + spec.instruction + "\n\n" + languageInstruction(lang)
	msgs := []llm.Message{{Role: llm.RoleSystem, Content: system}}
	return append(msgs, spec.build(raw)...)
}

// stringItems returns the string elements of a list field.
func stringItems(r Result, key string) []string {
	v, ok := r.Field(key)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, it := range items {
		if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// percentage reads a numeric field and clamps it to 0..100.
func percentage(r Result, key string) *float64 {
	v, ok := r.Field(key)
	if !ok {
		return nil
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(n), "%"), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) {
		return nil
	}
	f = max(0, min(100, f))
	return &f
}
