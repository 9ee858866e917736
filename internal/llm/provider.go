package llm

import "context"

// Provider defines the interface for LLM provider adapters.
type Provider interface {
	// Call sends the conversation and returns the vendor's raw textual reply.
	Call(ctx context.Context, messages []Message, cfg CallConfig) (*CallResult, error)
	// Name returns the name of this provider.
	Name() ProviderName
}
