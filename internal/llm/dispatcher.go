package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DefaultAttemptTimeout bounds a single provider attempt.
const DefaultAttemptTimeout = 60 * time.Second

// Dispatcher executes a conversation against the configured providers. It
// holds no per-call state: credentials are read and adapters built on every
// call, so a Dispatcher is safe for concurrent use.
type Dispatcher struct {
	creds          CredentialSource
	newProvider    ProviderFactory
	attemptTimeout time.Duration
	logger         *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger used for attempt reporting.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = l }
}

// WithAttemptTimeout bounds each provider attempt. Zero disables the bound.
func WithAttemptTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) { d.attemptTimeout = timeout }
}

// NewDispatcher creates a Dispatcher reading credentials from creds and
// building adapters with factory.
func NewDispatcher(creds CredentialSource, factory ProviderFactory, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		creds:          creds,
		newProvider:    factory,
		attemptTimeout: DefaultAttemptTimeout,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Available returns the providers usable right now, in enumeration order.
func (d *Dispatcher) Available() []ProviderName {
	return AvailableProviders(d.creds.Credentials())
}

// Best returns the single preferred provider, if any is configured.
func (d *Dispatcher) Best() (ProviderName, bool) {
	return BestProvider(d.creds.Credentials())
}

// CallOnce resolves exactly one provider (cfg.Provider, else the best one)
// and propagates its failure without trying alternates.
func (d *Dispatcher) CallOnce(ctx context.Context, messages []Message, cfg CallConfig) (*CallResult, error) {
	creds := d.creds.Credentials()

	name := cfg.Provider
	if name == "" {
		best, ok := BestProvider(creds)
		if !ok {
			return nil, &ConfigurationError{}
		}
		name = best
	}
	if !creds.Has(name) {
		return nil, &ConfigurationError{Provider: name}
	}

	logger := d.logger.With("request_id", uuid.NewString(), "provider", name)
	result, err := d.attempt(ctx, name, creds.Key(name), messages, cfg)
	if err != nil {
		logger.Error("ai provider call failed", "kind", errorKind(err), "error", err)
		return nil, err
	}
	logger.Debug("ai provider call succeeded", "model", result.Model, "tokens", tokens(result))
	return result, nil
}

// CallWithFallback tries the preferred provider (when available) and then
// every other available provider in enumeration order, returning the first
// success. When all fail, the returned *FallbackError wraps the last error.
func (d *Dispatcher) CallWithFallback(ctx context.Context, messages []Message, cfg CallConfig) (*CallResult, error) {
	creds := d.creds.Credentials()
	available := AvailableProviders(creds)
	if len(available) == 0 {
		return nil, &ConfigurationError{}
	}

	order := attemptOrder(cfg.Provider, available)
	logger := d.logger.With("request_id", uuid.NewString())

	var lastErr error
	for i, name := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		attemptCfg := cfg
		if cfg.Provider != "" && name != cfg.Provider {
			// A model pinned for the preferred provider means nothing to the others.
			attemptCfg.Model = ""
		}
		attemptCfg.Provider = name

		result, err := d.attempt(ctx, name, creds.Key(name), messages, attemptCfg)
		if err == nil {
			logger.Debug("ai provider call succeeded",
				"provider", name, "attempt", i+1, "model", result.Model, "tokens", tokens(result))
			return result, nil
		}

		lastErr = err
		logger.Warn("ai provider failed, trying next",
			"provider", name, "attempt", i+1, "of", len(order), "kind", errorKind(err), "error", err)
	}

	return nil, &FallbackError{Attempts: len(order), Last: lastErr}
}

// attempt builds a fresh adapter and performs one bounded call.
func (d *Dispatcher) attempt(ctx context.Context, name ProviderName, apiKey string, messages []Message, cfg CallConfig) (*CallResult, error) {
	provider, err := d.newProvider(name, apiKey)
	if err != nil {
		return nil, err
	}

	if d.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.attemptTimeout)
		defer cancel()
	}

	return provider.Call(ctx, messages, cfg)
}

func tokens(r *CallResult) int {
	if r.TokensUsed == nil {
		return 0
	}
	return *r.TokensUsed
}
