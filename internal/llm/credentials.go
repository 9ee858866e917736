package llm

import "os"

// Credentials holds one API key per provider. An empty key means the
// provider is not configured.
type Credentials struct {
	OpenAI string
	Gemini string
	Claude string
}

// Key returns the API key for the given provider.
func (c Credentials) Key(p ProviderName) string {
	switch p {
	case ProviderOpenAI:
		return c.OpenAI
	case ProviderGemini:
		return c.Gemini
	case ProviderClaude:
		return c.Claude
	default:
		return ""
	}
}

// Has reports whether a credential for p is present.
func (c Credentials) Has(p ProviderName) bool {
	return c.Key(p) != ""
}

// CredentialSource yields the credentials to use for one call.
type CredentialSource interface {
	Credentials() Credentials
}

// CredentialEnvVar returns the environment variable holding the API key of
// the given provider.
func CredentialEnvVar(p ProviderName) string {
	switch p {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderClaude:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

// EnvCredentials reads credentials from the process environment on every
// call, so rotated keys take effect without a restart.
type EnvCredentials struct {
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

func (e EnvCredentials) Credentials() Credentials {
	getenv := e.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	return Credentials{
		OpenAI: getenv(CredentialEnvVar(ProviderOpenAI)),
		Gemini: getenv(CredentialEnvVar(ProviderGemini)),
		Claude: getenv(CredentialEnvVar(ProviderClaude)),
	}
}

// StaticCredentials is a fixed CredentialSource.
type StaticCredentials Credentials

func (s StaticCredentials) Credentials() Credentials {
	return Credentials(s)
}
