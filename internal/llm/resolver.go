package llm

// bestProviderPriority is the preference order for a single provider pick.
// It intentionally differs from AllProviders, which drives fallback order.
var bestProviderPriority = []ProviderName{ProviderClaude, ProviderOpenAI, ProviderGemini}

// AvailableProviders returns every provider with a credential, in
// enumeration order (OpenAI, Gemini, Claude).
func AvailableProviders(creds Credentials) []ProviderName {
	var out []ProviderName
	for _, p := range AllProviders {
		if creds.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

// BestProvider returns the most preferred configured provider using the
// fixed priority Claude > OpenAI > Gemini. ok is false when nothing is
// configured.
func BestProvider(creds Credentials) (p ProviderName, ok bool) {
	for _, p := range bestProviderPriority {
		if creds.Has(p) {
			return p, true
		}
	}
	return "", false
}

// attemptOrder builds the CallWithFallback order: the preferred provider
// first when it is available, then the remaining available providers in
// enumeration order.
func attemptOrder(preferred ProviderName, available []ProviderName) []ProviderName {
	order := make([]ProviderName, 0, len(available))
	preferredAvailable := false
	for _, p := range available {
		if p == preferred {
			preferredAvailable = true
			break
		}
	}
	if preferred != "" && preferredAvailable {
		order = append(order, preferred)
	}
	for _, p := range available {
		if preferredAvailable && p == preferred {
			continue
		}
		order = append(order, p)
	}
	return order
}
