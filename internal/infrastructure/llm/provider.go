package llm

import "os"

// Provider identifies the model vendor. All three are driven through the
// OpenAI-compatible chat-completions schema their APIs expose.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
)

var defaultModels = map[Provider]string{
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-3-5-sonnet-20241022",
	ProviderGoogle:    "gemini-2.5-flash",
}

var defaultBaseURLs = map[Provider]string{
	ProviderOpenAI:    "https://api.openai.com/v1",
	ProviderAnthropic: "https://api.anthropic.com/v1",
	ProviderGoogle:    "https://generativelanguage.googleapis.com/v1beta/openai",
}

var apiKeyEnvVars = map[Provider]string{
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderGoogle:    "GOOGLE_API_KEY",
}

// DetectProvider resolves the provider from an explicit setting, falling
// back to whichever API key is present in the environment. Google is the
// final default (free tier).
func DetectProvider(explicit string) Provider {
	switch Provider(explicit) {
	case ProviderOpenAI, ProviderAnthropic, ProviderGoogle:
		return Provider(explicit)
	}
	if explicit == "gemini" {
		return ProviderGoogle
	}

	if os.Getenv(apiKeyEnvVars[ProviderGoogle]) != "" {
		return ProviderGoogle
	}
	if os.Getenv(apiKeyEnvVars[ProviderOpenAI]) != "" {
		return ProviderOpenAI
	}
	if os.Getenv(apiKeyEnvVars[ProviderAnthropic]) != "" {
		return ProviderAnthropic
	}

	return ProviderGoogle
}

// DefaultModel returns the provider's default model name
func DefaultModel(p Provider) string {
	return defaultModels[p]
}

// DefaultBaseURL returns the provider's OpenAI-compatible endpoint root
func DefaultBaseURL(p Provider) string {
	return defaultBaseURLs[p]
}

// APIKeyFromEnv reads the provider's API key environment variable
func APIKeyFromEnv(p Provider) string {
	return os.Getenv(apiKeyEnvVars[p])
}

// APIKeyEnvVar names the environment variable a provider's key lives in.
// Used in error messages when no key is configured.
func APIKeyEnvVar(p Provider) string {
	return apiKeyEnvVars[p]
}
