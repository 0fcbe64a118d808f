package ai

import "fmt"

// ProviderOptions selects and tunes a model backend.
type ProviderOptions struct {
	Provider  string // claude, openai
	Model     string // provider-specific model id, empty for the default
	BaseURL   string // OpenAI-compatible endpoint override (scenario llmUrl)
	MaxTokens int
}

// NewCompleter creates a chat completer for the configured provider. A
// BaseURL always selects the OpenAI-compatible client, since that is the
// wire protocol local model servers speak.
func NewCompleter(opts ProviderOptions) (Completer, error) {
	if opts.BaseURL != "" {
		return NewOpenAICompleter(opts)
	}
	switch opts.Provider {
	case "claude", "anthropic":
		return NewClaudeCompleter(opts)
	case "openai", "gpt":
		return NewOpenAICompleter(opts)
	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: claude, openai)", opts.Provider)
	}
}
