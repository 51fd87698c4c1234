// Package llm abstracts the remote chat-completion service behind a small
// provider interface with typed errors. Gemini is the default binding; any
// OpenAI-compatible endpoint can be selected through configuration.
package llm

import (
	"context"
	"fmt"

	"github.com/Shahidshaik999/gemini-chatbot-go/internal/config"
)

// Supported provider names.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// NewProvider builds the chat provider named by the configuration.
func NewProvider(ctx context.Context, cfg config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case ProviderGemini, "":
		return newGemini(ctx, cfg)
	case ProviderOpenAI:
		return newOpenAI(cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
