// Package summarize rewrites extracted paper text as a plain-language
// summary through a hosted language model.
package summarize

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/papersum/internal/config"
)

// Simplifier produces a lay summary of combined paper text. An empty result
// with a nil error means the model had nothing usable to say.
type Simplifier interface {
	Simplify(ctx context.Context, text string) (string, error)
	Model() string
}

// NewFromConfig builds the simplifier selected by cfg. It returns nil with no
// error when no provider is configured; callers treat that as the
// collaborator being absent.
func NewFromConfig(cfg config.Config, log *slog.Logger) (Simplifier, error) {
	provider := cfg.SummarizerProvider
	if provider == config.ProviderAuto {
		provider = autoProvider(cfg)
	}

	var s Simplifier
	switch provider {
	case config.ProviderNone, "":
		if log != nil {
			log.Info("no simplification provider configured")
		}
		return nil, nil
	case config.ProviderGemini:
		if cfg.GoogleAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires GOOGLE_API_KEY")
		}
		s = NewGeminiClient(cfg.GoogleAPIKey, cfg.GeminiModel)
	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("anthropic provider requires ANTHROPIC_API_KEY")
		}
		s = NewClaudeClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
		}
		s = NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	default:
		return nil, fmt.Errorf("unknown simplification provider %q", provider)
	}

	if log != nil {
		log.Info("simplification provider configured", "provider", provider, "model", s.Model())
	}
	return s, nil
}

// autoProvider picks the first provider with a key, Google first.
func autoProvider(cfg config.Config) string {
	switch {
	case cfg.GoogleAPIKey != "":
		return config.ProviderGemini
	case cfg.AnthropicAPIKey != "":
		return config.ProviderAnthropic
	case cfg.OpenAIAPIKey != "":
		return config.ProviderOpenAI
	default:
		return config.ProviderNone
	}
}
