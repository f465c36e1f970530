package llm

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/alex-galey/cloudpilot/pkg/config"
)

// NewClientFromConfig selects the provider named by configuration.
func NewClientFromConfig(cfg config.LLMConfig, logger *slog.Logger) (Client, error) {
	logger.Debug("Creating text-generation client", "provider", cfg.Provider, "model", cfg.Model)

	switch cfg.Provider {
	case "gemini":
		return NewGeminiClient(context.Background(), cfg)
	case "anthropic":
		return NewAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}

var Module = fx.Module("llm",
	fx.Provide(NewClientFromConfig),
)
