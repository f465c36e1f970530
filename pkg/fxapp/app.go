package fxapp

import (
	"log"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/alex-galey/cloudpilot/internal/agent"
	"github.com/alex-galey/cloudpilot/internal/llm"
	"github.com/alex-galey/cloudpilot/internal/provision"
	"github.com/alex-galey/cloudpilot/internal/server"
	"github.com/alex-galey/cloudpilot/internal/shared/metrics"
	"github.com/alex-galey/cloudpilot/pkg/config"
	"github.com/alex-galey/cloudpilot/pkg/logger"
)

func New() *fx.App {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Default to a verbose logger for debug level
	var fxLogger fx.Option = fx.WithLogger(
		func() fxevent.Logger {
			return &fxevent.ConsoleLogger{W: log.Writer()}
		},
	)

	if cfg.LogLevel != "debug" {
		fxLogger = fx.NopLogger
	}

	return fx.New(
		fxLogger,
		config.Module,
		logger.Module,
		llm.Module,
		provision.Module,
		agent.Module,
		server.Module,
		fx.Decorate(func(client llm.Client, llmCfg config.LLMConfig, collector *metrics.InMemoryCollector) llm.Client {
			return llm.NewInstrumentedClient(client, collector, llmCfg.Provider)
		}),
	)
}
