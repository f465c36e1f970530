package agent

import (
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/alex-galey/cloudpilot/internal/llm"
	"github.com/alex-galey/cloudpilot/internal/plan"
	"github.com/alex-galey/cloudpilot/internal/shared/audit"
	"github.com/alex-galey/cloudpilot/internal/shared/metrics"
	"github.com/alex-galey/cloudpilot/internal/tool"
	"github.com/alex-galey/cloudpilot/pkg/config"
)

func NewDispatcher(cfg *config.ServerConfig, registry *tool.Registry, collector *metrics.InMemoryCollector, logger *slog.Logger) *tool.Dispatcher {
	timeout := cfg.Provisioning.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	sink := audit.NewFanOutSink(audit.NewSlogSink(logger), audit.NewMetricsSink(collector))
	return tool.NewDispatcher(registry, sink, timeout, logger)
}

func NewControllerFromConfig(cfg *config.ServerConfig, client llm.Client, dispatcher *tool.Dispatcher, plans *plan.Store, logger *slog.Logger) *Controller {
	return NewController(client, dispatcher, plans, cfg.HistoryWindow, cfg.LLM.Timeout, logger)
}

var Module = fx.Module("agent",
	fx.Provide(
		plan.NewStore,
		metrics.NewInMemoryCollector,
		NewDispatcher,
		NewControllerFromConfig,
	),
)
