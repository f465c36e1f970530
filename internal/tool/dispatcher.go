package tool

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alex-galey/cloudpilot/internal/directive"
	"github.com/alex-galey/cloudpilot/internal/shared"
	"github.com/alex-galey/cloudpilot/internal/shared/audit"
)

// Dispatcher resolves action directives against the registry and invokes
// executors sequentially. Lookup failures become failed Results, never
// errors; the caller always gets one Result per directive.
type Dispatcher struct {
	registry *Registry
	sink     audit.EventSink
	timeout  time.Duration
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher. The timeout bounds each executor call;
// zero disables the bound.
func NewDispatcher(registry *Registry, sink audit.EventSink, timeout time.Duration, logger *slog.Logger) *Dispatcher {
	if sink == nil {
		sink = audit.NewNoOpSink()
	}
	return &Dispatcher{
		registry: registry,
		sink:     sink,
		timeout:  timeout,
		logger:   logger,
	}
}

// Registry exposes the table this dispatcher resolves against.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch resolves and runs one action directive.
func (d *Dispatcher) Dispatch(ctx context.Context, dir directive.Directive) Result {
	def, ok := d.registry.Get(dir.Function)
	if !ok {
		d.logger.Warn("Directive names an unregistered tool", "function", dir.Function)
		result := Failure(dir.Function, ErrorKindUnknownTool,
			fmt.Sprintf("no tool named %q is available", dir.Function))
		d.record(ctx, dir.Function, dir.Params, result, 0)
		return result
	}

	// Pass through only the parameters the tool declares; missing ones stay
	// absent so the executor applies its own defaults.
	args := make(map[string]interface{}, len(def.ParamNames))
	for _, name := range def.ParamNames {
		if value, ok := dir.Params[name]; ok {
			args[name] = value
		}
	}

	callCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	d.logger.Debug("Dispatching tool", "function", def.Name)

	result := def.Executor(callCtx, args)
	if result.FunctionName == "" {
		result.FunctionName = def.Name
	}
	if !result.Success && result.ErrorKind == ErrorKindNone {
		result.ErrorKind = ErrorKindExecutorFailure
	}

	duration := time.Since(start)
	d.logger.Debug("Tool completed",
		"function", def.Name,
		"success", result.Success,
		"duration", duration)

	d.record(ctx, def.Name, args, result, duration)
	return result
}

// DispatchAll runs the given action directives in order, one at a time.
// Ordering matters: the aggregator numbers results by dispatch order and a
// later action may depend on an earlier one.
func (d *Dispatcher) DispatchAll(ctx context.Context, dirs []directive.Directive) []Result {
	results := make([]Result, 0, len(dirs))
	for _, dir := range dirs {
		if dir.Kind != directive.KindAction {
			continue
		}
		results = append(results, d.Dispatch(ctx, dir))
	}
	return results
}

func (d *Dispatcher) record(ctx context.Context, toolName string, params map[string]interface{}, result Result, duration time.Duration) {
	outcome := "success"
	errorMessage := ""
	if !result.Success {
		outcome = string(result.ErrorKind)
		errorMessage = result.Message
	}

	event := audit.Event{
		Timestamp:    time.Now(),
		SessionID:    shared.SessionIDFromContext(ctx),
		Tool:         toolName,
		Parameters:   params,
		Result:       outcome,
		ResourceID:   result.ResourceID,
		ErrorMessage: errorMessage,
		Duration:     duration,
	}

	if err := d.sink.Record(ctx, event); err != nil {
		d.logger.Error("Failed to record audit event", "tool", toolName, "error", err)
	}
}
