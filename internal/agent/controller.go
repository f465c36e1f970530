package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alex-galey/cloudpilot/internal/directive"
	"github.com/alex-galey/cloudpilot/internal/llm"
	"github.com/alex-galey/cloudpilot/internal/plan"
	"github.com/alex-galey/cloudpilot/internal/pricing"
	"github.com/alex-galey/cloudpilot/internal/tool"
)

// Controller drives one conversational turn: it gates resource creation
// behind plan confirmation, calls the model only when the turn needs it,
// and folds tool results into a single reply.
type Controller struct {
	llm        llm.Client
	dispatcher *tool.Dispatcher
	plans      *plan.Store
	aggregator *Aggregator
	calculator *pricing.Calculator
	formatter  *pricing.Formatter
	logger     *slog.Logger

	systemPrompt  string
	historyWindow int
	llmTimeout    time.Duration

	mu        sync.Mutex
	histories map[string][]llm.Message
}

// NewController wires a turn controller. historyWindow bounds the number of
// prior messages replayed to the model per session; llmTimeout bounds each
// text-generation call, with zero leaving it unbounded.
func NewController(client llm.Client, dispatcher *tool.Dispatcher, plans *plan.Store, historyWindow int, llmTimeout time.Duration, logger *slog.Logger) *Controller {
	if historyWindow <= 0 {
		historyWindow = 12
	}
	return &Controller{
		llm:           client,
		dispatcher:    dispatcher,
		plans:         plans,
		aggregator:    NewAggregator(),
		calculator:    pricing.NewCalculator(),
		formatter:     pricing.NewFormatter(),
		logger:        logger,
		systemPrompt:  BuildSystemPrompt(dispatcher.Registry()),
		historyWindow: historyWindow,
		llmTimeout:    llmTimeout,
		histories:     make(map[string][]llm.Message),
	}
}

// Turn processes one user message for the session and returns the reply.
func (c *Controller) Turn(ctx context.Context, sessionID, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "Tell me what you would like to deploy.", nil
	}

	pending := c.plans.Get(sessionID)

	if pending.State == plan.StateProposed {
		if plan.IsConfirmation(input) {
			reply := c.executeConfirmedPlan(ctx, sessionID)
			c.remember(sessionID, input, reply)
			return reply, nil
		}
		if plan.IsDecline(input) {
			c.plans.Cancel(sessionID)
			reply := "Plan cancelled. Nothing was created."
			c.remember(sessionID, input, reply)
			return reply, nil
		}
		// Anything else is a plan revision and goes back to the model.
	}

	if pending.State == plan.StateNoPlan && plan.IsConfirmation(input) {
		reply := "There is no pending plan to confirm. Tell me what you would like to deploy first."
		c.remember(sessionID, input, reply)
		return reply, nil
	}

	reply := c.modelTurn(ctx, sessionID, input)
	c.remember(sessionID, input, reply)
	return reply, nil
}

// executeConfirmedPlan synthesizes one action per planned service kind and
// dispatches them in plan order.
func (c *Controller) executeConfirmedPlan(ctx context.Context, sessionID string) string {
	services, ok := c.plans.Confirm(sessionID)
	if !ok {
		return "There is no pending plan to confirm."
	}

	defaults := c.plans.GetDefaults(sessionID)
	dirs := make([]directive.Directive, 0, len(services))
	for _, svc := range services {
		if dir, ok := actionForService(svc, defaults); ok {
			dirs = append(dirs, dir)
		}
	}

	results := c.dispatcher.DispatchAll(ctx, dirs)
	c.plans.Clear(sessionID)

	if len(results) == 0 {
		return "The confirmed plan contained no deployable services."
	}
	return c.aggregator.Aggregate("", nil, results)
}

// modelTurn calls the model and applies its directives, withholding any
// unconfirmed resource-creating actions into a proposed plan.
func (c *Controller) modelTurn(ctx context.Context, sessionID, input string) string {
	history := c.historyFor(sessionID)
	history = append(history, llm.Message{Role: llm.RoleUser, Content: input})

	genCtx := ctx
	if c.llmTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, c.llmTimeout)
		defer cancel()
	}

	raw, err := c.llm.Generate(genCtx, c.systemPrompt, history)
	if err != nil {
		c.logger.Error("Text generation failed",
			"session_id", sessionID,
			"error", err)
		return FallbackReply(input)
	}

	dirs := directive.Parse(raw)

	var (
		immediate []directive.Directive
		withheld  []directive.Directive
		planDir   *directive.Directive
	)
	for i, dir := range dirs {
		switch dir.Kind {
		case directive.KindPlan:
			if planDir == nil {
				planDir = &dirs[i]
			}
		case directive.KindAction:
			if c.createsResources(dir.Function) {
				withheld = append(withheld, dir)
			} else {
				immediate = append(immediate, dir)
			}
		}
	}

	results := c.dispatcher.DispatchAll(ctx, immediate)

	// A reply with no plan directive and no withheld actions can still
	// propose services in prose; the keyword scan is the documented
	// fallback. An output directive is a deliberate final answer and is
	// never second-guessed.
	prose := ""
	if planDir == nil && len(withheld) == 0 && !hasOutput(dirs) {
		prose = raw
	}

	proposal := c.proposePlan(sessionID, planDir, withheld, prose)

	reply := c.aggregator.Aggregate(raw, dirs, results)
	if proposal != "" {
		if len(results) > 0 {
			reply = reply + "\n\n" + proposal
		} else if hasOutput(dirs) {
			// Deliberate final answer wins, but the plan still stands.
			reply = reply + "\n\n" + proposal
		} else {
			reply = proposal
		}
	}
	return reply
}

// proposePlan records a pending plan from an explicit plan directive, from
// withheld actions, or as a last resort from service keywords detected in
// prose, and returns the proposal text for the user.
func (c *Controller) proposePlan(sessionID string, planDir *directive.Directive, withheld []directive.Directive, prose string) string {
	var (
		services []plan.ServiceKind
		summary  string
	)

	if planDir != nil {
		services = plan.ParseServiceKinds(planDir.Services)
		if len(services) == 0 {
			services = plan.DetectServices(planDir.Text)
		}
		summary = strings.TrimSpace(planDir.Text)
	}

	for _, dir := range withheld {
		if svc, ok := serviceForAction(dir.Function); ok {
			services = append(services, svc)
		}
		c.rememberDefaults(sessionID, dir.Params)
	}

	if len(services) == 0 && prose != "" {
		services = plan.DetectServices(prose)
		summary = strings.TrimSpace(prose)
	}

	if len(services) == 0 {
		return ""
	}

	c.plans.Propose(sessionID, services, summary)
	recorded := c.plans.Get(sessionID)
	if recorded.State != plan.StateProposed {
		return ""
	}

	var b strings.Builder
	if summary != "" {
		b.WriteString(summary)
		b.WriteString("\n")
	}
	b.WriteString("Proposed deployment plan:\n")
	for _, svc := range recorded.Services {
		b.WriteString(fmt.Sprintf("  - %s\n", svc))
	}
	if planDir != nil && len(planDir.Resources) > 0 {
		specs := pricing.SpecsFromResources(planDir.Resources)
		if len(specs) > 0 {
			estimate := c.calculator.Estimate(specs)
			b.WriteString(c.formatter.Format(estimate))
			b.WriteString("\n")
		}
	}
	b.WriteString("Reply 'yes' to deploy or 'no' to cancel.")
	return b.String()
}

func (c *Controller) rememberDefaults(sessionID string, params map[string]interface{}) {
	var d plan.Defaults
	if v, ok := params["instanceType"].(string); ok {
		d.InstanceType = v
	}
	if v, ok := params["engine"].(string); ok {
		d.DBEngine = v
	}
	if v, ok := params["region"].(string); ok {
		d.Region = v
	}
	if d != (plan.Defaults{}) {
		c.plans.RememberDefaults(sessionID, d)
	}
}

func (c *Controller) createsResources(function string) bool {
	def, ok := c.dispatcher.Registry().Get(function)
	return ok && def.CreatesResources
}

func (c *Controller) historyFor(sessionID string) []llm.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	history := c.histories[sessionID]
	out := make([]llm.Message, len(history))
	copy(out, history)
	return out
}

func (c *Controller) remember(sessionID, input, reply string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	history := append(c.histories[sessionID],
		llm.Message{Role: llm.RoleUser, Content: input},
		llm.Message{Role: llm.RoleAssistant, Content: reply},
	)
	if len(history) > c.historyWindow {
		history = history[len(history)-c.historyWindow:]
	}
	c.histories[sessionID] = history
}

// EndSession drops the session's history and any pending plan.
func (c *Controller) EndSession(sessionID string) {
	c.mu.Lock()
	delete(c.histories, sessionID)
	c.mu.Unlock()
	c.plans.Clear(sessionID)
}

func hasOutput(dirs []directive.Directive) bool {
	for _, dir := range dirs {
		if dir.Kind == directive.KindOutput {
			return true
		}
	}
	return false
}

// actionForService maps a planned service kind to the tool invocation run
// on confirmation, filling omitted parameters from session defaults.
func actionForService(svc plan.ServiceKind, defaults plan.Defaults) (directive.Directive, bool) {
	params := map[string]interface{}{}
	if defaults.Region != "" {
		params["region"] = defaults.Region
	}

	var function string
	switch svc {
	case plan.ServiceCompute:
		function = "deploy-compute-instance"
		if defaults.InstanceType != "" {
			params["instanceType"] = defaults.InstanceType
		}
	case plan.ServiceStorage:
		function = "deploy-object-bucket"
	case plan.ServiceDatabase:
		function = "deploy-managed-database"
		if defaults.DBEngine != "" {
			params["engine"] = defaults.DBEngine
		}
	case plan.ServiceFunction:
		function = "deploy-function"
	default:
		return directive.Directive{}, false
	}

	return directive.Directive{
		Kind:     directive.KindAction,
		Function: function,
		Params:   params,
	}, true
}

func serviceForAction(function string) (plan.ServiceKind, bool) {
	switch function {
	case "deploy-compute-instance":
		return plan.ServiceCompute, true
	case "deploy-object-bucket":
		return plan.ServiceStorage, true
	case "deploy-managed-database":
		return plan.ServiceDatabase, true
	case "deploy-function":
		return plan.ServiceFunction, true
	}
	return "", false
}
