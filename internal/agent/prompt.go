package agent

import (
	"fmt"
	"strings"

	"github.com/alex-galey/cloudpilot/internal/tool"
)

// BuildSystemPrompt renders the operating instructions for the model,
// including the directive convention and the tool catalog from the
// registry so the prompt never drifts from what is actually dispatchable.
func BuildSystemPrompt(registry *tool.Registry) string {
	var b strings.Builder

	b.WriteString(`You are a cloud provisioning assistant. You help the user deploy and manage cloud resources by emitting JSON directives inside your reply.

Directive formats:
- Propose a deployment plan (required before creating any billable resource):
  {"type": "plan", "text": "<summary for the user>", "services": ["compute", "database"]}
- Invoke a tool:
  {"type": "action", "function": "<tool-name>", "<param>": <value>, ...}
- Reply with plain text only (no tools needed):
  {"type": "output", "text": "<your answer>"}

Rules:
- Never create resources before the user has confirmed a plan. First emit a plan directive describing what you intend to deploy, then wait for confirmation.
- Cost estimation is read-only and may be done at any time with the estimate-cost tool.
- Keep plans minimal: only the services the user actually asked for.

Available tools:
`)

	for _, def := range registry.All() {
		b.WriteString(fmt.Sprintf("- %s: %s", def.Name, def.Description))
		if len(def.ParamNames) > 0 {
			b.WriteString(fmt.Sprintf(" (parameters: %s)", strings.Join(def.ParamNames, ", ")))
		}
		if def.CreatesResources {
			b.WriteString(" [creates billable resources]")
		}
		b.WriteString("\n")
	}

	return b.String()
}
