package agent

import (
	"fmt"
	"strings"

	"github.com/alex-galey/cloudpilot/internal/directive"
	"github.com/alex-galey/cloudpilot/internal/tool"
)

// Aggregator folds a model turn into the single reply shown to the user.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate picks the reply for a turn. An output directive wins outright
// and suppresses everything else. Otherwise dispatched results are listed
// in dispatch order; with nothing dispatched the raw model text stands.
func (a *Aggregator) Aggregate(raw string, directives []directive.Directive, results []tool.Result) string {
	for _, dir := range directives {
		if dir.Kind == directive.KindOutput {
			return dir.Text
		}
	}

	if len(results) == 0 {
		return strings.TrimSpace(raw)
	}

	var b strings.Builder
	b.WriteString("Executed actions:\n")
	for i, res := range results {
		status := "ok"
		if !res.Success {
			status = "failed"
		}
		b.WriteString(fmt.Sprintf("%d. %s (%s): %s\n", i+1, res.FunctionName, status, res.Message))
	}
	return strings.TrimRight(b.String(), "\n")
}
