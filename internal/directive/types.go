package directive

// Kind discriminates the structured instructions an assistant response can
// carry. The wire shape is a flat JSON object with a "type" field.
type Kind string

const (
	// KindPlan proposes a set of service kinds to deploy, pending user
	// confirmation.
	KindPlan Kind = "plan"
	// KindAction requests one tool invocation.
	KindAction Kind = "action"
	// KindOutput is the assistant's deliberate final answer; it is returned
	// verbatim and suppresses result aggregation.
	KindOutput Kind = "output"
)

// Directive is one structured instruction extracted from assistant text.
// Directives are immutable once parsed and live only for the turn that
// produced them.
type Directive struct {
	Kind Kind

	// Function names the tool an action directive invokes.
	Function string

	// Params carries the tool-specific fields of an action directive,
	// i.e. every wire field except "type" and "function".
	Params map[string]interface{}

	// Text is the display text of a plan or output directive.
	Text string

	// Services lists the service kinds an explicit plan directive proposes.
	Services []string

	// Resources optionally carries resource descriptions attached to a plan
	// so the proposal can be annotated with a cost estimate.
	Resources []map[string]interface{}
}
