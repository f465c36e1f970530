// Package plan tracks the not-yet-confirmed deployment proposal of each
// conversation session. The state machine is the safety boundary between
// probabilistic assistant output and real resource creation: nothing is
// deployed until the user explicitly confirms a recorded proposal.
package plan

import "time"

// State is the lifecycle of a pending plan.
type State string

const (
	// StateNoPlan means nothing awaits confirmation.
	StateNoPlan State = "no_plan"
	// StateProposed means a plan was recorded and the next user message
	// decides its fate.
	StateProposed State = "proposed"
	// StateConfirmed is the transient state during which synthesized
	// actions are dispatched; it collapses back to NoPlan after execution.
	StateConfirmed State = "confirmed"
	// StateCancelled records an explicit decline before returning to NoPlan.
	StateCancelled State = "cancelled"
)

// ServiceKind is a category of deployable cloud resource.
type ServiceKind string

const (
	ServiceCompute  ServiceKind = "compute"
	ServiceStorage  ServiceKind = "storage"
	ServiceDatabase ServiceKind = "database"
	ServiceFunction ServiceKind = "function"
)

// PendingPlan is the remembered proposal of one session. At most one plan is
// Proposed per session at any time; a new proposal replaces the old one.
type PendingPlan struct {
	Services   []ServiceKind
	RawText    string
	State      State
	ProposedAt time.Time
}

// Defaults holds session-known parameter defaults used when synthesizing
// actions on confirmation.
type Defaults struct {
	InstanceType string
	DBEngine     string
	Region       string
}
