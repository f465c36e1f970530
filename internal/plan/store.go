package plan

import (
	"sync"
	"time"
)

// Store keeps each session's pending plan and defaults, keyed by session id.
// Sessions never share state; concurrent sessions in one process see only
// their own plan.
type Store struct {
	mu       sync.RWMutex
	plans    map[string]*PendingPlan
	defaults map[string]*Defaults
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		plans:    make(map[string]*PendingPlan),
		defaults: make(map[string]*Defaults),
	}
}

// Get returns a copy of the session's pending plan; sessions without one get
// a NoPlan value.
func (s *Store) Get(sessionID string) PendingPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.plans[sessionID]; ok {
		services := make([]ServiceKind, len(p.Services))
		copy(services, p.Services)
		return PendingPlan{
			Services:   services,
			RawText:    p.RawText,
			State:      p.State,
			ProposedAt: p.ProposedAt,
		}
	}
	return PendingPlan{State: StateNoPlan}
}

// Propose records a new proposal for the session, replacing any previous
// one. Proposing with no services is a no-op.
func (s *Store) Propose(sessionID string, services []ServiceKind, rawText string) {
	if len(services) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.plans[sessionID] = &PendingPlan{
		Services:   dedupe(services),
		RawText:    rawText,
		State:      StateProposed,
		ProposedAt: time.Now(),
	}
}

// Confirm transitions a Proposed plan to Confirmed and returns its service
// kinds in mention order. Returns false when nothing was proposed.
func (s *Store) Confirm(sessionID string) ([]ServiceKind, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plans[sessionID]
	if !ok || p.State != StateProposed {
		return nil, false
	}

	p.State = StateConfirmed
	services := make([]ServiceKind, len(p.Services))
	copy(services, p.Services)
	return services, true
}

// Cancel transitions a Proposed plan to Cancelled and clears it. Returns
// false when nothing was proposed.
func (s *Store) Cancel(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plans[sessionID]
	if !ok || p.State != StateProposed {
		return false
	}

	delete(s.plans, sessionID)
	return true
}

// Clear drops the session's plan after execution.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.plans, sessionID)
}

// GetDefaults returns the session's remembered parameter defaults.
func (s *Store) GetDefaults(sessionID string) Defaults {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if d, ok := s.defaults[sessionID]; ok {
		return *d
	}
	return Defaults{}
}

// RememberDefaults merges non-empty fields into the session's defaults.
func (s *Store) RememberDefaults(sessionID string, d Defaults) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.defaults[sessionID]
	if !ok {
		current = &Defaults{}
		s.defaults[sessionID] = current
	}

	if d.InstanceType != "" {
		current.InstanceType = d.InstanceType
	}
	if d.DBEngine != "" {
		current.DBEngine = d.DBEngine
	}
	if d.Region != "" {
		current.Region = d.Region
	}
}

func dedupe(services []ServiceKind) []ServiceKind {
	seen := make(map[ServiceKind]bool, len(services))
	out := make([]ServiceKind, 0, len(services))
	for _, kind := range services {
		if seen[kind] {
			continue
		}
		seen[kind] = true
		out = append(out, kind)
	}
	return out
}
