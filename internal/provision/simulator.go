package provision

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Simulator implements Provider without touching any cloud. It assigns
// deterministic-looking identifiers and keeps an inventory of everything it
// "created", which the status surfaces expose.
type Simulator struct {
	logger *slog.Logger

	mu        sync.RWMutex
	resources []SimulatedResource
}

// SimulatedResource is one inventory entry.
type SimulatedResource struct {
	ID   string
	Kind string
	Name string
}

var _ Provider = (*Simulator)(nil)

// NewSimulator creates an empty simulator.
func NewSimulator(logger *slog.Logger) *Simulator {
	return &Simulator{logger: logger}
}

func (s *Simulator) CreateInstance(ctx context.Context, spec InstanceSpec) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := "i-" + shortID()
	s.remember(id, "compute", spec.Name)
	s.logger.Info("Simulated compute instance",
		"instance_id", id, "instance_type", spec.InstanceType, "region", spec.Region)
	return id, nil
}

func (s *Simulator) CreateBucket(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" {
		return "", fmt.Errorf("bucket name is required")
	}

	s.remember(name, "storage", name)
	s.logger.Info("Simulated object bucket", "bucket", name)
	return name, nil
}

func (s *Simulator) CreateDatabase(ctx context.Context, spec DatabaseSpec) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := spec.Identifier
	if id == "" {
		id = "db-" + shortID()
	}
	s.remember(id, "database", spec.Engine)
	s.logger.Info("Simulated managed database",
		"db_identifier", id, "engine", spec.Engine, "instance_class", spec.InstanceClass)
	return id, nil
}

func (s *Simulator) CreateFunction(ctx context.Context, spec FunctionSpec) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if spec.Name == "" {
		return "", fmt.Errorf("function name is required")
	}
	arn := fmt.Sprintf("arn:aws:lambda:::function:%s", spec.Name)
	s.remember(arn, "function", spec.Name)
	s.logger.Info("Simulated function", "function", spec.Name, "runtime", spec.Runtime)
	return arn, nil
}

func (s *Simulator) AttachPolicy(ctx context.Context, resourceID, policyARN string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if resourceID == "" || policyARN == "" {
		return fmt.Errorf("resource id and policy ARN are required")
	}

	s.logger.Info("Simulated policy attachment", "resource_id", resourceID, "policy", policyARN)
	return nil
}

// Resources returns a copy of the simulated inventory.
func (s *Simulator) Resources() []SimulatedResource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]SimulatedResource, len(s.resources))
	copy(out, s.resources)
	return out
}

func (s *Simulator) remember(id, kind, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources = append(s.resources, SimulatedResource{ID: id, Kind: kind, Name: name})
}

func shortID() string {
	return strings.Split(uuid.NewString(), "-")[0]
}
