// Package provision defines the executors behind the tool registry. The
// concrete cloud calls are external collaborators; everything here adapts a
// flat parameter map into a provider call and converts every fault into a
// failed result.
package provision

import (
	"context"
	"errors"
)

// InstanceSpec describes a compute instance to create.
type InstanceSpec struct {
	Name         string
	InstanceType string
	Region       string
}

// DatabaseSpec describes a managed database to create.
type DatabaseSpec struct {
	Identifier     string
	Engine         string
	InstanceClass  string
	MasterUsername string
	StorageGB      int
	MultiZone      bool
}

// FunctionSpec describes a serverless function to create.
type FunctionSpec struct {
	Name     string
	Runtime  string
	Handler  string
	MemoryMB int
}

// Provider performs the concrete provisioning operations. Implementations
// return an identifier for the created resource and must report every
// failure as an error rather than panicking.
type Provider interface {
	CreateInstance(ctx context.Context, spec InstanceSpec) (string, error)
	CreateBucket(ctx context.Context, name string) (string, error)
	CreateDatabase(ctx context.Context, spec DatabaseSpec) (string, error)
	CreateFunction(ctx context.Context, spec FunctionSpec) (string, error)
	AttachPolicy(ctx context.Context, resourceID, policyARN string) error

	// Resources returns the inventory of everything created so far, in
	// creation order.
	Resources() []SimulatedResource
}

// ErrNotConfigured is returned when an operation needs credentials that have
// not been supplied yet.
var ErrNotConfigured = errors.New("cloud credentials are not configured")
