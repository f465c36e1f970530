package provision

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/alex-galey/cloudpilot/internal/pricing"
	"github.com/alex-galey/cloudpilot/internal/tool"
	"github.com/alex-galey/cloudpilot/pkg/config"
)

// NewCredentialStoreFromConfig seeds the store from static configuration
// so configure-credentials is optional when keys come from the environment.
func NewCredentialStoreFromConfig(cfg *config.ServerConfig) *CredentialStore {
	return NewCredentialStore(Credentials{
		AccessKey: cfg.Provisioning.ObjectStorage.AccessKey,
		SecretKey: cfg.Provisioning.ObjectStorage.SecretKey,
		Region:    cfg.Provisioning.Region,
	})
}

// NewProvider selects the provisioning backend. Simulation keeps every
// resource in memory; otherwise buckets go through real object storage
// while the remaining kinds stay simulated.
func NewProvider(cfg *config.ServerConfig, store *CredentialStore, logger *slog.Logger) (Provider, error) {
	sim := NewSimulator(logger)
	if cfg.Provisioning.Simulate {
		return sim, nil
	}

	creds, ok := store.Get()
	if !ok {
		return nil, ErrNotConfigured
	}

	buckets, err := NewBucketClient(context.Background(),
		cfg.Provisioning.ObjectStorage.Endpoint, cfg.Provisioning.Region, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to create bucket client: %w", err)
	}

	return NewHybridProvider(sim, buckets), nil
}

// NewRegistry wires the provisioning tool set.
func NewRegistry(cfg *config.ServerConfig, provider Provider, store *CredentialStore, logger *slog.Logger) *tool.Registry {
	return BuildRegistry(RegistryDeps{
		Provider:    provider,
		Credentials: store,
		Calculator:  pricing.NewCalculator(),
		Formatter:   pricing.NewFormatter(),
		Region:      cfg.Provisioning.Region,
		Logger:      logger,
	})
}

var Module = fx.Module("provision",
	fx.Provide(
		NewCredentialStoreFromConfig,
		NewProvider,
		NewRegistry,
	),
)
