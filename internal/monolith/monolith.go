// Package monolith provides the application container and module interface.
package monolith

import (
	"context"
	"fmt"

	"github.com/fd1az/reg-voting-power/internal/asset"
	"github.com/fd1az/reg-voting-power/internal/config"
	"github.com/fd1az/reg-voting-power/internal/di"
	"github.com/fd1az/reg-voting-power/internal/logger"
)

// Service names of the shared infrastructure registered by New.
const (
	ServiceConfig        = "config"
	ServiceLogger        = "logger"
	ServiceAssetRegistry = "assetRegistry"
	ServiceMeter         = "meter"
	ServiceTracer        = "tracer"
)

// Monolith is the main application container providing access to shared infrastructure.
type Monolith interface {
	Config() *config.Config
	Logger() logger.LoggerInterface
	AssetRegistry() *asset.Registry
	Services() di.ServiceRegistry
}

// Module represents a bounded context module that can register services and start up.
type Module interface {
	RegisterServices(di.Container) error
	Startup(context.Context, Monolith) error
}

// App implements the Monolith interface.
type App struct {
	config        *config.Config
	logger        logger.LoggerInterface
	assetRegistry *asset.Registry
	container     di.Container
}

// New creates a new application container. The asset registry is seeded with
// the well-known Gnosis tokens and the configured REG address.
func New(cfg *config.Config, log logger.LoggerInterface) (*App, error) {
	assetRegistry := asset.DefaultRegistry()

	chainID, ok := asset.ChainIDs[cfg.Tokens.Network]
	if !ok {
		return nil, fmt.Errorf("monolith: unknown network %q", cfg.Tokens.Network)
	}
	reg := asset.MustNewToken(chainID, cfg.Tokens.REGAddressHex(), cfg.Tokens.REGSymbol, "RealToken Ecosystem Governance", 18)
	if _, err := assetRegistry.Ensure(reg); err != nil {
		return nil, fmt.Errorf("monolith: register REG: %w", err)
	}

	container := di.NewContainer()

	// Register global services
	container.Register(ServiceConfig, cfg)
	container.Register(ServiceLogger, log)
	container.Register(ServiceAssetRegistry, assetRegistry)

	return &App{
		config:        cfg,
		logger:        log,
		assetRegistry: assetRegistry,
		container:     container,
	}, nil
}

func (a *App) Config() *config.Config {
	return a.config
}

func (a *App) Logger() logger.LoggerInterface {
	return a.logger
}

func (a *App) AssetRegistry() *asset.Registry {
	return a.assetRegistry
}

func (a *App) Services() di.ServiceRegistry {
	return a.container
}

// Container returns the DI container for module registration.
func (a *App) Container() di.Container {
	return a.container
}

// RegisterModules registers all provided modules.
func (a *App) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.RegisterServices(a.container); err != nil {
			return err
		}
	}
	return nil
}

// StartModules starts all provided modules.
func (a *App) StartModules(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := m.Startup(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
