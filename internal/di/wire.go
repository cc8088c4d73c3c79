//go:build wireinject
// +build wireinject

package di

import (
	"ChipTick/pkg/config"
	"ChipTick/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Simulation engine
		ProvideParams,
		ProvideDriver,
		ProvideBackfiller,

		// Persistence
		ProvideHistoryStore,
		ProvideStateStore,
		ProvidePageWriter,

		// External surfaces
		ProvideCache,
		ProvidePublisher,
		ProvideArchivers,
		ProvideClosers,

		// Use cases and transport
		ProvideTickRunner,
		ProvideHandler,

		// Application
		ProvideApp,
	)
	return &server.App{}, nil
}
