//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"twi-speech/internal/api/server"
	"twi-speech/internal/app/export"
	"twi-speech/internal/app/purge"
	"twi-speech/internal/config"
)

// InitializeServer wires the HTTP API with all of its dependencies
func InitializeServer(cfg *config.Config) (*server.Server, func(), error) {
	wire.Build(
		CoreSet,
		StorageSet,
		provideLocker,
		provideRegistry,
		provideIngest,
		provideTranscription,
		providePurge,
		provideExporter,
		provideServiceContainer,
		provideServer,
	)
	return nil, nil, nil
}

// InitializeExporter wires a spreadsheet exporter. Object storage is not needed.
func InitializeExporter(cfg *config.Config) (*export.Exporter, func(), error) {
	wire.Build(CoreSet, provideExporter)
	return nil, nil, nil
}

// InitializePurge wires the bulk purge orchestrator
func InitializePurge(cfg *config.Config) (*purge.Orchestrator, func(), error) {
	wire.Build(CoreSet, StorageSet, providePurge)
	return nil, nil, nil
}
