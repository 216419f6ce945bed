package app

import (
	"context"
	"fmt"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"twi-speech/internal/api/server"
	v1routes "twi-speech/internal/api/v1/routes"
	"twi-speech/internal/api/v1/services"
	"twi-speech/internal/app/completion"
	"twi-speech/internal/app/export"
	"twi-speech/internal/app/ingest"
	"twi-speech/internal/app/lock"
	"twi-speech/internal/app/logging"
	"twi-speech/internal/app/metrics"
	"twi-speech/internal/app/purge"
	"twi-speech/internal/app/registry"
	"twi-speech/internal/app/repository"
	"twi-speech/internal/app/repository/migrate"
	"twi-speech/internal/app/repository/pg"
	"twi-speech/internal/app/repository/sqlite"
	"twi-speech/internal/app/storage"
	"twi-speech/internal/app/transcription"
	"twi-speech/internal/app/utils"
	"twi-speech/internal/config"
)

// StoreSet provides the metadata store and its DAOs
var StoreSet = wire.NewSet(
	provideDatabase,
	repository.NewSpeakerStore,
	repository.NewRecordingStore,
	wire.Bind(new(repository.SpeakerDAO), new(*repository.SpeakerStore)),
	wire.Bind(new(repository.RecordingDAO), new(*repository.RecordingStore)),
)

// CoreSet provides the domain components shared by every entry point
var CoreSet = wire.NewSet(
	StoreSet,
	provideLogger,
	provideMetrics,
	provideClock,
	provideQuota,
	provideTracker,
)

// StorageSet provides the object store gateway
var StorageSet = wire.NewSet(
	provideObjectClient,
	provideGateway,
)

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	logger, err := logging.NewLogger(cfg.Log.Development)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func provideMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func provideClock(cfg *config.Config) utils.Clock {
	return utils.ClockIn(cfg.Collection.Location())
}

func provideQuota(cfg *config.Config) completion.Quota {
	return completion.Quota{
		Total:       cfg.Collection.RequiredRecordings,
		Spontaneous: cfg.Collection.RequiredSpontaneous,
	}
}

// provideDatabase opens the configured metadata store and applies the schema
func provideDatabase(cfg *config.Config, logger *zap.Logger) (*repository.CommonDB, func(), error) {
	var (
		db  *repository.CommonDB
		err error
	)
	switch cfg.Database.Driver {
	case sqlite.DriverName:
		db, err = sqlite.NewSQLiteDB(cfg.Database.DSN)
	case pg.DriverName:
		db, err = pg.NewPostgresDB(cfg.Database.DSN)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	if err := migrate.Migrate(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	logger.Info("metadata store ready", zap.String("driver", db.DriverName()))

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

func provideLocker(cfg *config.Config, logger *zap.Logger) (lock.Locker, func(), error) {
	return lock.New(cfg.Lock, logger)
}

func provideRegistry(speakers repository.SpeakerDAO, locker lock.Locker, clock utils.Clock, cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) *registry.Registry {
	return registry.New(speakers, registry.Options{
		ParticipantPrefix: cfg.Collection.ParticipantPrefix,
		Clock:             clock,
		Locker:            locker,
		Logger:            logger,
		Metrics:           m,
	})
}

func provideTracker(recordings repository.RecordingDAO, quota completion.Quota, logger *zap.Logger, m *metrics.Metrics) *completion.Tracker {
	return completion.NewTracker(recordings, quota, logger, m)
}

func provideObjectClient(cfg *config.Config) (storage.ObjectClient, error) {
	if err := cfg.Storage.Validate(); err != nil {
		return nil, err
	}
	client, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func provideGateway(client storage.ObjectClient, cfg *config.Config, logger *zap.Logger) *storage.Gateway {
	return storage.NewGateway(client, cfg.Storage, logger)
}

func provideIngest(reg *registry.Registry, gateway *storage.Gateway, recordings repository.RecordingDAO, tracker *completion.Tracker, clock utils.Clock, cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) *ingest.Orchestrator {
	return ingest.NewOrchestrator(reg, gateway, recordings, tracker, ingest.Options{
		ParticipantPrefix: cfg.Collection.ParticipantPrefix,
		Clock:             clock,
		Logger:            logger,
		Metrics:           m,
	})
}

func provideTranscription(recordings repository.RecordingDAO, clock utils.Clock, logger *zap.Logger, m *metrics.Metrics) *transcription.Service {
	return transcription.NewService(recordings, clock, logger, m)
}

func providePurge(recordings repository.RecordingDAO, speakers repository.SpeakerDAO, gateway *storage.Gateway, logger *zap.Logger, m *metrics.Metrics) *purge.Orchestrator {
	return purge.NewOrchestrator(recordings, speakers, gateway, logger, m)
}

func provideExporter(speakers repository.SpeakerDAO, recordings repository.RecordingDAO, tracker *completion.Tracker, cfg *config.Config, logger *zap.Logger) *export.Exporter {
	return export.NewExporter(speakers, recordings, tracker, cfg.Collection.Location(), logger)
}

func provideServiceContainer(
	ing *ingest.Orchestrator,
	reg *registry.Registry,
	recordings repository.RecordingDAO,
	tracker *completion.Tracker,
	transcriber *transcription.Service,
	purger *purge.Orchestrator,
	exporter *export.Exporter,
	clock utils.Clock,
	cfg *config.Config,
) *v1routes.ServiceContainer {
	return &v1routes.ServiceContainer{
		UploadService:    services.NewUploadService(ing),
		SpeakerService:   services.NewSpeakerService(reg, tracker, purger),
		RecordingService: services.NewRecordingService(recordings, transcriber, purger),
		ExportService:    services.NewExportService(exporter),
		MaxUploadBytes:   cfg.Server.MaxUploadBytes,
		Clock:            clock,
	}
}

func provideServer(cfg *config.Config, container *v1routes.ServiceContainer, m *metrics.Metrics, logger *zap.Logger) *server.Server {
	return server.NewServer(cfg.Server, container, m, logger)
}
