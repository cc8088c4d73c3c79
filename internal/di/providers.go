package di

import (
	"context"
	"fmt"
	"io"
	"time"

	"ChipTick/internal/domain/repository"
	"ChipTick/internal/handler/api"
	internalrepo "ChipTick/internal/repository"
	"ChipTick/internal/service/unbelieva"
	"ChipTick/internal/sim"
	"ChipTick/internal/usecase"
	"ChipTick/pkg/cache"
	pkgch "ChipTick/pkg/clickhouse"
	"ChipTick/pkg/config"
	xhttp "ChipTick/pkg/http"
	pkgkafka "ChipTick/pkg/kafka"
	"ChipTick/pkg/logger"
	"ChipTick/pkg/metrics"
	"ChipTick/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideParams maps configuration into immutable model parameters.
func ProvideParams(cfg *config.Config) (sim.Params, error) {
	return sim.NewParams(cfg)
}

// ProvideDriver creates the daily simulation driver with a live stream.
func ProvideDriver(p sim.Params) *sim.Driver {
	return sim.NewDriver(p, nil)
}

// ProvideBackfiller creates the deterministic history bootstrapper.
func ProvideBackfiller(p sim.Params) *sim.Backfiller {
	return sim.NewBackfiller(p)
}

// ProvideHistoryStore creates the public history document store.
func ProvideHistoryStore(cfg *config.Config) repository.HistoryStore {
	return internalrepo.NewFileHistoryStore(
		cfg.Storage.HistoryPath,
		cfg.Item.Symbol,
		cfg.Item.Name,
		cfg.Item.Unit,
	)
}

// ProvideStateStore creates the private simulation state store.
func ProvideStateStore(cfg *config.Config) repository.StateStore {
	return internalrepo.NewFileStateStore(cfg.Storage.StatePath)
}

// ProvidePageWriter creates the static chart page materializer.
func ProvidePageWriter(cfg *config.Config) *usecase.PageWriter {
	return usecase.NewPageWriter(
		cfg.Storage.PagePath,
		cfg.Storage.HistoryPath,
		cfg.Item.Name,
		cfg.Item.Unit,
	)
}

// ProvideCache creates the API response cache: Redis when enabled,
// otherwise in-process.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Cache.Redis.Enabled {
		c, err := cache.NewRedisCache(cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	}
	return cache.NewMemoryCache(), nil
}

// ProvidePublisher creates the UnbelievaBoat item publisher, or nil when
// publishing is disabled.
func ProvidePublisher(cfg *config.Config) repository.ItemPublisher {
	if !cfg.Publish.Enabled {
		return nil
	}
	client := xhttp.NewClient(xhttp.WithTimeout(cfg.Publish.Timeout))
	return unbelieva.New(
		client,
		cfg.Item.APIBase,
		cfg.Item.Token,
		cfg.Item.GuildID,
		cfg.Item.Name,
		cfg.Item.ItemID,
		cfg.Item.Unit,
		cfg.Item.PagesURL,
	)
}

// ProvideArchivers creates the configured downstream tick sinks.
func ProvideArchivers(cfg *config.Config) ([]repository.Archiver, error) {
	var archivers []repository.Archiver
	for _, backend := range cfg.Archive.Backends {
		switch backend {
		case "kafka":
			producer, err := pkgkafka.NewProducer(
				pkgkafka.WithBrokers(cfg.Archive.Kafka.Brokers),
				pkgkafka.WithCompression(cfg.Archive.Kafka.Compression),
				pkgkafka.WithRequiredAcks(cfg.Archive.Kafka.RequiredAcks),
				pkgkafka.WithTimeouts(cfg.Archive.Kafka.WriteTimeout, cfg.Archive.Kafka.ReadTimeout),
			)
			if err != nil {
				return nil, fmt.Errorf("kafka producer: %w", err)
			}
			archivers = append(archivers, internalrepo.NewKafkaTickArchiver(producer, cfg.Archive.Kafka.Topic))
		case "clickhouse":
			client, err := pkgch.NewClient(
				pkgch.WithHost(cfg.Archive.ClickHouse.Host),
				pkgch.WithPort(cfg.Archive.ClickHouse.Port),
				pkgch.WithDatabase(cfg.Archive.ClickHouse.Database),
				pkgch.WithCredentials(cfg.Archive.ClickHouse.User, cfg.Archive.ClickHouse.Password),
				pkgch.WithDialTimeout(cfg.Archive.ClickHouse.DialTimeout),
			)
			if err != nil {
				return nil, fmt.Errorf("clickhouse client: %w", err)
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			archiver, err := internalrepo.NewClickHouseTickArchiver(ctx, client, cfg.Archive.ClickHouse.Table)
			cancel()
			if err != nil {
				_ = client.Close()
				return nil, fmt.Errorf("clickhouse archiver: %w", err)
			}
			archivers = append(archivers, archiver)
		default:
			return nil, fmt.Errorf("unknown archive backend %q", backend)
		}
	}
	return archivers, nil
}

// ProvideClosers collects everything that must be closed on exit.
func ProvideClosers(archivers []repository.Archiver) []io.Closer {
	closers := make([]io.Closer, 0, len(archivers))
	for _, a := range archivers {
		closers = append(closers, a)
	}
	return closers
}

// ProvideTickRunner wires the daily invocation use case.
func ProvideTickRunner(
	cfg *config.Config,
	history repository.HistoryStore,
	state repository.StateStore,
	driver *sim.Driver,
	backfiller *sim.Backfiller,
	m repository.Metrics,
	log *logger.Logger,
	publisher repository.ItemPublisher,
	archivers []repository.Archiver,
	page *usecase.PageWriter,
) *usecase.TickRunner {
	opts := []usecase.TickRunnerOption{
		usecase.WithPage(page),
		usecase.WithArchivers(archivers...),
	}
	if publisher != nil {
		opts = append(opts, usecase.WithPublisher(publisher, cfg.Publish.Timeout))
	}
	return usecase.NewTickRunner(history, state, driver, backfiller, m, log, cfg.Item.Symbol, opts...)
}

// ProvideHandler wires the read-only HTTP API.
func ProvideHandler(
	cfg *config.Config,
	log *logger.Logger,
	history repository.HistoryStore,
	cacheSvc cache.Service,
	page *usecase.PageWriter,
) xhttp.Handler {
	return api.NewHistoryEchoHandler(
		log,
		history,
		cacheSvc,
		page,
		cfg.Storage.PagePath,
		cfg.Storage.HistoryPath,
		cfg.Cache.TTL,
	)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	runner *usecase.TickRunner,
	handler xhttp.Handler,
	closers []io.Closer,
) *server.App {
	return server.New(cfg, log, runner, handler, closers)
}
