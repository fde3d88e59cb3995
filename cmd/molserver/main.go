// molserver is the depiction API server: compound resolution, 2D/3D
// rendering, and infobox generation over HTTP, with Redis-cached PubChem
// lookups and MinIO artifact storage.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wikimol/wikimolgen/internal/application/compound"
	"github.com/wikimol/wikimolgen/internal/application/render"
	"github.com/wikimol/wikimolgen/internal/config"
	"github.com/wikimol/wikimolgen/internal/infrastructure/database/redis"
	"github.com/wikimol/wikimolgen/internal/infrastructure/monitoring/logging"
	"github.com/wikimol/wikimolgen/internal/infrastructure/monitoring/prometheus"
	"github.com/wikimol/wikimolgen/internal/infrastructure/pubchem"
	"github.com/wikimol/wikimolgen/internal/infrastructure/storage"
	miniostore "github.com/wikimol/wikimolgen/internal/infrastructure/storage/minio"
	httpserver "github.com/wikimol/wikimolgen/internal/interfaces/http"
	"github.com/wikimol/wikimolgen/internal/interfaces/http/handlers"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "config file path (default: WIKIMOL_* env + built-in defaults)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logFormat := cfg.Log.Format
	if logFormat == "text" {
		logFormat = "console"
	}
	logger, err := logging.NewLogger(logging.Config{
		Level:  cfg.Log.Level,
		Format: logFormat,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)

	logger.Info("starting molserver",
		logging.String("version", Version),
		logging.String("commit", GitCommit),
		logging.String("built", BuildDate),
		logging.Int("port", cfg.Server.Port))

	// Metrics
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "wikimol",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		logger.Fatal("failed to initialize metrics", logging.Err(err))
	}
	metrics := prometheus.NewAppMetrics(collector)

	// Redis-cached PubChem resolver
	redisClient := redis.NewClient(cfg.Redis)
	cache := redis.NewCache(redisClient, logger,
		redis.WithPrefix(cfg.Redis.KeyPrefix),
		redis.WithDefaultTTL(cfg.Redis.DefaultTTL))
	resolver := pubchem.NewCachedResolver(
		pubchem.NewClient(cfg.Resolver, logger), cache, cfg.Resolver.CacheTTL, logger)

	// Artifact storage: MinIO when credentials are configured, local
	// filesystem otherwise.
	var store storage.ArtifactStore
	if cfg.MinIO.AccessKey != "" {
		store, err = miniostore.NewStore(cfg.MinIO, logger)
		if err != nil {
			logger.Fatal("failed to initialize minio store", logging.Err(err))
		}
	} else {
		store, err = storage.NewLocalStore("./artifacts")
		if err != nil {
			logger.Fatal("failed to initialize local store", logging.Err(err))
		}
		logger.Warn("minio endpoint not configured, storing artifacts on the local filesystem")
	}

	// Application services and HTTP surface
	renderSvc := render.NewService(cfg, resolver, store, metrics, logger)
	compoundSvc := compound.NewService(resolver, metrics, logger)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		RenderHandler:   handlers.NewRenderHandler(renderSvc, logger),
		CompoundHandler: handlers.NewCompoundHandler(compoundSvc, logger),
		HealthHandler: handlers.NewHealthHandler(Version, metrics,
			handlers.CheckerFunc{ComponentName: "redis", Fn: cache.Ping},
			handlers.CheckerFunc{ComponentName: "storage", Fn: func(ctx context.Context) error {
				_, err := store.Exists(ctx, "healthcheck")
				return err
			}},
		),
		Logger:           logger,
		Metrics:          metrics,
		MetricsCollector: collector,
	})

	srv := httpserver.NewServer(cfg.Server, router, logger)
	errCh := srv.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("http server failed", logging.Err(err))
		}
	}

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown error", logging.Err(err))
	}
	if err := redisClient.Close(); err != nil {
		logger.Error("redis close error", logging.Err(err))
	}
	logger.Info("molserver stopped")
}

// loadConfig prefers an explicit file and falls back to environment-only
// configuration for containerized deployments.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}
