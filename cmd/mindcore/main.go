package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mindcore/mindcore/config"
	"github.com/mindcore/mindcore/pkg/api"
	"github.com/mindcore/mindcore/pkg/api/events"
	"github.com/mindcore/mindcore/pkg/api/handlers"
	"github.com/mindcore/mindcore/pkg/hub"
	"github.com/mindcore/mindcore/pkg/logger"
	"github.com/mindcore/mindcore/pkg/metrics"
	"github.com/mindcore/mindcore/pkg/mind"
	"github.com/mindcore/mindcore/pkg/snapshot"
	"github.com/mindcore/mindcore/pkg/snapshot/badger"
	"github.com/mindcore/mindcore/pkg/snapshot/memory"
	"github.com/mindcore/mindcore/pkg/snapshot/redis"
	"github.com/mindcore/mindcore/pkg/telemetry/tracing"
	"github.com/mindcore/mindcore/pkg/version"
)

var (
	configPath  = flag.String("config", "", "Path to configuration file")
	versionFlag = flag.Bool("version", false, "Print version information")
	helpFlag    = flag.Bool("help", false, "Print help information")

	// CLI overrides
	appName      = flag.String("app-name", "", "Override app name")
	serverPort   = flag.Int("port", 0, "Override server port")
	logLevel     = flag.String("log-level", "", "Override log level")
	embeddingDim = flag.Int("embedding-dim", 0, "Override embedding dimension")
	maxSlots     = flag.Int("max-slots", 0, "Override memory slot capacity")
	debugMode    = flag.Bool("debug", false, "Enable debug mode")
)

func main() {
	flag.Parse()

	if *helpFlag {
		printHelp()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Println(version.String())
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath, buildOverrides())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration:\n%s\n", err)
		os.Exit(1)
	}

	logCfg := &logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	if cfg.App.Debug || *debugMode {
		logCfg.Level = logger.DebugLevel
	}
	log := logger.New(logCfg)
	logger.SetGlobal(log)

	log.Info("Starting mindcore",
		"version", version.Version,
		"buildTime", version.BuildTime,
		"gitCommit", version.GitCommit,
		"app", cfg.App.Name,
		"environment", cfg.App.Environment,
	)
	log.Debug("Configuration loaded", "config", cfg.String())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, cfg.App.Name, version.Version)
	if err != nil {
		log.Error("Failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	store, err := newSnapshotStore(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to create snapshot store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing snapshot store", "error", err)
		}
	}()

	metricsManager := metrics.NewManager(metrics.Config{
		Enabled:               cfg.Metrics.Enabled,
		Port:                  cfg.Metrics.Port,
		Path:                  cfg.Metrics.Path,
		UpdateDurationBuckets: metrics.DefaultConfig().UpdateDurationBuckets,
		QueryDurationBuckets:  metrics.DefaultConfig().QueryDurationBuckets,
		HTTPDurationBuckets:   metrics.DefaultConfig().HTTPDurationBuckets,
	})
	if metricsManager.Enabled() {
		go func() {
			log.Info("Starting metrics server", "port", cfg.Metrics.Port, "path", cfg.Metrics.Path)
			if err := metricsManager.StartServer(ctx, cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
				log.Error("Metrics server error", "error", err)
			}
		}()
	}

	rt, err := mind.NewRuntime(mind.Config{
		EmbeddingDim: cfg.Mind.EmbeddingDim,
		MaxSlots:     cfg.Mind.MaxSlots,
	})
	if err != nil {
		log.Error("Failed to create cognitive runtime", "error", err)
		os.Exit(1)
	}

	broadcaster := events.NewBroadcaster()
	stateHub, err := hub.NewStateHub(rt, hub.Options{
		Store:       store,
		Metrics:     metricsManager,
		Broadcaster: broadcaster,
		Logger:      log,
	})
	if err != nil {
		log.Error("Failed to create state hub", "error", err)
		os.Exit(1)
	}

	apiHandlers := &api.Handlers{
		State:   handlers.NewStateHandler(stateHub, log),
		Health:  handlers.NewHealthHandler(stateHub),
		Metrics: metricsManager,
	}

	if cfg.Server.WebSocket.Enabled {
		wsHandler := handlers.NewWebSocketHandler(log, handlers.WebSocketConfig{
			AllowedOrigins: cfg.Server.CORS.AllowedOrigins,
			PingInterval:   cfg.Server.WebSocket.PingInterval,
		})
		go wsHandler.Pump(ctx, broadcaster, cfg.Server.WebSocket.BufferSize)
		apiHandlers.WebSocket = wsHandler
	}

	httpServer := api.NewHTTPServer(cfg, log, apiHandlers)

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
		if err := httpServer.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	watcherDone := startConfigWatcher(ctx, cfg, log)

	log.Info("mindcore is running",
		"http_port", cfg.Server.Port,
		"metrics_port", cfg.Metrics.Port,
		"embedding_dim", cfg.Mind.EmbeddingDim,
		"max_slots", cfg.Mind.MaxSlots,
	)
	log.Info("Press Ctrl+C to stop")

	select {
	case sig := <-sigChan:
		log.Info("Received shutdown signal", "signal", sig)
	case err := <-serverErrChan:
		log.Error("HTTP server error", "error", err)
	case <-ctx.Done():
		log.Info("Context cancelled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	log.Info("Shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down HTTP server", "error", err)
	}

	cancel()
	if watcherDone != nil {
		<-watcherDone
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Error shutting down tracing", "error", err)
	}

	log.Info("mindcore stopped gracefully")
}

// newSnapshotStore builds the snapshot backend selected by the
// configuration, falling back to the in-memory store for unknown types.
func newSnapshotStore(ctx context.Context, cfg *config.Config, log logger.Logger) (snapshot.Store, error) {
	switch cfg.Snapshot.Type {
	case "badger":
		store, err := badger.NewBadgerStore(&badger.Config{
			Path:             cfg.Snapshot.Badger.Path,
			SyncWrites:       cfg.Snapshot.Badger.SyncWrites,
			ValueLogFileSize: cfg.Snapshot.Badger.ValueLogFileSize,
		})
		if err != nil {
			return nil, err
		}
		log.Info("Initialized Badger snapshot store", "path", cfg.Snapshot.Badger.Path)
		return store, nil
	case "redis":
		store, err := redis.NewRedisStore(ctx, &redis.Config{
			Addr:     cfg.Snapshot.Redis.Address,
			Password: cfg.Snapshot.Redis.Password,
			DB:       cfg.Snapshot.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		log.Info("Initialized Redis snapshot store", "address", cfg.Snapshot.Redis.Address)
		return store, nil
	case "memory":
		log.Info("Initialized memory snapshot store")
		return memory.NewMemoryStore(), nil
	default:
		log.Warn("Unknown snapshot store type, using memory store", "type", cfg.Snapshot.Type)
		return memory.NewMemoryStore(), nil
	}
}

// startConfigWatcher hot-reloads the log level and format when the
// config file changes. The runtime shape is fixed at startup and is
// deliberately not reloadable. Returns nil when no config file is in
// use.
func startConfigWatcher(ctx context.Context, cfg *config.Config, log logger.Logger) <-chan struct{} {
	if *configPath == "" {
		return nil
	}

	watcher, err := config.NewWatcher(*configPath, config.NewLoader())
	if err != nil {
		log.Warn("Config watcher disabled", "error", err)
		return nil
	}

	current := config.ExtractHotReloadable(cfg)
	watcher.OnChange(func(next *config.Config) {
		reloaded := config.ExtractHotReloadable(next)
		if !current.Changed(reloaded) {
			return
		}
		log.Info("Applying hot-reloaded logging configuration",
			"level", reloaded.LogLevel,
			"format", reloaded.LogFormat,
		)
		logger.SetGlobal(logger.New(&logger.Config{
			Level:  logger.ParseLevel(reloaded.LogLevel),
			Format: reloaded.LogFormat,
			Output: next.Log.Output,
		}))
		current = reloaded
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := watcher.Watch(ctx); err != nil {
			log.Warn("Config watcher stopped", "error", err)
		}
	}()
	return done
}

func buildOverrides() map[string]interface{} {
	overrides := make(map[string]interface{})

	if *appName != "" {
		overrides["app.name"] = *appName
	}
	if *serverPort != 0 {
		overrides["server.port"] = *serverPort
	}
	if *logLevel != "" {
		overrides["log.level"] = *logLevel
	}
	if *embeddingDim != 0 {
		overrides["mind.embedding_dim"] = *embeddingDim
	}
	if *maxSlots != 0 {
		overrides["mind.max_slots"] = *maxSlots
	}
	if *debugMode {
		overrides["app.debug"] = true
	}

	return overrides
}

func printHelp() {
	fmt.Printf("mindcore - bounded experience accumulation service\n\n")
	fmt.Printf("Usage: mindcore [options]\n\n")
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
	fmt.Printf("\nExamples:\n")
	fmt.Printf("  mindcore                                   # Run with default config\n")
	fmt.Printf("  mindcore -config config.yaml               # Use specific config file\n")
	fmt.Printf("  mindcore -port 9090 -log-level debug       # Override specific options\n")
	fmt.Printf("  mindcore -embedding-dim 1536 -max-slots 64 # Override runtime shape\n")
	fmt.Printf("  mindcore -version                          # Print version info\n")
}
