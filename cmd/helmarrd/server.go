package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	v1 "github.com/helmarr/helmarr/internal/api/v1"
	"github.com/helmarr/helmarr/internal/config"
	"github.com/helmarr/helmarr/internal/events"
	"github.com/helmarr/helmarr/internal/history"
	"github.com/helmarr/helmarr/internal/migrations"
	"github.com/helmarr/helmarr/internal/plugin"
	"github.com/helmarr/helmarr/internal/plugin/historysync"
	"github.com/helmarr/helmarr/internal/server"
	"github.com/helmarr/helmarr/internal/site"
	"github.com/helmarr/helmarr/internal/syncer"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// reportLastRun logs the outcome of the most recent completed import run,
// if the event log holds one.
func reportLastRun(eventLog *events.EventLog, logger *slog.Logger) {
	raw, _, err := eventLog.Recent(events.EventSyncRunCompleted, 1, 0)
	if err != nil || len(raw) == 0 {
		return
	}
	e, err := events.DefaultRegistry().Unmarshal(raw[0])
	if err != nil {
		logger.Warn("undecodable event in log", "event_id", raw[0].ID, "error", err)
		return
	}
	if done, ok := e.(*events.SyncRunCompleted); ok {
		logger.Info("last completed import run",
			"run_id", done.RunID,
			"written", done.Written,
			"skipped", done.Skipped,
			"failed", done.Failed,
			"at", done.OccurredAt().Format(time.RFC3339),
		)
	}
}

func runServer(configPath string) error {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// Single-instance lock
	if err := os.MkdirAll(filepath.Dir(cfg.Daemon.LockPath), 0755); err != nil {
		return fmt.Errorf("create lock dir: %w", err)
	}
	lock := flock.New(cfg.Daemon.LockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another instance holds %s", cfg.Daemon.LockPath)
	}
	defer func() { _ = lock.Unlock() }()

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Run migrations
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// === Stores ===
	siteStore := site.NewStore(db)
	transferStore := history.NewTransferStore(db)
	downloadStore := history.NewDownloadStore(db)
	pluginDataStore := history.NewPluginDataStore(db)
	pluginConfig := plugin.NewConfigStore(db)

	// === Events ===
	eventLog := events.NewEventLog(db)
	bus := events.NewBus(eventLog, logger)
	reportLastRun(eventLog, logger)

	// === Import pipeline ===
	coord := syncer.NewCoordinator(
		transferStore,
		downloadStore,
		pluginDataStore,
		historysync.NewSettingsSaver(pluginConfig),
		logger,
	)
	coord.SetBus(bus)
	coord.SetSiteNames(siteStore)

	// === Plugins ===
	registry := plugin.NewRegistry()
	hs := historysync.New(coord, logger)
	if err := registry.Register(hs); err != nil {
		return fmt.Errorf("register plugin: %w", err)
	}
	defer func() {
		if err := registry.StopAll(); err != nil {
			logger.Error("plugin shutdown", "error", err)
		}
	}()

	// Restore persisted plugin configuration. An armed import fires here.
	raw, err := pluginConfig.Load(historysync.ID)
	switch {
	case errors.Is(err, plugin.ErrNoConfig):
	case err != nil:
		return fmt.Errorf("plugin config: %w", err)
	default:
		if err := hs.Init(raw); err != nil {
			logger.Warn("stored plugin config rejected", "plugin_id", historysync.ID, "error", err)
		}
	}

	// === HTTP Setup ===
	mux := http.NewServeMux()

	apiV1, err := v1.New(v1.ServerDeps{
		Sites:        siteStore,
		Transfers:    transferStore,
		Downloads:    downloadStore,
		PluginData:   pluginDataStore,
		Plugins:      registry,
		PluginConfig: pluginConfig,
		HistorySync:  hs,
		Bus:          bus,
		EventLog:     eventLog,
	})
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	apiV1.RegisterRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"database", cfg.Database.Path,
		"plugins", len(registry.List()),
		"log_level", cfg.Server.LogLevel,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := server.NewRunner(logRequests(mux, logger), bus, server.Config{Addr: addr}, logger)
	return runner.Run(ctx)
}
