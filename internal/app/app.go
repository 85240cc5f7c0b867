package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/rileyblackwell/imagi-oasis/internal/api"
	"github.com/rileyblackwell/imagi-oasis/internal/config"
	"github.com/rileyblackwell/imagi-oasis/internal/credits"
	"github.com/rileyblackwell/imagi-oasis/internal/database"
	"github.com/rileyblackwell/imagi-oasis/internal/llm"
	"github.com/rileyblackwell/imagi-oasis/internal/projectfs"
	"github.com/rileyblackwell/imagi-oasis/internal/repository"
	"github.com/rileyblackwell/imagi-oasis/internal/service"
)

// App holds the wired application: the database handle and the configured
// HTTP server. Construction and running are split so tests can build the
// full dependency graph without binding a port.
type App struct {
	DB     *sql.DB
	Server *http.Server
}

// NewApp wires every layer together from configuration.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("could not initialize database: %w", err)
	}
	slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)

	repo := repository.NewSQLiteRepository(db)
	ledger := credits.NewLedger(repo)
	loader := projectfs.NewLoader(cfg.ProjectsRoot)

	vendorTimeout := time.Duration(cfg.VendorTimeoutSeconds) * time.Second
	dispatcher := llm.NewDispatcher(
		llm.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, vendorTimeout),
		llm.NewAnthropicClient(cfg.AnthropicBaseURL, cfg.AnthropicAPIKey, vendorTimeout),
	)

	generationService := service.NewGenerationService(repo, dispatcher, ledger, loader, slog.Default())
	conversationService := service.NewConversationService(repo)

	router := api.NewRouter(
		api.NewGenerationHandler(generationService, cfg),
		api.NewConversationHandler(conversationService),
		api.NewCreditHandler(ledger),
		api.NewModelHandler(),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		// The generate endpoint holds the connection for a vendor round trip.
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	return &App{DB: db, Server: server}, nil
}

// Run is the process entrypoint: load config, wire the app, serve until a
// shutdown signal arrives. Returns the process exit code.
func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)
	logConfigSource()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to build application", "error", err)
		return 1
	}
	defer func() {
		if err := app.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", app.Server.Addr)
		errCh <- app.Server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := app.Server.Shutdown(ctx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			return 1
		}
	}

	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
