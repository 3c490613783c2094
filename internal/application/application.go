package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Singhutkarsh-tech/pdfpayroll/internal/api"
	"github.com/Singhutkarsh-tech/pdfpayroll/internal/config"
	"github.com/Singhutkarsh-tech/pdfpayroll/internal/report"
	"github.com/Singhutkarsh-tech/pdfpayroll/internal/storage"
	"github.com/Singhutkarsh-tech/pdfpayroll/internal/validator"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	storage   storage.Storage
	validator *validator.Validator
	reports   *report.Generator
	handler   *api.Handler
	router    http.Handler
	logger    *zap.Logger
	server    *http.Server
}

// New initializes the application with all dependencies from the provided
// configuration. An empty data directory is seeded with the default state
// rules so the server is usable immediately.
func New(cfg config.Settings, logger *zap.Logger) (*App, error) {
	if err := cfg.CreateDirectories(); err != nil {
		return nil, fmt.Errorf("failed to prepare directories: %w", err)
	}

	store, err := storage.NewFileStorage(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open state rules storage: %w", err)
	}

	states, err := store.States()
	if err != nil {
		return nil, fmt.Errorf("failed to list stored states: %w", err)
	}
	if len(states) == 0 {
		if err := storage.SeedDefaults(store); err != nil {
			return nil, fmt.Errorf("failed to seed default state rules: %w", err)
		}
		logger.Info("seeded default state rules", zap.Strings("states", storage.DefaultStates()))
	}

	v := validator.New(cfg.SupportedStates)

	reports, err := report.NewGenerator(cfg.ReportsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open reports directory: %w", err)
	}

	handler := api.NewHandler(store, v, reports, cfg.API)
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		storage:   store,
		validator: v,
		reports:   reports,
		handler:   handler,
		router:    router,
		logger:    logger,
		server:    NewServer(cfg, router),
	}, nil
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Settings, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
