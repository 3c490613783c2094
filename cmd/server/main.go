package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/Singhutkarsh-tech/pdfpayroll/internal/application"
	"github.com/Singhutkarsh-tech/pdfpayroll/internal/config"
	"github.com/Singhutkarsh-tech/pdfpayroll/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("payroll-server", "Payroll MVP - calculates Indian salary breakdowns with state-specific compliance")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	port := kingpinApp.Flag("port", "HTTP port exposed by the service").String()
	baseDir := kingpinApp.Flag("base-dir", "Base directory for data, reports, and logs").String()
	statesStr := kingpinApp.Flag("states", "Comma-separated supported states").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	rateLimitRPSFlag := kingpinApp.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := buildOverrides(*configFile, *port, *baseDir, *statesStr, *logLevel, *rateLimitRPSFlag, *rateLimitBurstFlag)

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

// buildOverrides translates parsed flag values into configuration overrides,
// leaving unset flags as nil so lower-precedence sources apply.
func buildOverrides(configFile, port, baseDir, states, logLevel string, rateLimitRPS float64, rateLimitBurst int) *config.CLIOverrides {
	overrides := &config.CLIOverrides{
		ConfigFile: configFile,
	}

	if port != "" {
		overrides.Port = &port
	}
	if baseDir != "" {
		overrides.BaseDir = &baseDir
	}
	if states != "" {
		overrides.StatesStr = &states
	}
	if logLevel != "" {
		overrides.LogLevel = &logLevel
	}
	if rateLimitRPS >= 0 {
		overrides.RateLimitRPS = &rateLimitRPS
	}
	if rateLimitBurst >= 0 {
		overrides.RateLimitBurst = &rateLimitBurst
	}
	return overrides
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
