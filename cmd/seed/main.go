package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/Singhutkarsh-tech/pdfpayroll/internal/config"
	"github.com/Singhutkarsh-tech/pdfpayroll/internal/logging"
	"github.com/Singhutkarsh-tech/pdfpayroll/internal/storage"
)

func main() {
	kingpinApp := kingpin.New("payroll-seed", "Writes the default state compliance rules into the data directory")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	baseDir := kingpinApp.Flag("base-dir", "Base directory for data, reports, and logs").String()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}
	if *baseDir != "" {
		overrides.BaseDir = baseDir
	}

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

	if err := run(cfg, logger); err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
}

// run writes every default state rules file and logs its location.
func run(cfg config.Settings, logger *zap.Logger) error {
	if err := cfg.CreateDirectories(); err != nil {
		return err
	}

	store, err := storage.NewFileStorage(cfg.DataDir)
	if err != nil {
		return err
	}

	states := storage.DefaultStates()
	for _, state := range states {
		rules, ok := storage.DefaultStateRules(state)
		if !ok {
			return fmt.Errorf("no default rules defined for %s", state)
		}
		if err := store.SetStateRules(state, rules); err != nil {
			return fmt.Errorf("seed %s: %w", state, err)
		}
		logger.Info("seeded state rules",
			zap.String("state", state),
			zap.String("file", cfg.StateFilePath(state)),
		)
	}

	logger.Info("seeding complete", zap.Int("states", len(states)))
	return nil
}
