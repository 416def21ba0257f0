package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/canteiro/internal/cli"
	"github.com/alexanderramin/canteiro/internal/config"
	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/repository"
	"github.com/alexanderramin/canteiro/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger(os.Stderr, cfg)

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug("database opened", "path", cfg.DBPath)

	store := repository.NewStore(database)
	uow := db.NewSQLiteUnitOfWork(database)

	engineCfg := service.EngineConfig{
		TemplateID:      cfg.TemplateID,
		Cascade:         cfg.Cascade,
		ConflictRetries: cfg.ConflictRetries,
	}
	var observers []service.UseCaseObserver
	if cfg.LogCalls {
		observers = append(observers, service.NewLogUseCaseObserver(logger))
	}

	app := &cli.App{
		Constructions: service.NewConstructionService(store.Constructions, uow, engineCfg, observers...),
		Phases:        service.NewPhaseService(store.Phases, uow, engineCfg, observers...),
		Stages:        service.NewStageService(store.Stages, uow, engineCfg, observers...),
		Tasks:         service.NewTaskService(store.Tasks, uow, engineCfg, observers...),
		Progress:      service.NewProgressService(uow, engineCfg, observers...),
		Templates:     service.NewTemplateService(uow, engineCfg, observers...),
		Locale:        cfg.Locale,
	}

	// Confirmation prompts only run on an interactive terminal.
	app.IsInteractive = func() bool {
		return config.IsTerminal(os.Stdin)
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
