package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/mgrinnell/lectern/internal/api"
	"github.com/mgrinnell/lectern/internal/cli"
	"github.com/mgrinnell/lectern/internal/db"
	"github.com/mgrinnell/lectern/internal/repository"
	"github.com/mgrinnell/lectern/internal/service"
	"github.com/mgrinnell/lectern/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := api.LoadConfig()

	// Local DB path: env var or default ~/.lectern/lectern.db
	dbPath := os.Getenv("LECTERN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".lectern", "lectern.db")
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening local database: %w", err)
	}
	defer database.Close()

	// API client, with call logging to stderr when enabled.
	var apiObserver api.Observer = api.NoopObserver{}
	var opObservers []service.OpObserver
	if cfg.LogCalls {
		apiObserver = api.NewLogObserver(os.Stderr)
		opObservers = append(opObservers, service.NewLogOpObserver(os.Stderr))
	}
	client := api.NewClient(cfg, apiObserver)

	// Local working state: in-memory store plus sqlite-backed repos.
	packages := store.NewPackageStore()
	draftRepo := repository.NewSQLiteDraftRepo(database)
	cacheRepo := repository.NewSQLitePackageCacheRepo(database)
	actionRepo := repository.NewSQLiteActionLogRepo(database)

	app := &cli.App{
		Generation: service.NewGenerationService(client, packages, cacheRepo, opObservers...),
		Packages:   service.NewPackageService(client, packages, cacheRepo, opObservers...),
		Review:     service.NewReviewService(client, cfg.ReviewerID, packages, draftRepo, actionRepo, opObservers...),
		Revisions:  service.NewRevisionService(client, cfg.ReviewerID, packages, actionRepo, opObservers...),
		Curriculum: service.NewCurriculumService(client),
		Ops:        client,
		Config:     cfg,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
