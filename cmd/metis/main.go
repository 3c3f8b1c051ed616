package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/metis/internal/cli"
	"github.com/alexanderramin/metis/internal/config"
	"github.com/alexanderramin/metis/internal/db"
	"github.com/alexanderramin/metis/internal/intelligence"
	"github.com/alexanderramin/metis/internal/llm"
	"github.com/alexanderramin/metis/internal/repository"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load config: env override or default ~/.metis/config.yaml
	cfgPath := os.Getenv("METIS_CONFIG")
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultPath()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// lipgloss reads these when deciding whether to emit color.
	switch cfg.Color {
	case "never":
		os.Setenv("NO_COLOR", "1")
	case "always":
		os.Setenv("CLICOLOR_FORCE", "1")
	}

	// Determine DB path: env var, config, or default ~/.metis/metis.db
	dbPath := os.Getenv("METIS_DB")
	if dbPath == "" {
		dbPath = cfg.DatabasePath
	}
	if dbPath == "" {
		dbPath, err = config.DefaultDatabasePath()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
	}
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logger := zap.NewNop()
	if os.Getenv("METIS_DEBUG") != "" {
		if dev, err := zap.NewDevelopment(); err == nil {
			logger = dev
		}
	}
	defer logger.Sync()

	app := &cli.App{
		Prefs:       repository.NewSQLitePreferencesRepo(database),
		Completions: repository.NewSQLiteCompletionRepo(database),
		Plans:       repository.NewSQLitePlanRepo(database),
		UoW:         db.NewSQLiteUnitOfWork(database),
		Config:      cfg,
		Logger:      logger,
	}

	// Detect interactive terminal for wizard entrypoints.
	app.Interactive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Extraction always works: it falls back to pattern matching when no
	// LLM is reachable. Estimation and ranking are wired only when the
	// LLM is enabled; without them the pipeline degrades to heuristics.
	llmCfg := llm.LoadConfig()
	var client llm.Client
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		client = llm.NewOllamaClient(llmCfg, observer)
		app.Estimator = intelligence.NewEstimateService(client)
		app.Ranker = intelligence.NewRankService(client)
	}
	app.Extractor = intelligence.NewExtractService(client)

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
