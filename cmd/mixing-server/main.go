// Mixing economy MCP server
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/s1tools/mixing-server/internal/mixing/config"
	"github.com/s1tools/mixing-server/internal/mixing/db"
	"github.com/s1tools/mixing-server/internal/mixing/engine"
	"github.com/s1tools/mixing-server/internal/mixing/mcp"
	syncpkg "github.com/s1tools/mixing-server/internal/mixing/sync"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to YAML config file")
	dbPath := flag.String("db", "", "Path to SQLite database (overrides config)")
	importCatalog := flag.String("import-catalog", "", "Import catalog from scraped JSON file")
	reseed := flag.Bool("seed", false, "Replace the stored catalog with the built-in dataset")
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	flag.Parse()

	// Load config
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *verbose {
		cfg.Verbose = true
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if cfg.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Create context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down...")
		cancel()
	}()

	// Open database
	database, err := db.OpenAndInit(ctx, cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = database.Close() }()

	store := db.NewCatalogStore(database)
	importer := syncpkg.NewImporter(database)

	// Seed the built-in dataset on first run or on request
	empty, err := store.IsEmpty(ctx)
	if err != nil {
		logger.Error("failed to inspect catalog store", "error", err)
		os.Exit(1)
	}
	if empty || *reseed {
		logger.Info("seeding built-in catalog")
		if err := importer.SeedBuiltin(ctx); err != nil {
			logger.Error("failed to seed catalog", "error", err)
			os.Exit(1)
		}
	}

	// Handle import command
	if *importCatalog != "" {
		logger.Info("importing catalog", "file", *importCatalog)
		if err := importer.ImportCatalogFromFile(ctx, *importCatalog); err != nil {
			logger.Error("failed to import catalog", "error", err)
			os.Exit(1)
		}
		logger.Info("catalog imported successfully")

		// If only doing the import, exit
		if flag.NArg() == 0 && *configPath == "" {
			return
		}
	}

	// Load snapshot and create engine
	cat, err := store.Load(ctx)
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	products, mixers, effects := cat.Counts()
	logger.Info("catalog loaded", "products", products, "mixers", mixers, "effects", effects)

	eng, err := engine.NewEngine(cat, cfg.Search.CacheSize)
	if err != nil {
		logger.Error("failed to create engine", "error", err)
		os.Exit(1)
	}

	// Run MCP server
	server := mcp.NewServer(eng, store, cfg.Search, logger)
	logger.Info("starting MCP server", "db", cfg.DBPath)
	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	fmt.Fprintln(os.Stderr, "server stopped")
}
