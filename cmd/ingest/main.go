package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/123jlee/dfsanalyzer/internal/config"
	"github.com/123jlee/dfsanalyzer/internal/dataprocessing"
	"github.com/123jlee/dfsanalyzer/internal/infrastructure"
	"github.com/123jlee/dfsanalyzer/internal/services"
	"github.com/123jlee/dfsanalyzer/internal/store"
	"github.com/123jlee/dfsanalyzer/pkg/contracts"
)

func main() {
	standingsPath := flag.String("standings", "", "contest standings CSV (required)")
	salariesPath := flag.String("salaries", "", "salary export CSV (required)")
	outDir := flag.String("out", "", "snapshot output directory (defaults to configured data dir)")
	workbook := flag.String("xlsx", "", "optional path for an xlsx workbook report")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		os.Stdout.WriteString(contracts.GetVersionString() + "\n")
		return
	}

	if *standingsPath == "" || *salariesPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, logCloser, err := infrastructure.SetupLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	} else {
		defer logCloser.Close()
	}

	dataDir := cfg.Paths.DataDir
	if *outDir != "" {
		dataDir = *outDir
	}

	logger.Info("Starting contest ingest",
		slog.String("standings", *standingsPath),
		slog.String("salaries", *salariesPath),
		slog.String("data_dir", dataDir))

	ingestor := dataprocessing.NewIngestor(logger, dataprocessing.Options{
		Site:  cfg.Ingest.Site,
		Sport: cfg.Ingest.Sport,
		Combo: cfg.Ingest.Combo,
	})
	writer := store.NewWriter(dataDir, logger)
	ingestSvc := services.NewIngestService(ingestor, writer, logger)

	set, err := ingestSvc.Run(context.Background(), *standingsPath, *salariesPath)
	if err != nil {
		logger.Error("Ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *workbook != "" {
		if err := store.WriteWorkbook(*workbook, set); err != nil {
			logger.Error("Workbook export failed",
				slog.String("path", *workbook),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Workbook written", slog.String("path", *workbook))
	}

	logger.Info("Ingest complete",
		slog.String("run_id", set.Meta.RunID),
		slog.String("snapshot_dir", set.Meta.StoragePath),
		slog.Int("entries", len(set.Entries)),
		slog.Int("users", set.Meta.NUsers),
		slog.Int("unmatched_players", len(set.UnmatchedPlayers)))
}
