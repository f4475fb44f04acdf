package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/123jlee/dfsanalyzer/internal/dataprocessing"
	"github.com/123jlee/dfsanalyzer/internal/store"
	"github.com/123jlee/dfsanalyzer/pkg/contracts/domain"
)

// IngestService runs the full contest pipeline and persists the result.
type IngestService struct {
	ingestor *dataprocessing.Ingestor
	writer   *store.Writer
	logger   *slog.Logger
}

// NewIngestService wires an ingestor and snapshot writer together.
func NewIngestService(ingestor *dataprocessing.Ingestor, writer *store.Writer, logger *slog.Logger) *IngestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestService{ingestor: ingestor, writer: writer, logger: logger}
}

// Run ingests the contest files and writes the snapshot, returning the
// table set with its storage path filled in.
func (s *IngestService) Run(ctx context.Context, standingsPath, salariesPath string) (*domain.TableSet, error) {
	set, err := s.ingestor.Ingest(ctx, standingsPath, salariesPath)
	if err != nil {
		return nil, fmt.Errorf("ingest contest: %w", err)
	}

	dir, err := s.writer.WriteSnapshot(set)
	if err != nil {
		return nil, fmt.Errorf("persist snapshot: %w", err)
	}

	s.logger.InfoContext(ctx, "contest ingested",
		slog.String("run_id", set.Meta.RunID),
		slog.String("snapshot_dir", dir),
		slog.Int("entries", len(set.Entries)),
		slog.Int("unmatched_players", len(set.UnmatchedPlayers)))
	return set, nil
}
