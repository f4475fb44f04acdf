// Package dataprocessing turns raw DraftKings contest exports into the
// normalized contest tables the rest of the application consumes.
//
// The package is organized around three concerns:
//
// 1. Loaders: read the standings and salary CSVs, split entry rows from
// field-ownership rows, and index salaries for joining.
//
// 2. Parsers: small pure helpers for the export's embedded formats —
// lineup strings ("PG Name SG Name ..."), entry names with multi-entry
// counters ("user (3/20)"), and game info ("AWY@HOM time").
//
// 3. Ingestor: orchestrates a full run, producing entries enriched with
// canonical lineup keys, duplicate counts and percentiles, per-player
// exploded rows joined against salaries, field ownership, and the
// aggregation tables (combos, stacks, exposure).
//
// Name matching folds diacritics and punctuation so "José Núñez" in the
// standings joins "Jose Nunez" in the salary file. Rows that fail to
// parse are skipped with a warning rather than failing the run; players
// that never match any salary record are reported in the
// UnmatchedPlayers table.
package dataprocessing
