// Package pipeline orchestrates the batch: source preflight, destination
// creation, entry listing, the per-entry move loop, and summary reporting.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"segmv/internal/check"
	"segmv/internal/config"
	"segmv/internal/display"
	"segmv/internal/logging"
	"segmv/internal/naming"
)

// Run is the top-level batch entry point. It validates the source directory,
// ensures the destination exists, captures the entry listing once, processes
// each entry independently in sequence, and returns the ordered report.
//
// The returned error is non-nil only for fatal pre-entry failures (source
// precondition, destination creation, listing); per-entry failures are
// recorded in the Report and never abort the batch. The destination is not
// created when the source precondition fails.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (Report, RunStats, error) {
	var stats RunStats

	if err := check.SourceDir(cfg.SourceDir); err != nil {
		return nil, stats, err
	}
	if err := os.MkdirAll(cfg.DestDir, 0o755); err != nil {
		return nil, stats, fmt.Errorf("cannot create destination directory: %w", err)
	}

	// Listing is captured once; entries appearing afterwards are never
	// processed, and entries vanishing afterwards surface as not-found.
	entries, err := os.ReadDir(cfg.SourceDir)
	if err != nil {
		return nil, stats, fmt.Errorf("cannot list source directory: %w", err)
	}

	stats.Total = len(entries)
	log.Info("Found %d entries", stats.Total)
	log.Info("")

	report := make(Report, 0, len(entries))
	for i, entry := range entries {
		stats.Current = i + 1
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}
		report = append(report, processEntry(cfg, log, entry.Name(), &stats))
	}

	logSummary(log, &stats, report)
	return report, stats, nil
}

// processEntry handles one entry: derive the new name, attempt the move,
// classify the result, and log exactly one status line.
func processEntry(cfg *config.Config, log *logging.Logger, oldName string, stats *RunStats) EntryResult {
	res := EntryResult{OldName: oldName}

	newName, err := naming.Derive(oldName)
	if err != nil {
		res.Outcome, res.Err = OutcomeUnexpected, err
		stats.Failed++
		log.Error("[%d/%d] Unexpected error: %v", stats.Current, stats.Total, err)
		return res
	}
	res.NewName = newName
	log.Debug(cfg.Verbose, "[%d/%d] Derived '%s' -> '%s'", stats.Current, stats.Total, oldName, newName)

	src := filepath.Join(cfg.SourceDir, oldName)
	dst := filepath.Join(cfg.DestDir, newName)

	// Size is read before the move for the summary byte total.
	var size int64
	if fi, err := os.Lstat(src); err == nil {
		size = fi.Size()
	}

	if err := moveNoReplace(src, dst); err != nil {
		res.Outcome, res.Err = classify(err), err
		stats.Failed++
		switch res.Outcome {
		case OutcomeNotFound:
			log.Error("[%d/%d] Not found: %s", stats.Current, stats.Total, oldName)
		case OutcomeAlreadyExists:
			log.Error("[%d/%d] Already exists: %s (wanted by %s)", stats.Current, stats.Total, newName, oldName)
		default:
			log.Error("[%d/%d] Unexpected error: %v", stats.Current, stats.Total, err)
		}
		return res
	}

	res.Outcome = OutcomeMoved
	stats.Moved++
	stats.BytesMoved += size
	log.Success("[%d/%d] %s -> %s", stats.Current, stats.Total, oldName, newName)
	return res
}

func logSummary(log *logging.Logger, stats *RunStats, report Report) {
	log.Info("")
	log.Info("==============================")
	log.Info("Done: %d moved, %d failed", stats.Moved, stats.Failed)
	if stats.Failed > 0 {
		log.Info("  Not found: %d | Already exists: %d | Unexpected: %d",
			report.Count(OutcomeNotFound),
			report.Count(OutcomeAlreadyExists),
			report.Count(OutcomeUnexpected))
	}
	if stats.Moved > 0 {
		log.Info("  Total data moved: %s", display.FormatBytes(stats.BytesMoved))
	}
}
