package app

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"motinsight/domain/core"
	"motinsight/internal"
	"motinsight/ports"
)

// Pair names one make/model to generate a report for.
type Pair struct {
	Make  string `json:"make"`
	Model string `json:"model"`
}

// BatchResult is the manifest of one batch run.
type BatchResult struct {
	RunID     core.RunID    `json:"run_id"`
	Requested int           `json:"requested"`
	Generated int           `json:"generated"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Elapsed   time.Duration `json:"elapsed"`
}

// BatchService generates reports for many models. Each report is fully
// independent, so the batch fans out across a bounded worker pool; the
// engine itself stays single-threaded per report.
type BatchService struct {
	reports   *ReportService
	exporters []ports.ReportExporter
	log       *internal.Logger
}

// NewBatchService creates a batch service
func NewBatchService(reports *ReportService, exporters []ports.ReportExporter, log *internal.Logger) *BatchService {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &BatchService{
		reports:   reports,
		exporters: exporters,
		log:       log,
	}
}

// GenerateAll generates and exports reports for every pair with up to
// workers running concurrently. Per-model failures are counted and logged
// but do not abort the batch; only context cancellation stops it early.
func (b *BatchService) GenerateAll(ctx context.Context, pairs []Pair, workers int) (*BatchResult, error) {
	if workers < 1 {
		workers = 1
	}
	start := time.Now()
	result := &BatchResult{
		RunID:     core.RunID(core.NewID()),
		Requested: len(pairs),
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, pair := range pairs {
		pair := pair
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			count := func(counter *int) {
				mu.Lock()
				*counter++
				mu.Unlock()
			}

			report, err := b.reports.Generate(ctx, pair.Make, pair.Model)
			if err != nil {
				b.log.Error("report for %s %s failed: %v", pair.Make, pair.Model, err)
				count(&result.Failed)
				return nil
			}
			if report == nil {
				count(&result.Skipped)
				return nil
			}

			for _, exporter := range b.exporters {
				path, err := exporter.Export(ctx, report)
				if err != nil {
					b.log.Error("export for %s %s failed: %v", pair.Make, pair.Model, err)
					count(&result.Failed)
					return nil
				}
				b.log.Debug("wrote %s", path)
			}
			count(&result.Generated)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	result.Elapsed = time.Since(start)
	b.log.Info("batch %s: %d generated, %d skipped, %d failed in %s",
		result.RunID, result.Generated, result.Skipped, result.Failed, result.Elapsed)
	return result, nil
}
