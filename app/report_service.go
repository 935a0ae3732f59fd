package app

import (
	"context"

	"motinsight/domain/insight"
	"motinsight/internal"
	"motinsight/internal/analysis"
	"motinsight/internal/baseline"
	"motinsight/internal/config"
	"motinsight/internal/errors"
	"motinsight/internal/grouping"
	"motinsight/ports"
)

// ReportService generates one known-issues report per (make, model). The
// pipeline is synchronous and shares no mutable state between requests
// beyond the classifier's guarded memo, so one service instance is safe
// under parallel batch generation.
type ReportService struct {
	store      ports.FactStore
	classifier *grouping.Classifier
	cfg        config.AnalysisConfig
	log        *internal.Logger
}

// NewReportService creates a report service
func NewReportService(store ports.FactStore, classifier *grouping.Classifier, cfg config.AnalysisConfig, log *internal.Logger) *ReportService {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &ReportService{
		store:      store,
		classifier: classifier,
		cfg:        cfg,
		log:        log,
	}
}

// Generate computes the report for a make/model. It returns (nil, nil) when
// the store has no test data for the model — a normal outcome for obscure
// variants, not a fault. Per-defect data insufficiency never surfaces from
// here; those defects are skipped inside ranking.
//
// The three baseline rate maps are built exactly once per report and passed
// down — recomputing them per defect would be quadratic in defect count.
func (s *ReportService) Generate(ctx context.Context, mk, model string) (*insight.Report, error) {
	totals, err := s.store.ModelTotals(ctx, mk, model)
	if err != nil {
		return nil, errors.WithCode(err, errors.CodeStore, "failed to load model totals")
	}
	if totals == nil || totals.TotalTests == 0 {
		s.log.Info("no test data for %s %s, skipping report", mk, model)
		return nil, nil
	}

	rows, err := s.store.ModelDefects(ctx, mk, model)
	if err != nil {
		return nil, errors.WithCode(err, errors.CodeStore, "failed to load model defects")
	}

	years, err := s.store.YearBreakdown(ctx, mk, model)
	if err != nil {
		return nil, errors.WithCode(err, errors.CodeStore, "failed to load year breakdown")
	}

	rates, err := s.buildRates(ctx, mk, years)
	if err != nil {
		return nil, err
	}

	rankCfg := analysis.RankConfig{
		Thresholds: insight.Thresholds{
			Major:    s.cfg.MajorThreshold,
			Known:    s.cfg.KnownThreshold,
			Elevated: s.cfg.ElevatedThreshold,
		},
		MinOccurrences: s.cfg.MinOccurrences,
		MaxPerTier:     s.cfg.MaxPerTier,
	}

	groups := analysis.AggregateGroups(s.classifier, rows, totals.TotalTests)
	individual := analysis.AggregateIndividual(s.classifier, rows, totals.TotalTests)

	report := &insight.Report{
		Make:       mk,
		Model:      model,
		TotalTests: totals.TotalTests,
		Grouped:    analysis.RankGroups(groups, rates, totals.TotalTests, rankCfg),
		Individual: analysis.RankIndividual(individual, rates, totals.TotalTests, rankCfg),
		Systems:    analysis.Summarize(rows, totals.TotalTests),
	}
	report.BestYears, report.WorstYears = analysis.BestWorstYears(years, 3, s.cfg.MinYearTests)
	report.FleetMeanPassPct, report.FleetMedianPassPct = analysis.FleetPassStats(years)

	enricher := analysis.NewEnricher(s.store, s.cfg.YearAffectedMultiplier, s.cfg.PrematureBands, s.log)
	for _, bucket := range []*insight.SeverityBuckets{&report.Grouped, &report.Individual} {
		for _, tier := range [][]insight.KnownIssue{bucket.Major, bucket.Known, bucket.Elevated} {
			for i := range tier {
				enricher.Enrich(ctx, mk, model, &tier[i])
			}
		}
	}

	s.log.Debug("report for %s %s: %d grouped, %d individual issues",
		mk, model, report.Grouped.Count(), report.Individual.Count())
	return report, nil
}

// buildRates loads the three reference populations and builds the per-report
// rate maps. The year cohort spans the model's observed model years.
func (s *ReportService) buildRates(ctx context.Context, mk string, years []insight.YearStat) (*baseline.RateSet, error) {
	national, err := s.store.NationalDefectCounts(ctx)
	if err != nil {
		return nil, errors.WithCode(err, errors.CodeStore, "failed to load national defect counts")
	}

	var yearCohort insight.DefectCountSet
	if len(years) > 0 {
		minYear, maxYear := years[0].Year, years[0].Year
		for _, y := range years[1:] {
			if y.Year < minYear {
				minYear = y.Year
			}
			if y.Year > maxYear {
				maxYear = y.Year
			}
		}
		yearCohort, err = s.store.YearCohortDefectCounts(ctx, minYear, maxYear)
		if err != nil {
			return nil, errors.WithCode(err, errors.CodeStore, "failed to load year cohort defect counts")
		}
	}

	makeCohort, err := s.store.MakeDefectCounts(ctx, mk)
	if err != nil {
		return nil, errors.WithCode(err, errors.CodeStore, "failed to load make defect counts")
	}

	weights := baseline.Weights{
		National: s.cfg.NationalWeight,
		Year:     s.cfg.YearWeight,
		Make:     s.cfg.MakeWeight,
	}
	return baseline.NewRateSet(s.classifier, weights, national, yearCohort, makeCohort), nil
}
