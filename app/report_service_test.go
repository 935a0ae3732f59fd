package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motinsight/domain/insight"
	"motinsight/internal/config"
	"motinsight/internal/grouping"
)

const (
	brakeDiscWording = "Nearside Front Brake disc excessively pitted"
	hornWording      = "Horn control insecure"
)

// memFacts is an in-memory FactStore seeded with one model whose numbers
// reproduce the documented worked example: grouped composite baseline
// 0.425%, model rate 1.0%, ratio ≈ 2.35 → "known".
type memFacts struct {
	totals   map[string]*insight.TestTotals
	defects  map[string][]insight.DefectRow
	years    map[string][]insight.YearStat
	byYear   map[string][]insight.YearOccurrence
	spikes   map[string]*insight.MileageSpike
	national insight.DefectCountSet
	cohort   insight.DefectCountSet
	mkCounts insight.DefectCountSet
}

func key(mk, model string) string { return mk + "/" + model }

func newMemFacts() *memFacts {
	return &memFacts{
		totals: map[string]*insight.TestTotals{
			key("FORD", "FOCUS"): {TotalTests: 20000, PassedTests: 14000},
		},
		defects: map[string][]insight.DefectRow{
			key("FORD", "FOCUS"): {
				{Make: "FORD", Model: "FOCUS", ModelYear: 2013, FuelType: "PE", Description: brakeDiscWording, Category: "Brakes", Occurrences: 150},
				{Make: "FORD", Model: "FOCUS", ModelYear: 2014, FuelType: "PE", Description: brakeDiscWording, Category: "Brakes", Occurrences: 50},
				{Make: "FORD", Model: "FOCUS", ModelYear: 2013, FuelType: "PE", Description: hornWording, Category: "Horn", Occurrences: 120},
			},
		},
		years: map[string][]insight.YearStat{
			key("FORD", "FOCUS"): {
				{Year: 2013, TotalTests: 10000, PassedTests: 6800, PassRatePct: 68},
				{Year: 2014, TotalTests: 10000, PassedTests: 7200, PassRatePct: 72},
			},
		},
		byYear: map[string][]insight.YearOccurrence{
			brakeDiscWording: {
				{Year: 2013, Occurrences: 150, TotalTests: 10000}, // 1.5% vs 1.0% overall
				{Year: 2014, Occurrences: 50, TotalTests: 10000},
			},
		},
		spikes: map[string]*insight.MileageSpike{
			"Brakes": {Band: "30-60k", PctIncrease: 40},
		},
		national: insight.DefectCountSet{TotalTests: 100000, Counts: map[string]int64{
			brakeDiscWording: 400, // 0.40%
			hornWording:      150, // 0.15%
		}},
		cohort: insight.DefectCountSet{TotalTests: 100000, Counts: map[string]int64{
			brakeDiscWording: 550, // 0.55%; horn absent → national fallback
		}},
		mkCounts: insight.DefectCountSet{TotalTests: 100000, Counts: map[string]int64{
			brakeDiscWording: 300, // 0.30%
		}},
	}
}

func (m *memFacts) ModelTotals(ctx context.Context, mk, model string) (*insight.TestTotals, error) {
	return m.totals[key(mk, model)], nil
}
func (m *memFacts) ModelDefects(ctx context.Context, mk, model string) ([]insight.DefectRow, error) {
	return m.defects[key(mk, model)], nil
}
func (m *memFacts) NationalDefectCounts(ctx context.Context) (insight.DefectCountSet, error) {
	return m.national, nil
}
func (m *memFacts) YearCohortDefectCounts(ctx context.Context, minYear, maxYear int) (insight.DefectCountSet, error) {
	return m.cohort, nil
}
func (m *memFacts) MakeDefectCounts(ctx context.Context, mk string) (insight.DefectCountSet, error) {
	return m.mkCounts, nil
}
func (m *memFacts) YearBreakdown(ctx context.Context, mk, model string) ([]insight.YearStat, error) {
	return m.years[key(mk, model)], nil
}
func (m *memFacts) OccurrencesByYear(ctx context.Context, mk, model, description string) ([]insight.YearOccurrence, error) {
	return m.byYear[description], nil
}
func (m *memFacts) MileageSpike(ctx context.Context, mk, model, category string) (*insight.MileageSpike, error) {
	return m.spikes[category], nil
}

func testAnalysisConfig() config.AnalysisConfig {
	return config.AnalysisConfig{
		NationalWeight:         0.5,
		YearWeight:             0.3,
		MakeWeight:             0.2,
		MajorThreshold:         3.0,
		KnownThreshold:         2.0,
		ElevatedThreshold:      1.5,
		MinOccurrences:         50,
		MaxPerTier:             10,
		YearAffectedMultiplier: 1.2,
		PrematureBands:         []string{"0-30k", "30-60k"},
		MinYearTests:           100,
	}
}

func newTestService() *ReportService {
	return NewReportService(newMemFacts(), grouping.NewClassifier(), testAnalysisConfig(), nil)
}

func TestReportService_Generate_WorkedExample(t *testing.T) {
	svc := newTestService()
	report, err := svc.Generate(context.Background(), "FORD", "FOCUS")
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, int64(20000), report.TotalTests)

	// Grouped: brake discs at 1.0% against a 0.425% composite → known tier.
	require.Len(t, report.Grouped.Known, 1)
	require.Empty(t, report.Grouped.Major)
	issue := report.Grouped.Known[0]
	assert.Equal(t, "Brake discs and drums", issue.Title)
	assert.Equal(t, int64(200), issue.Occurrences)
	assert.InDelta(t, 1.0, issue.ModelRatePct, 1e-9)
	assert.InDelta(t, 0.425, issue.BaselinePct, 1e-9)
	assert.InDelta(t, 2.3529, issue.Ratio, 1e-3)
	assert.Equal(t, insight.TierKnown, issue.Tier)

	// Enrichment: 2013 runs at 1.5× the defect's overall rate; the brakes
	// category spikes in a premature band.
	assert.Equal(t, []int{2013}, issue.AffectedYears)
	assert.Equal(t, "30-60k", issue.TypicalMileage)
	assert.True(t, issue.IsPremature)

	// Individual: the horn defect never clusters, 0.6% vs 0.15% → major.
	require.Len(t, report.Individual.Major, 1)
	horn := report.Individual.Major[0]
	assert.Equal(t, hornWording, horn.Title)
	assert.InDelta(t, 4.0, horn.Ratio, 1e-9)
	assert.Empty(t, horn.TypicalMileage)

	// System summary ordered by volume; year lists and fleet stats filled.
	require.Len(t, report.Systems, 2)
	assert.Equal(t, "Brakes", report.Systems[0].Category)
	assert.Equal(t, int64(200), report.Systems[0].Occurrences)
	require.Len(t, report.BestYears, 2)
	assert.Equal(t, 2014, report.BestYears[0].Year)
	assert.Equal(t, 2013, report.WorstYears[0].Year)
	assert.InDelta(t, 70.0, report.FleetMeanPassPct, 1e-9)
}

func TestReportService_NoDataMeansNoReport(t *testing.T) {
	svc := newTestService()
	report, err := svc.Generate(context.Background(), "AUSTIN", "ALLEGRO")
	require.NoError(t, err)
	assert.Nil(t, report, "unknown model must yield no report, not an error")
}

func TestReportService_Idempotent(t *testing.T) {
	svc := newTestService()

	first, err := svc.Generate(context.Background(), "FORD", "FOCUS")
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), "FORD", "FOCUS")
	require.NoError(t, err)

	assert.Equal(t, first, second, "same store must produce structurally identical reports")
}
