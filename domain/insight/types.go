package insight

import (
	"motinsight/domain/core"
)

// ============================================================================
// FACT TABLE INPUTS (read-only rows from the MOT statistics store)
// ============================================================================

// DefectRow is one pre-aggregated failure fact: how often a specific defect
// wording was recorded for one (make, model, model_year, fuel_type) segment.
// INVARIANT: Occurrences never exceeds the segment's total test count; all
// downstream math works on rates, never raw counts.
type DefectRow struct {
	Make        string `json:"make"`
	Model       string `json:"model"`
	ModelYear   int    `json:"model_year"`
	FuelType    string `json:"fuel_type"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Occurrences int64  `json:"occurrences"`
}

// TestTotals holds test volume for one make/model across all years and fuels.
type TestTotals struct {
	TotalTests  int64 `json:"total_tests"`
	PassedTests int64 `json:"passed_tests"`
}

// DefectCountSet holds defect occurrence counts for one reference population
// (national fleet, a model-year cohort, or one manufacturer) together with
// the population's test denominator.
type DefectCountSet struct {
	Counts     map[string]int64 `json:"counts"`
	TotalTests int64            `json:"total_tests"`
}

// YearStat is one model year's test volume and pass rate for a make/model.
type YearStat struct {
	Year        int     `json:"year"`
	TotalTests  int64   `json:"total_tests"`
	PassedTests int64   `json:"passed_tests"`
	PassRatePct float64 `json:"pass_rate_pct"`
}

// YearOccurrence is one model year's occurrence count for a single defect
// wording, with that year's test denominator.
type YearOccurrence struct {
	Year        int   `json:"year"`
	Occurrences int64 `json:"occurrences"`
	TotalTests  int64 `json:"total_tests"`
}

// MileageSpike is the mileage band where a category's failure rate jumps for
// a make/model, from the mileage threshold fact table.
type MileageSpike struct {
	Band        string  `json:"band"`
	PctIncrease float64 `json:"pct_increase"`
}

// ============================================================================
// AGGREGATES (per-report, in-memory only)
// ============================================================================

// GroupAggregate accumulates every wording variant of one component group
// for the target model. Variants keeps insertion order for transparency in
// the rendered report.
type GroupAggregate struct {
	Group       core.GroupID `json:"group"`
	Category    string       `json:"category"`
	Occurrences int64        `json:"occurrences"`
	RatePct     float64      `json:"rate_pct"`
	Variants    []string     `json:"variants"`
}

// DefectAggregate accumulates one ungrouped defect wording across the target
// model's year/fuel segments.
type DefectAggregate struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Occurrences int64   `json:"occurrences"`
	RatePct     float64 `json:"rate_pct"`
}

// ============================================================================
// REPORT OUTPUT (stable contract consumed by the rendering layer)
// ============================================================================

// RateInterval is a 95% Wilson interval on a model occurrence rate, in
// percent. Diagnostic only — ranking decisions never read it.
type RateInterval struct {
	LowPct  float64 `json:"low_pct"`
	HighPct float64 `json:"high_pct"`
}

// KnownIssue is one surfaced defect or component group whose occurrence rate
// is elevated against the composite baseline.
type KnownIssue struct {
	Title          string       `json:"title"`
	Group          core.GroupID `json:"group,omitempty"`
	Category       string       `json:"category"`
	Occurrences    int64        `json:"occurrences"`
	ModelRatePct   float64      `json:"model_rate_pct"`
	BaselinePct    float64      `json:"baseline_pct"`
	Ratio          float64      `json:"ratio"`
	Tier           SeverityTier `json:"tier"`
	Variants       []string     `json:"variants,omitempty"`
	Interval       RateInterval `json:"interval"`
	TypicalMileage string       `json:"typical_mileage,omitempty"`
	IsPremature    bool         `json:"is_premature"`
	AffectedYears  []int        `json:"affected_years,omitempty"`
}

// SeverityBuckets holds ranked issues split by tier, each sorted by ratio
// descending and truncated to the per-tier cap.
type SeverityBuckets struct {
	Major    []KnownIssue `json:"major"`
	Known    []KnownIssue `json:"known"`
	Elevated []KnownIssue `json:"elevated"`
}

// Count returns the total number of issues across all tiers.
func (b SeverityBuckets) Count() int {
	return len(b.Major) + len(b.Known) + len(b.Elevated)
}

// SystemSummary is the category-level rollup of failure volume for the model.
type SystemSummary struct {
	Category    string  `json:"category"`
	Occurrences int64   `json:"occurrences"`
	RatePct     float64 `json:"rate_pct"`
	TopDefect   string  `json:"top_defect"`
}

// Report is the complete known-issues output for one make/model. It is built
// fresh per request, never persisted, and contains no timestamps so repeated
// generation against an unchanged store is byte-identical when serialized.
type Report struct {
	Make               string          `json:"make"`
	Model              string          `json:"model"`
	TotalTests         int64           `json:"total_tests"`
	Grouped            SeverityBuckets `json:"grouped"`
	Individual         SeverityBuckets `json:"individual"`
	Systems            []SystemSummary `json:"systems"`
	BestYears          []YearStat      `json:"best_years"`
	WorstYears         []YearStat      `json:"worst_years"`
	FleetMeanPassPct   float64         `json:"fleet_mean_pass_pct"`
	FleetMedianPassPct float64         `json:"fleet_median_pass_pct"`
}
