package ports

import (
	"context"

	"motinsight/domain/insight"
)

// FactStore provides read-only access to the pre-aggregated MOT statistics
// tables. The upstream ETL that builds those tables is outside this system;
// the store is consumed as a stable external fact source.
//
// Lookups that find no data return nil results, not errors — absence of data
// for an obscure make/model is a normal outcome.
type FactStore interface {
	// ModelTotals returns test volume for a make/model across all years and
	// fuel types, or nil when the model is unknown to the store.
	ModelTotals(ctx context.Context, make, model string) (*insight.TestTotals, error)

	// ModelDefects returns every failure-type defect fact row for a
	// make/model.
	ModelDefects(ctx context.Context, make, model string) ([]insight.DefectRow, error)

	// NationalDefectCounts returns fleet-wide occurrence counts per defect
	// description with the national test denominator.
	NationalDefectCounts(ctx context.Context) (insight.DefectCountSet, error)

	// YearCohortDefectCounts returns occurrence counts restricted to vehicles
	// whose model year falls in [minYear, maxYear].
	YearCohortDefectCounts(ctx context.Context, minYear, maxYear int) (insight.DefectCountSet, error)

	// MakeDefectCounts returns occurrence counts restricted to one
	// manufacturer.
	MakeDefectCounts(ctx context.Context, make string) (insight.DefectCountSet, error)

	// YearBreakdown returns per-model-year test volume for a make/model,
	// ordered by year ascending.
	YearBreakdown(ctx context.Context, make, model string) ([]insight.YearStat, error)

	// OccurrencesByYear returns per-model-year occurrence counts for one
	// defect wording on a make/model, with per-year test denominators.
	OccurrencesByYear(ctx context.Context, make, model, description string) ([]insight.YearOccurrence, error)

	// MileageSpike returns the mileage band where a category's failure rate
	// jumps for a make/model, or nil when no threshold row exists.
	MileageSpike(ctx context.Context, make, model, category string) (*insight.MileageSpike, error)
}
