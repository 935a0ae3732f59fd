package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"motinsight/domain/insight"
)

// FactsRepository reads the pre-aggregated MOT fact tables. Every method is
// read-only; the ETL that populates vehicle_insights, top_defects and
// mileage_thresholds lives outside this system.
type FactsRepository struct {
	db *sqlx.DB
}

// NewFactsRepository creates a new facts repository
func NewFactsRepository(db *sqlx.DB) *FactsRepository {
	return &FactsRepository{db: db}
}

// ModelTotals returns total and passed test counts for a make/model, or nil
// when the store has no rows for it.
func (r *FactsRepository) ModelTotals(ctx context.Context, mk, model string) (*insight.TestTotals, error) {
	query := `
		SELECT COALESCE(SUM(total_tests), 0), COALESCE(SUM(passed_tests), 0)
		FROM vehicle_insights
		WHERE make = $1 AND model = $2`

	var totals insight.TestTotals
	err := r.db.QueryRowContext(ctx, query, mk, model).Scan(&totals.TotalTests, &totals.PassedTests)
	if err != nil {
		return nil, fmt.Errorf("failed to query model totals: %w", err)
	}
	if totals.TotalTests == 0 {
		return nil, nil // unknown model — normal outcome, not a fault
	}
	return &totals, nil
}

// ModelDefects returns every failure-type defect row for a make/model.
func (r *FactsRepository) ModelDefects(ctx context.Context, mk, model string) ([]insight.DefectRow, error) {
	query := `
		SELECT make, model, model_year, fuel_type, defect_description, category_name, occurrence_count
		FROM top_defects
		WHERE make = $1 AND model = $2 AND defect_type = 'failure'
		ORDER BY model_year, fuel_type, defect_description`

	rows, err := r.db.QueryContext(ctx, query, mk, model)
	if err != nil {
		return nil, fmt.Errorf("failed to query model defects: %w", err)
	}
	defer rows.Close()

	var defects []insight.DefectRow
	for rows.Next() {
		var d insight.DefectRow
		if err := rows.Scan(&d.Make, &d.Model, &d.ModelYear, &d.FuelType, &d.Description, &d.Category, &d.Occurrences); err != nil {
			return nil, fmt.Errorf("failed to scan defect row: %w", err)
		}
		defects = append(defects, d)
	}
	return defects, rows.Err()
}

// NationalDefectCounts returns fleet-wide occurrence counts per defect
// description with the national test denominator.
func (r *FactsRepository) NationalDefectCounts(ctx context.Context) (insight.DefectCountSet, error) {
	return r.defectCounts(ctx,
		`SELECT defect_description, SUM(occurrence_count)
		 FROM top_defects
		 WHERE defect_type = 'failure'
		 GROUP BY defect_description`,
		`SELECT COALESCE(SUM(total_tests), 0) FROM vehicle_insights`,
	)
}

// YearCohortDefectCounts returns occurrence counts restricted to model years
// in [minYear, maxYear].
func (r *FactsRepository) YearCohortDefectCounts(ctx context.Context, minYear, maxYear int) (insight.DefectCountSet, error) {
	return r.defectCounts(ctx,
		`SELECT defect_description, SUM(occurrence_count)
		 FROM top_defects
		 WHERE defect_type = 'failure' AND model_year BETWEEN $1 AND $2
		 GROUP BY defect_description`,
		`SELECT COALESCE(SUM(total_tests), 0) FROM vehicle_insights WHERE model_year BETWEEN $1 AND $2`,
		minYear, maxYear,
	)
}

// MakeDefectCounts returns occurrence counts restricted to one manufacturer.
func (r *FactsRepository) MakeDefectCounts(ctx context.Context, mk string) (insight.DefectCountSet, error) {
	return r.defectCounts(ctx,
		`SELECT defect_description, SUM(occurrence_count)
		 FROM top_defects
		 WHERE defect_type = 'failure' AND make = $1
		 GROUP BY defect_description`,
		`SELECT COALESCE(SUM(total_tests), 0) FROM vehicle_insights WHERE make = $1`,
		mk,
	)
}

func (r *FactsRepository) defectCounts(ctx context.Context, countQuery, totalQuery string, args ...interface{}) (insight.DefectCountSet, error) {
	set := insight.DefectCountSet{Counts: make(map[string]int64)}

	rows, err := r.db.QueryContext(ctx, countQuery, args...)
	if err != nil {
		return set, fmt.Errorf("failed to query defect counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var desc string
		var count int64
		if err := rows.Scan(&desc, &count); err != nil {
			return set, fmt.Errorf("failed to scan defect count: %w", err)
		}
		set.Counts[desc] = count
	}
	if err := rows.Err(); err != nil {
		return set, err
	}

	if err := r.db.QueryRowContext(ctx, totalQuery, args...).Scan(&set.TotalTests); err != nil {
		return set, fmt.Errorf("failed to query test denominator: %w", err)
	}
	return set, nil
}

// YearBreakdown returns per-model-year test volume for a make/model, year
// ascending, with pass rates precomputed.
func (r *FactsRepository) YearBreakdown(ctx context.Context, mk, model string) ([]insight.YearStat, error) {
	query := `
		SELECT model_year, SUM(total_tests), SUM(passed_tests)
		FROM vehicle_insights
		WHERE make = $1 AND model = $2
		GROUP BY model_year
		ORDER BY model_year`

	rows, err := r.db.QueryContext(ctx, query, mk, model)
	if err != nil {
		return nil, fmt.Errorf("failed to query year breakdown: %w", err)
	}
	defer rows.Close()

	var years []insight.YearStat
	for rows.Next() {
		var y insight.YearStat
		if err := rows.Scan(&y.Year, &y.TotalTests, &y.PassedTests); err != nil {
			return nil, fmt.Errorf("failed to scan year stat: %w", err)
		}
		if y.TotalTests > 0 {
			y.PassRatePct = float64(y.PassedTests) / float64(y.TotalTests) * 100
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// OccurrencesByYear returns per-model-year occurrence counts for one defect
// wording on a make/model, merged with per-year test denominators.
func (r *FactsRepository) OccurrencesByYear(ctx context.Context, mk, model, description string) ([]insight.YearOccurrence, error) {
	query := `
		SELECT model_year, SUM(occurrence_count)
		FROM top_defects
		WHERE make = $1 AND model = $2 AND defect_description = $3 AND defect_type = 'failure'
		GROUP BY model_year`

	rows, err := r.db.QueryContext(ctx, query, mk, model, description)
	if err != nil {
		return nil, fmt.Errorf("failed to query occurrences by year: %w", err)
	}
	defer rows.Close()

	occByYear := make(map[int]int64)
	for rows.Next() {
		var year int
		var count int64
		if err := rows.Scan(&year, &count); err != nil {
			return nil, fmt.Errorf("failed to scan yearly occurrence: %w", err)
		}
		occByYear[year] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	years, err := r.YearBreakdown(ctx, mk, model)
	if err != nil {
		return nil, err
	}

	out := make([]insight.YearOccurrence, 0, len(years))
	for _, y := range years {
		out = append(out, insight.YearOccurrence{
			Year:        y.Year,
			Occurrences: occByYear[y.Year],
			TotalTests:  y.TotalTests,
		})
	}
	return out, nil
}

// MileageSpike returns the strongest mileage-band failure spike for a
// make/model/category, or nil when no threshold row exists.
func (r *FactsRepository) MileageSpike(ctx context.Context, mk, model, category string) (*insight.MileageSpike, error) {
	query := `
		SELECT mileage_band, pct_increase
		FROM mileage_thresholds
		WHERE make = $1 AND model = $2 AND category_name = $3
		ORDER BY pct_increase DESC
		LIMIT 1`

	var spike insight.MileageSpike
	err := r.db.QueryRowContext(ctx, query, mk, model, category).Scan(&spike.Band, &spike.PctIncrease)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // no mileage context for this category
		}
		return nil, fmt.Errorf("failed to query mileage spike: %w", err)
	}
	return &spike, nil
}
