package analysis

import (
	"context"
	"sort"

	"motinsight/domain/insight"
	"motinsight/internal"
	"motinsight/ports"
)

// Enricher attaches mileage-onset and affected-year context to classified
// issues. Every field it adds is optional: missing fact rows degrade the
// issue to "no context", never to a failed report. Store errors are logged
// and swallowed for the same reason.
type Enricher struct {
	store          ports.FactStore
	yearMultiplier float64
	premature      map[string]bool
	log            *internal.Logger
}

// NewEnricher creates an enricher. yearMultiplier is the per-year elevation
// cutoff (default 1.2×); prematureBands are the mileage bands counted as
// earlier-than-typical onset.
func NewEnricher(store ports.FactStore, yearMultiplier float64, prematureBands []string, log *internal.Logger) *Enricher {
	premature := make(map[string]bool, len(prematureBands))
	for _, band := range prematureBands {
		premature[band] = true
	}
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Enricher{
		store:          store,
		yearMultiplier: yearMultiplier,
		premature:      premature,
		log:            log,
	}
}

// Enrich fills TypicalMileage, IsPremature and AffectedYears in place.
func (e *Enricher) Enrich(ctx context.Context, mk, model string, issue *insight.KnownIssue) {
	e.attachMileage(ctx, mk, model, issue)
	e.attachAffectedYears(ctx, mk, model, issue)
}

func (e *Enricher) attachMileage(ctx context.Context, mk, model string, issue *insight.KnownIssue) {
	spike, err := e.store.MileageSpike(ctx, mk, model, issue.Category)
	if err != nil {
		e.log.Warn("mileage context unavailable for %s %s (%s): %v", mk, model, issue.Category, err)
		return
	}
	if spike == nil {
		return
	}
	issue.TypicalMileage = spike.Band
	issue.IsPremature = e.premature[spike.Band]
}

// attachAffectedYears flags model years whose per-year rate exceeds the
// defect's own overall rate by the configured multiplier. For grouped issues
// the first wording variant stands in for the whole group. This is a plain
// threshold heuristic, not an outlier test.
func (e *Enricher) attachAffectedYears(ctx context.Context, mk, model string, issue *insight.KnownIssue) {
	description := issue.Title
	if len(issue.Variants) > 0 {
		description = issue.Variants[0]
	}

	years, err := e.store.OccurrencesByYear(ctx, mk, model, description)
	if err != nil {
		e.log.Warn("affected-year context unavailable for %s %s (%q): %v", mk, model, description, err)
		return
	}
	if len(years) == 0 {
		return
	}

	var totalOcc, totalTests int64
	for _, y := range years {
		totalOcc += y.Occurrences
		totalTests += y.TotalTests
	}
	if totalTests == 0 || totalOcc == 0 {
		return
	}
	overall := float64(totalOcc) / float64(totalTests)

	var affected []int
	for _, y := range years {
		if y.TotalTests == 0 {
			continue
		}
		rate := float64(y.Occurrences) / float64(y.TotalTests)
		if rate > e.yearMultiplier*overall {
			affected = append(affected, y.Year)
		}
	}
	sort.Ints(affected)
	issue.AffectedYears = affected
}
