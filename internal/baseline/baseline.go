// Package baseline builds the per-report reference rate maps and blends them
// into composite baselines.
//
// Grouped versus individual baselines is the load-bearing decision here: a
// baseline computed per exact wording variant is artificially thin, which
// silently inflates ratios through wording fragmentation rather than real
// elevation. Occurrence counts are therefore summed across every variant of a
// component group before any rate is formed, on both the model side and the
// baseline side.
package baseline

import (
	"motinsight/domain/core"
	"motinsight/domain/insight"
	"motinsight/internal/grouping"
)

// Weights blend the three baseline dimensions. The national average anchors
// the comparison in the broadest sample, the year cohort corrects for the
// vehicle-age effect, and the make cohort corrects for manufacturer-wide
// tendencies.
type Weights struct {
	National float64
	Year     float64
	Make     float64
}

// DefaultWeights returns the standard 0.5 / 0.3 / 0.2 blend.
func DefaultWeights() Weights {
	return Weights{National: 0.5, Year: 0.3, Make: 0.2}
}

// RateSet holds the read-only reference rate maps for one report run. All six
// maps are computed once up front — recomputing them per defect would make
// report generation quadratic in defect count.
type RateSet struct {
	classifier *grouping.Classifier
	weights    Weights

	national map[string]float64
	year     map[string]float64
	mk       map[string]float64

	nationalGrouped map[core.GroupID]float64
	yearGrouped     map[core.GroupID]float64
	mkGrouped       map[core.GroupID]float64
}

// NewRateSet builds individual and grouped rate maps from the three reference
// populations. Grouped rates sum occurrence counts across all wording
// variants mapping to the same group before dividing by the population's
// test denominator.
func NewRateSet(classifier *grouping.Classifier, weights Weights, national, year, mk insight.DefectCountSet) *RateSet {
	s := &RateSet{
		classifier:      classifier,
		weights:         weights,
		national:        make(map[string]float64, len(national.Counts)),
		year:            make(map[string]float64, len(year.Counts)),
		mk:              make(map[string]float64, len(mk.Counts)),
		nationalGrouped: make(map[core.GroupID]float64),
		yearGrouped:     make(map[core.GroupID]float64),
		mkGrouped:       make(map[core.GroupID]float64),
	}

	s.fill(national, s.national, s.nationalGrouped)
	s.fill(year, s.year, s.yearGrouped)
	s.fill(mk, s.mk, s.mkGrouped)

	return s
}

func (s *RateSet) fill(set insight.DefectCountSet, individual map[string]float64, grouped map[core.GroupID]float64) {
	if set.TotalTests == 0 {
		return
	}
	groupCounts := make(map[core.GroupID]int64)
	for desc, count := range set.Counts {
		individual[desc] = float64(count) / float64(set.TotalTests) * 100
		if g, ok := s.classifier.Classify(desc); ok {
			groupCounts[g] += count
		}
	}
	for g, count := range groupCounts {
		grouped[g] = float64(count) / float64(set.TotalTests) * 100
	}
}

// Composite returns the blended baseline for a defect description. The defect
// is first classified; grouped rates are used when it belongs to a component
// group, its own individual rates otherwise. ok is false when the national
// rate for the resolved key is zero — without a national denominator no
// elevation can be assessed and the caller must skip the defect.
func (s *RateSet) Composite(description string) (rate float64, group core.GroupID, ok bool) {
	if g, grouped := s.classifier.Classify(description); grouped {
		rate, ok = s.blend(s.nationalGrouped[g], s.yearGrouped[g], s.mkGrouped[g])
		return rate, g, ok
	}
	rate, ok = s.blend(s.national[description], s.year[description], s.mk[description])
	return rate, "", ok
}

// CompositeForGroup returns the blended baseline for an already-resolved
// component group.
func (s *RateSet) CompositeForGroup(g core.GroupID) (float64, bool) {
	return s.blend(s.nationalGrouped[g], s.yearGrouped[g], s.mkGrouped[g])
}

// blend combines the three dimensions. A zero year or make rate means that
// cohort never recorded the defect; the national rate substitutes so cohort
// sparsity cannot depress or inflate the baseline.
func (s *RateSet) blend(national, year, mk float64) (float64, bool) {
	if national == 0 {
		return 0, false
	}
	if year == 0 {
		year = national
	}
	if mk == 0 {
		mk = national
	}
	return s.weights.National*national + s.weights.Year*year + s.weights.Make*mk, true
}
