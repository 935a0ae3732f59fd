package analysis

import (
	"motinsight/domain/core"
	"motinsight/domain/insight"
	"motinsight/internal/grouping"
)

// AggregateGroups folds the model's defect rows into per-component-group
// totals. Each grouped row's occurrence count accumulates into its group and
// its wording joins the group's variant list; rows that classify into no
// group are left untouched for individual processing, so nothing ever counts
// twice. The first category seen becomes the group's category — variants are
// assumed category-homogeneous.
//
// Callers must guarantee totalTests > 0; the report entry point rejects
// zero-test models before aggregation runs.
func AggregateGroups(classifier *grouping.Classifier, rows []insight.DefectRow, totalTests int64) map[core.GroupID]*insight.GroupAggregate {
	groups := make(map[core.GroupID]*insight.GroupAggregate)
	for _, row := range rows {
		g, ok := classifier.Classify(row.Description)
		if !ok {
			continue
		}
		agg := groups[g]
		if agg == nil {
			agg = &insight.GroupAggregate{Group: g, Category: row.Category}
			groups[g] = agg
		}
		agg.Occurrences += row.Occurrences
		agg.Variants = appendUnique(agg.Variants, row.Description)
	}
	for _, agg := range groups {
		agg.RatePct = float64(agg.Occurrences) / float64(totalTests) * 100
	}
	return groups
}

// AggregateIndividual folds the ungrouped defect rows into per-description
// totals. The same wording can appear once per (year, fuel) segment; those
// segments sum here.
func AggregateIndividual(classifier *grouping.Classifier, rows []insight.DefectRow, totalTests int64) map[string]*insight.DefectAggregate {
	defects := make(map[string]*insight.DefectAggregate)
	for _, row := range rows {
		if _, grouped := classifier.Classify(row.Description); grouped {
			continue
		}
		agg := defects[row.Description]
		if agg == nil {
			agg = &insight.DefectAggregate{Description: row.Description, Category: row.Category}
			defects[row.Description] = agg
		}
		agg.Occurrences += row.Occurrences
	}
	for _, agg := range defects {
		agg.RatePct = float64(agg.Occurrences) / float64(totalTests) * 100
	}
	return defects
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
