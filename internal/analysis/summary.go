package analysis

import (
	"sort"

	montanaflynn "github.com/montanaflynn/stats"

	"motinsight/domain/insight"
)

// Summarize rolls the model's failure rows up to category level, keeping the
// single most frequent defect wording per category as its headline. Output is
// ordered by occurrence volume descending, category name ascending on ties.
func Summarize(rows []insight.DefectRow, totalTests int64) []insight.SystemSummary {
	type acc struct {
		occurrences int64
		perDefect   map[string]int64
	}
	byCategory := make(map[string]*acc)
	for _, row := range rows {
		a := byCategory[row.Category]
		if a == nil {
			a = &acc{perDefect: make(map[string]int64)}
			byCategory[row.Category] = a
		}
		a.occurrences += row.Occurrences
		a.perDefect[row.Description] += row.Occurrences
	}

	summaries := make([]insight.SystemSummary, 0, len(byCategory))
	for category, a := range byCategory {
		top, topCount := "", int64(-1)
		for desc, count := range a.perDefect {
			if count > topCount || (count == topCount && desc < top) {
				top, topCount = desc, count
			}
		}
		summaries = append(summaries, insight.SystemSummary{
			Category:    category,
			Occurrences: a.occurrences,
			RatePct:     float64(a.occurrences) / float64(totalTests) * 100,
			TopDefect:   top,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Occurrences != summaries[j].Occurrences {
			return summaries[i].Occurrences > summaries[j].Occurrences
		}
		return summaries[i].Category < summaries[j].Category
	})
	return summaries
}

// BestWorstYears returns the n best and n worst model years by pass rate.
// Years under minTests are excluded — tiny cohorts produce meaningless pass
// rates. Inputs keep their store-provided PassRatePct when set, otherwise it
// is derived here.
func BestWorstYears(years []insight.YearStat, n int, minTests int64) (best, worst []insight.YearStat) {
	eligible := make([]insight.YearStat, 0, len(years))
	for _, y := range years {
		if y.TotalTests < minTests || y.TotalTests == 0 {
			continue
		}
		if y.PassRatePct == 0 && y.PassedTests > 0 {
			y.PassRatePct = float64(y.PassedTests) / float64(y.TotalTests) * 100
		}
		eligible = append(eligible, y)
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	byPass := func(desc bool) []insight.YearStat {
		out := make([]insight.YearStat, len(eligible))
		copy(out, eligible)
		sort.Slice(out, func(i, j int) bool {
			if out[i].PassRatePct != out[j].PassRatePct {
				if desc {
					return out[i].PassRatePct > out[j].PassRatePct
				}
				return out[i].PassRatePct < out[j].PassRatePct
			}
			return out[i].Year < out[j].Year
		})
		if len(out) > n {
			out = out[:n]
		}
		return out
	}
	return byPass(true), byPass(false)
}

// FleetPassStats returns mean and median pass rate across the model's years,
// ignoring empty cohorts.
func FleetPassStats(years []insight.YearStat) (mean, median float64) {
	rates := make([]float64, 0, len(years))
	for _, y := range years {
		if y.TotalTests == 0 {
			continue
		}
		rate := y.PassRatePct
		if rate == 0 && y.PassedTests > 0 {
			rate = float64(y.PassedTests) / float64(y.TotalTests) * 100
		}
		rates = append(rates, rate)
	}
	if len(rates) == 0 {
		return 0, 0
	}
	mean, _ = montanaflynn.Mean(rates)
	median, _ = montanaflynn.Median(rates)
	return mean, median
}
