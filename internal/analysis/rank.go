package analysis

import (
	"sort"

	"motinsight/domain/core"
	"motinsight/domain/insight"
	"motinsight/internal/baseline"
	"motinsight/internal/grouping"
)

// RankConfig carries the statistical floors and caps for severity ranking.
type RankConfig struct {
	Thresholds     insight.Thresholds
	MinOccurrences int64
	MaxPerTier     int
}

// DefaultRankConfig returns the standard floors: 50 occurrences minimum,
// top 10 per tier.
func DefaultRankConfig() RankConfig {
	return RankConfig{
		Thresholds:     insight.DefaultThresholds(),
		MinOccurrences: 50,
		MaxPerTier:     10,
	}
}

// RankGroups classifies grouped aggregates into severity buckets. A group is
// discarded — silently, this is expected pruning rather than an error — when
// its occurrence count sits below the sample floor, when no composite
// baseline exists, or when its ratio is under the elevated cutoff.
func RankGroups(groups map[core.GroupID]*insight.GroupAggregate, rates *baseline.RateSet, totalTests int64, cfg RankConfig) insight.SeverityBuckets {
	issues := make([]insight.KnownIssue, 0, len(groups))
	for _, agg := range groups {
		if agg.Occurrences < cfg.MinOccurrences {
			continue
		}
		base, ok := rates.CompositeForGroup(agg.Group)
		if !ok {
			continue
		}
		ratio := agg.RatePct / base
		tier, ok := cfg.Thresholds.TierFor(ratio)
		if !ok {
			continue
		}
		issues = append(issues, insight.KnownIssue{
			Title:        grouping.DisplayName(agg.Group),
			Group:        agg.Group,
			Category:     agg.Category,
			Occurrences:  agg.Occurrences,
			ModelRatePct: agg.RatePct,
			BaselinePct:  base,
			Ratio:        ratio,
			Tier:         tier,
			Variants:     agg.Variants,
			Interval:     WilsonInterval(agg.Occurrences, totalTests),
		})
	}
	return bucket(issues, cfg.MaxPerTier)
}

// RankIndividual classifies ungrouped per-defect aggregates with the same
// floors and cutoffs. Composite resolution goes through the description so a
// defect outside every component group is compared against its own thin —
// but honest — individual baseline.
func RankIndividual(defects map[string]*insight.DefectAggregate, rates *baseline.RateSet, totalTests int64, cfg RankConfig) insight.SeverityBuckets {
	issues := make([]insight.KnownIssue, 0, len(defects))
	for _, agg := range defects {
		if agg.Occurrences < cfg.MinOccurrences {
			continue
		}
		base, _, ok := rates.Composite(agg.Description)
		if !ok {
			continue
		}
		ratio := agg.RatePct / base
		tier, ok := cfg.Thresholds.TierFor(ratio)
		if !ok {
			continue
		}
		issues = append(issues, insight.KnownIssue{
			Title:        agg.Description,
			Category:     agg.Category,
			Occurrences:  agg.Occurrences,
			ModelRatePct: agg.RatePct,
			BaselinePct:  base,
			Ratio:        ratio,
			Tier:         tier,
			Interval:     WilsonInterval(agg.Occurrences, totalTests),
		})
	}
	return bucket(issues, cfg.MaxPerTier)
}

// bucket splits issues by tier, orders each tier by ratio descending with a
// title tiebreak for deterministic output, and truncates to the per-tier cap.
func bucket(issues []insight.KnownIssue, maxPerTier int) insight.SeverityBuckets {
	var b insight.SeverityBuckets
	for _, issue := range issues {
		switch issue.Tier {
		case insight.TierMajor:
			b.Major = append(b.Major, issue)
		case insight.TierKnown:
			b.Known = append(b.Known, issue)
		case insight.TierElevated:
			b.Elevated = append(b.Elevated, issue)
		}
	}
	b.Major = sortAndCap(b.Major, maxPerTier)
	b.Known = sortAndCap(b.Known, maxPerTier)
	b.Elevated = sortAndCap(b.Elevated, maxPerTier)
	return b
}

func sortAndCap(issues []insight.KnownIssue, max int) []insight.KnownIssue {
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Ratio != issues[j].Ratio {
			return issues[i].Ratio > issues[j].Ratio
		}
		return issues[i].Title < issues[j].Title
	})
	if len(issues) > max {
		issues = issues[:max]
	}
	return issues
}
