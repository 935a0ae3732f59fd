package insight

// SeverityTier classifies how far above baseline a defect rate sits.
type SeverityTier string

const (
	TierMajor    SeverityTier = "major"
	TierKnown    SeverityTier = "known"
	TierElevated SeverityTier = "elevated"
)

// Thresholds are the ratio cutoffs for tier membership. Boundaries are
// inclusive at the lower edge: ratio 3.0 is major, 2.0 is known, 1.5 is
// elevated, anything below 1.5 is not reported.
type Thresholds struct {
	Major    float64
	Known    float64
	Elevated float64
}

// DefaultThresholds returns the standard 3.0 / 2.0 / 1.5 cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{Major: 3.0, Known: 2.0, Elevated: 1.5}
}

// TierFor buckets a ratio. ok is false when the ratio is below the reporting
// floor and the defect should be discarded.
func (t Thresholds) TierFor(ratio float64) (tier SeverityTier, ok bool) {
	switch {
	case ratio >= t.Major:
		return TierMajor, true
	case ratio >= t.Known:
		return TierKnown, true
	case ratio >= t.Elevated:
		return TierElevated, true
	default:
		return "", false
	}
}
