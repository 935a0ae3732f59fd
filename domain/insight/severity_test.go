package insight

import "testing"

// Tier boundaries are closed at the lower edge: 3.0 is already major, 2.0 is
// known (not major), 1.5 is elevated (not known), and anything under 1.5 is
// not reported at all.
func TestThresholds_TierBoundaries(t *testing.T) {
	th := DefaultThresholds()

	cases := []struct {
		ratio    float64
		wantTier SeverityTier
		wantOK   bool
	}{
		{5.0, TierMajor, true},
		{3.0, TierMajor, true},
		{2.999999, TierKnown, true},
		{2.0, TierKnown, true},
		{1.999999, TierElevated, true},
		{1.5, TierElevated, true},
		{1.499999, "", false},
		{1.0, "", false},
		{0.0, "", false},
	}

	for _, tc := range cases {
		tier, ok := th.TierFor(tc.ratio)
		if tier != tc.wantTier || ok != tc.wantOK {
			t.Errorf("TierFor(%v) = (%q, %v), want (%q, %v)", tc.ratio, tier, ok, tc.wantTier, tc.wantOK)
		}
	}
}

func TestSeverityBuckets_Count(t *testing.T) {
	b := SeverityBuckets{
		Major:    make([]KnownIssue, 2),
		Elevated: make([]KnownIssue, 3),
	}
	if got := b.Count(); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}
}
