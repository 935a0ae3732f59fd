package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"motinsight/domain/insight"
)

// wilsonZ is the two-sided 95% normal quantile.
var wilsonZ = distuv.UnitNormal.Quantile(0.975)

// WilsonInterval returns the 95% Wilson score interval for an occurrence
// proportion, expressed in percent. It annotates each surfaced issue so a
// reader can judge how tight the rate estimate is; ranking never reads it.
func WilsonInterval(occurrences, totalTests int64) insight.RateInterval {
	if totalTests == 0 {
		return insight.RateInterval{}
	}
	n := float64(totalTests)
	p := float64(occurrences) / n
	z2 := wilsonZ * wilsonZ

	denom := 1 + z2/n
	center := p + z2/(2*n)
	margin := wilsonZ * math.Sqrt(p*(1-p)/n+z2/(4*n*n))

	low := (center - margin) / denom
	high := (center + margin) / denom
	if low < 0 {
		low = 0
	}
	if high > 1 {
		high = 1
	}
	return insight.RateInterval{LowPct: low * 100, HighPct: high * 100}
}
