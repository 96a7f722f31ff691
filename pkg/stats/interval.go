// Package stats provides the numerical routines for clinical-evidence
// pooling: binomial confidence intervals, fixed-effect proportion pooling,
// DerSimonian-Laird random-effects meta-analysis, effect-size conversion,
// and data-quality grading.
//
// Every function is a pure transform over its arguments, total over its
// documented input domain, and safe for concurrent use.
package stats

import (
	"math"

	"github.com/pavlyhalim/pharma-agent-system/internal/domain"
)

// DefaultConfidence is the confidence level used when a caller passes a
// non-positive level.
const DefaultConfidence = 0.95

// WilsonScoreInterval computes the Wilson score confidence interval for a
// binomial proportion. It is preferred over the normal (Wald) approximation
// because the bounds stay within [0,1] and remain well-behaved for small
// trial counts or proportions near 0 or 1 — both common in clinical data.
//
// trials == 0 returns (0, 0), which callers must treat as "no information"
// rather than a zero-width interval at zero. successes > trials is not
// validated here; that is the caller's responsibility.
func WilsonScoreInterval(successes, trials int, confidence float64) domain.ConfidenceInterval {
	if trials == 0 {
		return domain.ConfidenceInterval{}
	}
	if confidence <= 0 || confidence >= 1 {
		confidence = DefaultConfidence
	}

	n := float64(trials)
	p := float64(successes) / n
	z := normalQuantile((1 + confidence) / 2)

	denominator := 1 + z*z/n
	center := (p + z*z/(2*n)) / denominator
	margin := z * math.Sqrt((p*(1-p)+z*z/(4*n))/n) / denominator

	return domain.ConfidenceInterval{
		Lower: math.Max(0, center-margin),
		Upper: math.Min(1, center+margin),
	}
}
