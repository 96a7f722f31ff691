package stats

import (
	"math"

	"github.com/pavlyhalim/pharma-agent-system/internal/domain"
)

// RandomEffectsResult holds the output of a DerSimonian-Laird random-effects
// meta-analysis. The CI is not clamped: effects here are general (log-odds
// and similar unbounded measures), unlike the proportion pooler.
type RandomEffectsResult struct {
	PooledEffect float64                   `json:"pooled_effect"`
	CI           domain.ConfidenceInterval `json:"ci"`
	Tau2         float64                   `json:"tau2"`
	I2           float64                   `json:"i2"`
	Q            float64                   `json:"q"`
	// PHeterogeneity is the right-tail chi-square p-value for Q with n-1
	// degrees of freedom; nil when df == 0 (a single study).
	PHeterogeneity *float64 `json:"p_heterogeneity"`
	NStudies       int      `json:"n_studies"`
}

// HeterogeneitySummary is the subset of the random-effects result describing
// between-study heterogeneity.
type HeterogeneitySummary struct {
	I2     float64  `json:"i2"`
	Tau2   float64  `json:"tau2"`
	Q      float64  `json:"q"`
	PValue *float64 `json:"p_value"`
}

// RandomEffectsMetaAnalysis pools effect sizes across studies using the
// DerSimonian-Laird estimator for between-study variance.
//
// effects and variances are parallel slices; variances are within-study
// variances and must be positive. Empty input returns nil — an explicit
// "no data" state, not an error.
func RandomEffectsMetaAnalysis(effects, variances []float64, confidence float64) *RandomEffectsResult {
	n := len(effects)
	if n == 0 {
		return nil
	}
	if confidence <= 0 || confidence >= 1 {
		confidence = DefaultConfidence
	}

	// Fixed-effect weights and pooled estimate.
	weightsFE := make([]float64, n)
	var sumW, sumW2, sumWE float64
	for i, v := range variances {
		w := 1 / v
		weightsFE[i] = w
		sumW += w
		sumW2 += w * w
		sumWE += w * effects[i]
	}
	pooledFE := sumWE / sumW

	// Cochran's Q.
	var q float64
	for i, e := range effects {
		d := e - pooledFE
		q += weightsFE[i] * d * d
	}

	// Between-study variance, clamped at zero per the DL convention.
	df := float64(n - 1)
	c := sumW - sumW2/sumW
	tau2 := 0.0
	if c > 0 {
		tau2 = math.Max(0, (q-df)/c)
	}

	i2 := 0.0
	if q > 0 {
		i2 = math.Max(0, (q-df)/q) * 100
	}

	// Random-effects weights and pooled estimate.
	var sumWRE, sumWREE float64
	for i, v := range variances {
		w := 1 / (v + tau2)
		sumWRE += w
		sumWREE += w * effects[i]
	}
	pooledRE := sumWREE / sumWRE
	pooledVariance := 1 / sumWRE

	z := normalQuantile((1 + confidence) / 2)
	margin := z * math.Sqrt(pooledVariance)

	var pHet *float64
	if n > 1 {
		p := chiSquareSurvival(q, n-1)
		pHet = &p
	}

	return &RandomEffectsResult{
		PooledEffect:   pooledRE,
		CI:             domain.ConfidenceInterval{Lower: pooledRE - margin, Upper: pooledRE + margin},
		Tau2:           tau2,
		I2:             i2,
		Q:              q,
		PHeterogeneity: pHet,
		NStudies:       n,
	}
}

// Heterogeneity computes I^2, tau^2, Q, and the heterogeneity p-value for a
// set of effect sizes. Convenience wrapper over the full random-effects
// analysis. Returns nil for empty input.
func Heterogeneity(effects, variances []float64) *HeterogeneitySummary {
	result := RandomEffectsMetaAnalysis(effects, variances, DefaultConfidence)
	if result == nil {
		return nil
	}
	return &HeterogeneitySummary{
		I2:     result.I2,
		Tau2:   result.Tau2,
		Q:      result.Q,
		PValue: result.PHeterogeneity,
	}
}
