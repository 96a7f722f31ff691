package stats

import (
	"math"

	"github.com/pavlyhalim/pharma-agent-system/internal/domain"
)

// varianceFloor bounds per-study binomial variances away from zero so that
// inverse-variance weights stay finite when a proportion is exactly 0 or 1.
const varianceFloor = 1e-10

// PooledProportion combines per-study proportions into a single fixed-effect
// pooled proportion with a 95% confidence interval.
//
// proportions and sampleSizes are parallel slices, one entry per study.
// Weights are 1/var(p_i) for InverseVariance and n_i for SampleSize. The
// pooled variance uses the binomial approximation on the total sample size,
// treating the pooled estimate as one aggregate binomial trial; the interval
// is clamped to [0,1].
//
// Empty input returns (0, (0,0)). That zero tuple is indistinguishable from
// a true pooled rate of exactly zero, so callers that need the distinction
// must check input length before calling (the service layer exposes it as a
// nullable metric).
func PooledProportion(proportions []float64, sampleSizes []int, method domain.PoolingMethod) (float64, domain.ConfidenceInterval) {
	if len(proportions) == 0 || len(sampleSizes) == 0 {
		return 0, domain.ConfidenceInterval{}
	}

	weights := make([]float64, len(proportions))
	if method == domain.SampleSize {
		for i := range proportions {
			weights[i] = float64(sampleSizes[i])
		}
	} else {
		for i, p := range proportions {
			variance := p * (1 - p) / float64(sampleSizes[i])
			if variance < varianceFloor {
				variance = varianceFloor
			}
			weights[i] = 1 / variance
		}
	}

	var weightSum float64
	for _, w := range weights {
		weightSum += w
	}

	var pooled float64
	totalN := 0
	for i, p := range proportions {
		pooled += (weights[i] / weightSum) * p
		totalN += sampleSizes[i]
	}

	pooledVariance := pooled * (1 - pooled) / float64(totalN)
	z := normalQuantile(0.975)
	margin := z * math.Sqrt(pooledVariance)

	return pooled, domain.ConfidenceInterval{
		Lower: math.Max(0, pooled-margin),
		Upper: math.Min(1, pooled+margin),
	}
}
