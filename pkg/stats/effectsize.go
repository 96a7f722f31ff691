package stats

import (
	"math"

	"github.com/pavlyhalim/pharma-agent-system/internal/domain"
)

// ConvertEffectSize converts a scalar effect size between representations.
// baselineRisk is required for the ratio-to-probability conversions and may
// be nil otherwise.
//
// Unsupported pairs return domain.ErrConversionNotSupported so callers can
// skip the conversion instead of aborting a larger pooling run. A log
// transform of a non-positive ratio returns domain.ErrNonPositiveEffect.
func ConvertEffectSize(value float64, from, to domain.EffectMeasure, baselineRisk *float64) (float64, error) {
	// Ratio measures to log odds ratio.
	if (from == domain.OddsRatio || from == domain.RiskRatio || from == domain.HazardRatio) && to == domain.LogOddsRatio {
		if value <= 0 {
			return 0, domain.ErrNonPositiveEffect
		}
		return math.Log(value), nil
	}

	// Odds ratio to probability, via baseline odds.
	if from == domain.OddsRatio && to == domain.Probability {
		if baselineRisk == nil {
			return 0, domain.ErrMissingBaselineRisk
		}
		baselineOdds := *baselineRisk / (1 - *baselineRisk)
		newOdds := baselineOdds * value
		return newOdds / (1 + newOdds), nil
	}

	// Risk ratio to probability.
	if from == domain.RiskRatio && to == domain.Probability {
		if baselineRisk == nil {
			return 0, domain.ErrMissingBaselineRisk
		}
		return *baselineRisk * value, nil
	}

	// Risk difference to probability.
	if from == domain.RiskDifference && to == domain.Probability {
		if baselineRisk == nil {
			return 0, domain.ErrMissingBaselineRisk
		}
		return *baselineRisk + value, nil
	}

	if from == to {
		return value, nil
	}

	return 0, domain.ErrConversionNotSupported
}

// NumberNeededToTreat computes the NNT from treatment and control response
// rates. Returns ok=false when the risk difference is essentially zero
// (|difference| < 0.001) and the NNT is not calculable.
func NumberNeededToTreat(treatmentResponse, controlResponse float64) (nnt int, ok bool) {
	riskDifference := treatmentResponse - controlResponse
	if math.Abs(riskDifference) < 0.001 {
		return 0, false
	}
	return int(math.Round(1 / math.Abs(riskDifference))), true
}
