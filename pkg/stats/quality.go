package stats

import (
	"strings"

	"github.com/pavlyhalim/pharma-agent-system/internal/domain"
)

// Concern strings produced by quality assessment. Exported so consumers can
// match on specific concerns without string literals.
const (
	ConcernVerySmallSample = "Very small sample size (<50)"
	ConcernSmallSample     = "Small sample size (<100)"
	ConcernNotRCT          = "Not an RCT"
	ConcernNoRandomization = "No randomization"
	ConcernNoBlinding      = "No blinding"
	ConcernNoITT           = "No intent-to-treat analysis"
)

// AssessDataQuality grades a single study's methodological quality and
// returns the grade with an ordered list of concerns.
//
// Concerns accumulate independently; the grade is a hard threshold ladder:
// zero concerns and n >= 200 is high, at most two concerns and n >= 100 is
// moderate, everything else is low.
func AssessDataQuality(sampleSize int, studyDesign string, hasRandomization, hasBlinding, hasIntentToTreat bool) (domain.QualityGrade, []string) {
	var concerns []string

	if sampleSize < 50 {
		concerns = append(concerns, ConcernVerySmallSample)
	} else if sampleSize < 100 {
		concerns = append(concerns, ConcernSmallSample)
	}

	if !isRandomizedControlledTrial(studyDesign) {
		concerns = append(concerns, ConcernNotRCT)
	}

	if !hasRandomization {
		concerns = append(concerns, ConcernNoRandomization)
	}
	if !hasBlinding {
		concerns = append(concerns, ConcernNoBlinding)
	}
	if !hasIntentToTreat {
		concerns = append(concerns, ConcernNoITT)
	}

	switch {
	case len(concerns) == 0 && sampleSize >= 200:
		return domain.QualityHigh, concerns
	case len(concerns) <= 2 && sampleSize >= 100:
		return domain.QualityModerate, concerns
	default:
		return domain.QualityLow, concerns
	}
}

// isRandomizedControlledTrial matches the study design label against the
// accepted RCT spellings, case-insensitively.
func isRandomizedControlledTrial(studyDesign string) bool {
	switch strings.ToLower(studyDesign) {
	case "rct", "randomized controlled trial":
		return true
	default:
		return false
	}
}
