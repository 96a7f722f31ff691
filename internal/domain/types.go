// Package domain contains the core value types for pooled clinical-evidence
// analysis: raw and normalized study records, pooled metrics with uncertainty,
// and the enumerations shared by the statistical routines and services.
//
// All entities are value objects. Nothing in this package carries shared
// mutable state; normalized records are created once and never mutated.
package domain

// PoolingMethod selects how per-study weights are derived when combining
// proportions into a single pooled estimate.
type PoolingMethod string

const (
	// InverseVariance weights each study by 1/var(p_i), giving more
	// influence to more precise studies. Default for all pooling here.
	InverseVariance PoolingMethod = "inverse_variance"
	// SampleSize weights each study by its raw sample size.
	SampleSize PoolingMethod = "sample_size"
)

// IsValid reports whether the pooling method is one of the supported values.
func (m PoolingMethod) IsValid() bool {
	switch m {
	case InverseVariance, SampleSize:
		return true
	default:
		return false
	}
}

// String returns the string representation of the pooling method.
func (m PoolingMethod) String() string {
	return string(m)
}

// QualityGrade is the three-level methodological quality grade assigned to a
// single study by the data-quality assessment.
type QualityGrade string

const (
	QualityHigh     QualityGrade = "high"
	QualityModerate QualityGrade = "moderate"
	QualityLow      QualityGrade = "low"
)

// IsValid reports whether the grade is one of the three defined levels.
func (q QualityGrade) IsValid() bool {
	switch q {
	case QualityHigh, QualityModerate, QualityLow:
		return true
	default:
		return false
	}
}

// String returns the string representation of the quality grade.
func (q QualityGrade) String() string {
	return string(q)
}

// EvidenceGrade summarizes the strength of an entire evidence base (all
// studies for one drug), as opposed to QualityGrade which grades one study.
type EvidenceGrade string

const (
	EvidenceHigh         EvidenceGrade = "high"
	EvidenceModerate     EvidenceGrade = "moderate"
	EvidenceLow          EvidenceGrade = "low"
	EvidenceInsufficient EvidenceGrade = "insufficient"
)

// IsValid reports whether the evidence grade is a defined level.
func (e EvidenceGrade) IsValid() bool {
	switch e {
	case EvidenceHigh, EvidenceModerate, EvidenceLow, EvidenceInsufficient:
		return true
	default:
		return false
	}
}

// String returns the string representation of the evidence grade.
func (e EvidenceGrade) String() string {
	return string(e)
}

// EffectMeasure identifies the representation of a scalar effect size for
// conversion between comparable units.
type EffectMeasure string

const (
	OddsRatio      EffectMeasure = "OR"
	RiskRatio      EffectMeasure = "RR"
	HazardRatio    EffectMeasure = "HR"
	RiskDifference EffectMeasure = "risk_difference"
	LogOddsRatio   EffectMeasure = "log_OR"
	Probability    EffectMeasure = "probability"
	Proportion     EffectMeasure = "proportion"
)

// IsValid reports whether the effect measure is a known representation.
func (m EffectMeasure) IsValid() bool {
	switch m {
	case OddsRatio, RiskRatio, HazardRatio, RiskDifference, LogOddsRatio, Probability, Proportion:
		return true
	default:
		return false
	}
}

// String returns the string representation of the effect measure.
func (m EffectMeasure) String() string {
	return string(m)
}
