package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolingMethodIsValid(t *testing.T) {
	assert.True(t, InverseVariance.IsValid())
	assert.True(t, SampleSize.IsValid())
	assert.False(t, PoolingMethod("").IsValid())
	assert.False(t, PoolingMethod("bayesian").IsValid())
}

func TestQualityGradeIsValid(t *testing.T) {
	for _, grade := range []QualityGrade{QualityHigh, QualityModerate, QualityLow} {
		assert.True(t, grade.IsValid(), grade.String())
	}
	assert.False(t, QualityGrade("excellent").IsValid())
}

func TestEvidenceGradeIsValid(t *testing.T) {
	for _, grade := range []EvidenceGrade{EvidenceHigh, EvidenceModerate, EvidenceLow, EvidenceInsufficient} {
		assert.True(t, grade.IsValid(), grade.String())
	}
	assert.False(t, EvidenceGrade("unknown").IsValid())
}

func TestEffectMeasureIsValid(t *testing.T) {
	for _, m := range []EffectMeasure{OddsRatio, RiskRatio, HazardRatio, RiskDifference, LogOddsRatio, Probability, Proportion} {
		assert.True(t, m.IsValid(), m.String())
	}
	assert.False(t, EffectMeasure("SMD").IsValid())
}
