package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pavlyhalim/pharma-agent-system/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func TestConvertEffectSize(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		from     domain.EffectMeasure
		to       domain.EffectMeasure
		baseline *float64
		want     float64
		wantErr  error
	}{
		{
			name:  "OR to log OR",
			value: 2.0, from: domain.OddsRatio, to: domain.LogOddsRatio,
			want: math.Log(2.0),
		},
		{
			name:  "RR to log OR",
			value: 1.5, from: domain.RiskRatio, to: domain.LogOddsRatio,
			want: math.Log(1.5),
		},
		{
			name:  "HR to log OR",
			value: 0.7, from: domain.HazardRatio, to: domain.LogOddsRatio,
			want: math.Log(0.7),
		},
		{
			name:  "Log of non-positive ratio",
			value: 0.0, from: domain.OddsRatio, to: domain.LogOddsRatio,
			wantErr: domain.ErrNonPositiveEffect,
		},
		{
			name:  "OR to probability",
			value: 2.0, from: domain.OddsRatio, to: domain.Probability,
			baseline: floatPtr(0.2),
			// baseline odds 0.25, new odds 0.5, probability 1/3
			want: 1.0 / 3.0,
		},
		{
			name:  "RR to probability",
			value: 1.5, from: domain.RiskRatio, to: domain.Probability,
			baseline: floatPtr(0.2),
			want:     0.3,
		},
		{
			name:  "Risk difference to probability",
			value: 0.1, from: domain.RiskDifference, to: domain.Probability,
			baseline: floatPtr(0.2),
			want:     0.3,
		},
		{
			name:  "OR to probability without baseline",
			value: 2.0, from: domain.OddsRatio, to: domain.Probability,
			wantErr: domain.ErrMissingBaselineRisk,
		},
		{
			name:  "Identity",
			value: 0.42, from: domain.Proportion, to: domain.Proportion,
			want: 0.42,
		},
		{
			name:  "Unsupported pair",
			value: 0.3, from: domain.Probability, to: domain.OddsRatio,
			wantErr: domain.ErrConversionNotSupported,
		},
		{
			name:  "Unsupported log OR to RR",
			value: 0.5, from: domain.LogOddsRatio, to: domain.RiskRatio,
			wantErr: domain.ErrConversionNotSupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertEffectSize(tt.value, tt.from, tt.to, tt.baseline)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestNumberNeededToTreat(t *testing.T) {
	tests := []struct {
		name      string
		treatment float64
		control   float64
		wantNNT   int
		wantOK    bool
	}{
		{"Clear benefit", 0.6, 0.4, 5, true},
		{"Rounded", 0.5, 0.2, 3, true},
		{"Harm uses absolute difference", 0.2, 0.5, 3, true},
		{"No difference", 0.4, 0.4, 0, false},
		{"Essentially zero difference", 0.4005, 0.4, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nnt, ok := NumberNeededToTreat(tt.treatment, tt.control)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantNNT, nnt)
			}
		})
	}
}
