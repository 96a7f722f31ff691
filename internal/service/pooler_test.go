package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavlyhalim/pharma-agent-system/internal/domain"
)

func TestEvidencePoolerAnalyze(t *testing.T) {
	pooler := NewEvidencePooler(newTestLogger(), defaultAnalysisConfig())

	studies := []domain.RawStudyRecord{
		{
			PMID:            "10000001",
			Title:           "Trial one",
			SampleSize:      100,
			NonResponseRate: floatPtr(0.30),
			Subgroups: []domain.SubgroupEntry{
				{Name: "CYP2C19 poor metabolizer", ResponseRate: floatPtr(0.20), SampleSize: 40},
			},
		},
		{
			NCTID:        "NCT00000002",
			Title:        "Trial two",
			SampleSize:   150,
			ResponseRate: floatPtr(0.75),
			Subgroups: []domain.SubgroupEntry{
				{Name: "CYP2C19 poor metabolizer", ResponseRate: floatPtr(0.15), SampleSize: 60},
			},
		},
		{
			// Dropped during normalization.
			PMID:       "10000003",
			Title:      "No usable data",
			SampleSize: 80,
		},
	}

	summary := pooler.Analyze("clopidogrel", studies)
	require.NotNil(t, summary)

	assert.Equal(t, "clopidogrel", summary.Drug)
	assert.Len(t, summary.Studies, 2)

	overall := summary.NonResponseRate.Overall
	require.True(t, overall.HasData())
	assert.Equal(t, 250, overall.N)
	assert.Equal(t, 2, overall.NStudies)
	assert.Len(t, overall.ContributingStudies, 2)

	subgroup, ok := summary.NonResponseRate.BySubgroup["CYP2C19 poor metabolizer"]
	require.True(t, ok)
	assert.Equal(t, 100, subgroup.N)

	meta := summary.Metadata
	assert.NotEmpty(t, meta.AnalysisID)
	assert.Equal(t, 3, meta.StudiesAnalyzed)
	assert.Equal(t, 2, meta.StudiesPooled)
	assert.Equal(t, 250, meta.TotalPatients)
	assert.Equal(t, domain.EvidenceLow, meta.DataQuality)
	assert.Contains(t, meta.Warnings, "1 of 3 studies dropped during normalization")
}

func TestEvidencePoolerAnalyzeEmptyInput(t *testing.T) {
	pooler := NewEvidencePooler(newTestLogger(), defaultAnalysisConfig())

	summary := pooler.Analyze("warfarin", nil)
	require.NotNil(t, summary)

	assert.False(t, summary.NonResponseRate.Overall.HasData())
	assert.Empty(t, summary.NonResponseRate.BySubgroup)
	assert.Empty(t, summary.Studies)
	assert.Equal(t, domain.EvidenceInsufficient, summary.Metadata.DataQuality)
	assert.Contains(t, summary.Metadata.Warnings, "insufficient evidence base for reliable pooled estimates")
}

func TestEvidencePoolerRunsAreIndependent(t *testing.T) {
	pooler := NewEvidencePooler(newTestLogger(), defaultAnalysisConfig())

	studies := []domain.RawStudyRecord{
		{PMID: "1", SampleSize: 100, NonResponseRate: floatPtr(0.3)},
		{PMID: "2", SampleSize: 200, NonResponseRate: floatPtr(0.25)},
	}

	first := pooler.Analyze("drug", studies)
	second := pooler.Analyze("drug", studies)

	// Same statistical output, fresh run identity.
	assert.Equal(t, *first.NonResponseRate.Overall.Rate, *second.NonResponseRate.Overall.Rate)
	assert.NotEqual(t, first.Metadata.AnalysisID, second.Metadata.AnalysisID)
}

func TestGradeEvidenceBase(t *testing.T) {
	tests := []struct {
		name          string
		nStudies      int
		totalPatients int
		want          domain.EvidenceGrade
	}{
		{"High", 10, 1000, domain.EvidenceHigh},
		{"Many studies but few patients", 12, 800, domain.EvidenceModerate},
		{"Moderate", 5, 500, domain.EvidenceModerate},
		{"Low", 2, 100, domain.EvidenceLow},
		{"Single study", 1, 5000, domain.EvidenceInsufficient},
		{"Nothing", 0, 0, domain.EvidenceInsufficient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GradeEvidenceBase(tt.nStudies, tt.totalPatients))
		})
	}
}

func TestTotalPatients(t *testing.T) {
	records := []domain.NormalizedStudyRecord{
		{SampleSize: 100},
		{SampleSize: 250},
	}
	assert.Equal(t, 350, TotalPatients(records))
	assert.Equal(t, 0, TotalPatients(nil))
}
