package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pavlyhalim/pharma-agent-system/internal/domain"
)

// EvidencePooler is the top-level analysis pipeline: it normalizes raw study
// records, pools the overall non-response rate, stratifies by subgroup, and
// grades the evidence base. Every call is independent and side-effect-free;
// the pooler is safe to invoke concurrently for different drugs.
type EvidencePooler struct {
	logger     *logrus.Logger
	normalizer *EvidenceNormalizer
	aggregator *SubgroupAggregator
}

// NewEvidencePooler creates a new evidence pooler from the analysis
// configuration.
func NewEvidencePooler(logger *logrus.Logger, cfg *domain.AnalysisConfig) *EvidencePooler {
	return &EvidencePooler{
		logger:     logger,
		normalizer: NewEvidenceNormalizer(logger, cfg),
		aggregator: NewSubgroupAggregator(logger, domain.PoolingMethod(cfg.PoolingMethod)),
	}
}

// Analyze runs the full pipeline over a fully materialized study list and
// returns the evidence summary. It never fails: bad input degrades to an
// empty or low-confidence result, not an error.
func (p *EvidencePooler) Analyze(drug string, studies []domain.RawStudyRecord) *domain.EvidenceSummary {
	p.logger.WithFields(logrus.Fields{
		"drug":      drug,
		"n_studies": len(studies),
	}).Info("Starting evidence pooling")

	normalized := p.normalizer.NormalizeStudies(studies)

	overall := p.aggregator.PoolOverall(normalized)
	bySubgroup := p.aggregator.PoolBySubgroup(normalized)

	totalPatients := TotalPatients(normalized)
	grade := GradeEvidenceBase(len(studies), totalPatients)

	var warnings []string
	if dropped := len(studies) - len(normalized); dropped > 0 {
		warnings = append(warnings, fmt.Sprintf("%d of %d studies dropped during normalization", dropped, len(studies)))
	}
	if grade == domain.EvidenceInsufficient {
		warnings = append(warnings, "insufficient evidence base for reliable pooled estimates")
	}

	summary := &domain.EvidenceSummary{
		Drug: drug,
		NonResponseRate: domain.SubgroupMetrics{
			Overall:    overall,
			BySubgroup: bySubgroup,
		},
		Studies: normalized,
		Metadata: domain.AnalysisMetadata{
			AnalysisID:      uuid.New().String(),
			StudiesAnalyzed: len(studies),
			StudiesPooled:   len(normalized),
			TotalPatients:   totalPatients,
			DataQuality:     grade,
			GeneratedAt:     time.Now().UTC(),
			Warnings:        warnings,
		},
	}

	p.logger.WithFields(logrus.Fields{
		"drug":           drug,
		"studies_pooled": len(normalized),
		"subgroups":      len(bySubgroup),
		"total_patients": totalPatients,
		"data_quality":   grade.String(),
	}).Info("Completed evidence pooling")

	return summary
}

// TotalPatients sums the sample sizes of all normalized records.
func TotalPatients(records []domain.NormalizedStudyRecord) int {
	total := 0
	for _, r := range records {
		total += r.SampleSize
	}
	return total
}

// GradeEvidenceBase grades the strength of a whole evidence base from the
// number of studies and the total patient count.
func GradeEvidenceBase(nStudies, totalPatients int) domain.EvidenceGrade {
	switch {
	case nStudies >= 10 && totalPatients >= 1000:
		return domain.EvidenceHigh
	case nStudies >= 5 && totalPatients >= 500:
		return domain.EvidenceModerate
	case nStudies >= 2 && totalPatients >= 100:
		return domain.EvidenceLow
	default:
		return domain.EvidenceInsufficient
	}
}
