package service

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/pavlyhalim/pharma-agent-system/internal/domain"
	"github.com/pavlyhalim/pharma-agent-system/pkg/stats"
)

const (
	pubmedBaseURL         = "https://pubmed.ncbi.nlm.nih.gov/"
	clinicalTrialsBaseURL = "https://clinicaltrials.gov/study/"

	abstractSnippetLength = 200
	unknownLabel          = "unknown"
)

// EvidenceNormalizer standardizes heterogeneous raw study records into
// normalized records carrying a non-response rate, its Wilson interval, a
// quality grade, and provenance. Records with missing critical data are
// dropped, not errored: clinical sources are routinely incomplete and one
// bad study must not fail the whole pooling run.
type EvidenceNormalizer struct {
	logger *logrus.Logger
	cfg    *domain.AnalysisConfig
}

// NewEvidenceNormalizer creates a new evidence normalizer.
func NewEvidenceNormalizer(logger *logrus.Logger, cfg *domain.AnalysisConfig) *EvidenceNormalizer {
	return &EvidenceNormalizer{
		logger: logger,
		cfg:    cfg,
	}
}

// NormalizeStudies normalizes a batch of raw study records, skipping any
// record that lacks a sample size or rate information.
func (n *EvidenceNormalizer) NormalizeStudies(studies []domain.RawStudyRecord) []domain.NormalizedStudyRecord {
	normalized := make([]domain.NormalizedStudyRecord, 0, len(studies))

	for i := range studies {
		record, ok := n.normalizeStudy(&studies[i])
		if !ok {
			continue
		}
		normalized = append(normalized, *record)
	}

	n.logger.WithFields(logrus.Fields{
		"input_studies":      len(studies),
		"normalized_studies": len(normalized),
	}).Info("Completed study normalization")

	return normalized
}

// normalizeStudy converts one raw record, reporting ok=false when the record
// must be skipped.
func (n *EvidenceNormalizer) normalizeStudy(study *domain.RawStudyRecord) (*domain.NormalizedStudyRecord, bool) {
	if study.SampleSize <= 0 {
		n.logger.WithField("title", study.Title).Debug("Skipping study without sample size")
		return nil, false
	}

	var nonResponse float64
	switch {
	case study.NonResponseRate != nil:
		nonResponse = *study.NonResponseRate
	case study.ResponseRate != nil:
		nonResponse = 1 - *study.ResponseRate
	default:
		n.logger.WithField("title", study.Title).Debug("Skipping study without rate information")
		return nil, false
	}

	nonResponders := int(math.Round(nonResponse * float64(study.SampleSize)))
	ci := stats.WilsonScoreInterval(nonResponders, study.SampleSize, n.cfg.Confidence)

	design := study.StudyDesign
	if design == "" {
		design = unknownLabel
	}
	quality, concerns := stats.AssessDataQuality(
		study.SampleSize,
		design,
		n.cfg.AssumeRandomization,
		n.cfg.AssumeBlinding,
		n.cfg.AssumeIntentToTreat,
	)

	studyID, studyURL := resolveStudySource(study)

	endpoint := study.Endpoint
	if endpoint == "" {
		endpoint = unknownLabel
	}

	return &domain.NormalizedStudyRecord{
		StudyID:         studyID,
		StudyURL:        studyURL,
		Title:           study.Title,
		SampleSize:      study.SampleSize,
		NonResponseRate: nonResponse,
		CI:              ci,
		Endpoint:        endpoint,
		Subgroups:       study.Subgroups,
		Quality:         quality,
		Concerns:        concerns,
		Citation:        study.Citation,
		AbstractSnippet: truncate(study.Abstract, abstractSnippetLength),
	}, true
}

// resolveStudySource derives the stable study identifier and resolvable URL,
// preferring a publication ID over a trial registry ID.
func resolveStudySource(study *domain.RawStudyRecord) (id, url string) {
	switch {
	case study.PMID != "":
		return study.PMID, pubmedBaseURL + study.PMID
	case study.NCTID != "":
		return study.NCTID, clinicalTrialsBaseURL + study.NCTID
	default:
		return domain.UnknownStudyID, ""
	}
}

// truncate returns at most max characters of s, rune-safe.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
