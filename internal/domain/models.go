package domain

import (
	"errors"
	"fmt"
	"time"
)

// UnknownStudyID is the identifier assigned to records that carry neither a
// publication ID nor a trial registry ID.
const UnknownStudyID = "Unknown"

// RawStudyRecord is the engine's input shape: one structured record per
// source document, assembled by the external literature/trial-mining
// collaborator. Numeric fields are pointers because the extraction layer
// only populates values explicitly stated in the source — a nil rate means
// "not reported", never zero.
type RawStudyRecord struct {
	PMID            string          `json:"pmid,omitempty"`
	NCTID           string          `json:"nct_id,omitempty"`
	Title           string          `json:"title"`
	SampleSize      int             `json:"sample_size"`
	ResponseRate    *float64        `json:"response_rate,omitempty"`
	NonResponseRate *float64        `json:"non_response_rate,omitempty"`
	Endpoint        string          `json:"endpoint,omitempty"`
	Subgroups       []SubgroupEntry `json:"subgroups,omitempty"`
	StudyDesign     string          `json:"study_design,omitempty"`
	Citation        string          `json:"citation,omitempty"`
	Abstract        string          `json:"abstract,omitempty"`
}

// HasRateInformation reports whether the record carries at least one of the
// two rate fields the normalizer can work from.
func (r *RawStudyRecord) HasRateInformation() bool {
	return r.NonResponseRate != nil || r.ResponseRate != nil
}

// Validate checks the record against the input contract. The normalizer
// drops invalid records silently; this is for callers that want the reason.
func (r *RawStudyRecord) Validate() error {
	if r.PMID == "" && r.NCTID == "" {
		return fmt.Errorf("study record validation: %w", errors.New("a publication or trial identifier is required"))
	}
	if r.SampleSize <= 0 {
		return fmt.Errorf("study record validation: %w", errors.New("sample size must be positive"))
	}
	if !r.HasRateInformation() {
		return fmt.Errorf("study record validation: %w", errors.New("response_rate or non_response_rate is required"))
	}
	if r.ResponseRate != nil && (*r.ResponseRate < 0 || *r.ResponseRate > 1) {
		return fmt.Errorf("study record validation: %w", errors.New("response_rate must be in [0,1]"))
	}
	if r.NonResponseRate != nil && (*r.NonResponseRate < 0 || *r.NonResponseRate > 1) {
		return fmt.Errorf("study record validation: %w", errors.New("non_response_rate must be in [0,1]"))
	}
	return nil
}

// SubgroupEntry is one named stratum reported by a study (e.g. a CYP2C19
// metabolizer phenotype) with its own response rate and sample size.
type SubgroupEntry struct {
	Name         string   `json:"name"`
	ResponseRate *float64 `json:"response_rate,omitempty"`
	SampleSize   int      `json:"sample_size"`
}

// ConfidenceInterval is a two-sided interval around a point estimate.
// For proportions both bounds are clamped to [0,1]; for general effect
// sizes (log-odds and friends) the bounds are unbounded.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Width returns the interval width.
func (ci ConfidenceInterval) Width() float64 {
	return ci.Upper - ci.Lower
}

// NormalizedStudyRecord is the per-study output of normalization: a
// non-response rate with its Wilson interval, quality grade, and provenance.
// Created once per valid input record and never mutated afterwards.
type NormalizedStudyRecord struct {
	StudyID         string             `json:"study_id"`
	StudyURL        string             `json:"study_url,omitempty"`
	Title           string             `json:"title"`
	SampleSize      int                `json:"sample_size"`
	NonResponseRate float64            `json:"non_response_rate"`
	CI              ConfidenceInterval `json:"ci"`
	Endpoint        string             `json:"endpoint"`
	Subgroups       []SubgroupEntry    `json:"subgroups,omitempty"`
	Quality         QualityGrade       `json:"quality"`
	Concerns        []string           `json:"concerns,omitempty"`
	Citation        string             `json:"citation,omitempty"`
	AbstractSnippet string             `json:"abstract_snippet,omitempty"`
}

// Validate checks the record invariant 0 <= lower <= rate <= upper <= 1.
func (r *NormalizedStudyRecord) Validate() error {
	if r.SampleSize <= 0 {
		return fmt.Errorf("normalized record validation: %w", errors.New("sample size must be positive"))
	}
	if r.NonResponseRate < 0 || r.NonResponseRate > 1 {
		return fmt.Errorf("normalized record validation: %w", errors.New("non-response rate must be in [0,1]"))
	}
	if r.CI.Lower < 0 || r.CI.Upper > 1 || r.CI.Lower > r.NonResponseRate || r.CI.Upper < r.NonResponseRate {
		return fmt.Errorf("normalized record validation: %w", errors.New("confidence interval must contain the rate within [0,1]"))
	}
	if !r.Quality.IsValid() {
		return fmt.Errorf("normalized record validation: %w", errors.New("invalid quality grade"))
	}
	return nil
}

// ContributingStudy is the per-study provenance summary attached to the
// overall pooled metric so consumers can audit what went into the estimate.
type ContributingStudy struct {
	ID    string  `json:"id"`
	URL   string  `json:"url,omitempty"`
	Title string  `json:"title"`
	N     int     `json:"n"`
	Rate  float64 `json:"rate"`
}

// PooledMetric is a pooled non-response estimate with uncertainty. Rate and
// CI are nil when the input set was empty — an explicit "no data" state that
// is distinct from a true pooled rate of zero. Callers must branch on
// HasData, not on the value of Rate.
type PooledMetric struct {
	Rate                *float64            `json:"rate"`
	CI                  *ConfidenceInterval `json:"ci"`
	N                   int                 `json:"n"`
	NStudies            int                 `json:"n_studies"`
	ContributingStudies []ContributingStudy `json:"contributing_studies,omitempty"`
}

// HasData reports whether the metric was pooled from at least one study.
func (m *PooledMetric) HasData() bool {
	return m.Rate != nil
}

// SubgroupMetrics is the full stratified pooling output: the overall metric
// plus one metric per subgroup name. Subgroup keys are case-sensitive,
// verbatim from the source data; subgroups with zero valid entries are
// omitted from the map entirely.
type SubgroupMetrics struct {
	Overall    PooledMetric            `json:"overall"`
	BySubgroup map[string]PooledMetric `json:"by_subgroup"`
}

// AnalysisMetadata carries audit information for one pooling run.
type AnalysisMetadata struct {
	AnalysisID      string        `json:"analysis_id"`
	StudiesAnalyzed int           `json:"studies_analyzed"`
	StudiesPooled   int           `json:"studies_pooled"`
	TotalPatients   int           `json:"total_patients"`
	DataQuality     EvidenceGrade `json:"data_quality"`
	GeneratedAt     time.Time     `json:"generated_at"`
	Warnings        []string      `json:"warnings,omitempty"`
}

// EvidenceSummary is the complete output of one analysis: normalized
// per-study records, pooled metrics overall and by subgroup, and run
// metadata. Serialized as-is by the CLI boundary.
type EvidenceSummary struct {
	Drug            string                  `json:"drug,omitempty"`
	NonResponseRate SubgroupMetrics         `json:"non_response_rate"`
	Studies         []NormalizedStudyRecord `json:"studies"`
	Metadata        AnalysisMetadata        `json:"metadata"`
}
