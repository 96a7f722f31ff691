package service

import (
	"github.com/sirupsen/logrus"

	"github.com/pavlyhalim/pharma-agent-system/internal/domain"
	"github.com/pavlyhalim/pharma-agent-system/pkg/stats"
)

const contributingTitleLength = 100

// SubgroupAggregator pools normalized study records into an overall metric
// and per-subgroup metrics. All accumulators are local to one call; nothing
// is cached across invocations.
type SubgroupAggregator struct {
	logger *logrus.Logger
	method domain.PoolingMethod
}

// NewSubgroupAggregator creates a new aggregator. An invalid method falls
// back to inverse-variance weighting.
func NewSubgroupAggregator(logger *logrus.Logger, method domain.PoolingMethod) *SubgroupAggregator {
	if !method.IsValid() {
		logger.WithField("method", method.String()).Warn("Unknown pooling method, using inverse variance")
		method = domain.InverseVariance
	}
	return &SubgroupAggregator{
		logger: logger,
		method: method,
	}
}

// PoolOverall pools the non-response rates of every normalized record into a
// single metric with contributing-study provenance. An empty input yields the
// explicit no-data metric (nil rate and CI, zero n).
func (a *SubgroupAggregator) PoolOverall(records []domain.NormalizedStudyRecord) domain.PooledMetric {
	if len(records) == 0 {
		return domain.PooledMetric{}
	}

	proportions := make([]float64, len(records))
	sampleSizes := make([]int, len(records))
	totalN := 0
	for i, r := range records {
		proportions[i] = r.NonResponseRate
		sampleSizes[i] = r.SampleSize
		totalN += r.SampleSize
	}

	rate, ci := stats.PooledProportion(proportions, sampleSizes, a.method)

	contributing := make([]domain.ContributingStudy, len(records))
	for i, r := range records {
		contributing[i] = domain.ContributingStudy{
			ID:    r.StudyID,
			URL:   r.StudyURL,
			Title: truncate(r.Title, contributingTitleLength),
			N:     r.SampleSize,
			Rate:  r.NonResponseRate,
		}
	}

	a.logger.WithFields(logrus.Fields{
		"n_studies":   len(records),
		"total_n":     totalN,
		"pooled_rate": rate,
	}).Debug("Pooled overall non-response rate")

	return domain.PooledMetric{
		Rate:                &rate,
		CI:                  &ci,
		N:                   totalN,
		NStudies:            len(records),
		ContributingStudies: contributing,
	}
}

// subgroupBucket accumulates the per-subgroup proportions and sample sizes
// collected while scanning the study list. Buckets live only for the
// duration of one PoolBySubgroup call.
type subgroupBucket struct {
	proportions []float64
	sampleSizes []int
}

// PoolBySubgroup scans every record's subgroup list, accumulates non-response
// proportions per subgroup name, and pools each bucket independently.
// Subgroup names are case-sensitive, verbatim from the source data; buckets
// with zero valid entries are omitted from the result entirely.
func (a *SubgroupAggregator) PoolBySubgroup(records []domain.NormalizedStudyRecord) map[string]domain.PooledMetric {
	buckets := make(map[string]*subgroupBucket)

	for _, record := range records {
		for _, subgroup := range record.Subgroups {
			if subgroup.Name == "" {
				continue
			}

			bucket, exists := buckets[subgroup.Name]
			if !exists {
				bucket = &subgroupBucket{}
				buckets[subgroup.Name] = bucket
			}

			if subgroup.ResponseRate == nil || subgroup.SampleSize <= 0 {
				continue
			}

			bucket.proportions = append(bucket.proportions, 1-*subgroup.ResponseRate)
			bucket.sampleSizes = append(bucket.sampleSizes, subgroup.SampleSize)
		}
	}

	metrics := make(map[string]domain.PooledMetric, len(buckets))
	for name, bucket := range buckets {
		if len(bucket.proportions) == 0 {
			continue
		}

		rate, ci := stats.PooledProportion(bucket.proportions, bucket.sampleSizes, a.method)

		totalN := 0
		for _, n := range bucket.sampleSizes {
			totalN += n
		}

		metrics[name] = domain.PooledMetric{
			Rate:     &rate,
			CI:       &ci,
			N:        totalN,
			NStudies: len(bucket.proportions),
		}
	}

	a.logger.WithField("subgroups", len(metrics)).Debug("Pooled subgroup metrics")

	return metrics
}
