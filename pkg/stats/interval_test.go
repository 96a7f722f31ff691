package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pavlyhalim/pharma-agent-system/internal/domain"
)

func TestWilsonScoreIntervalZeroTrials(t *testing.T) {
	ci := WilsonScoreInterval(0, 0, 0.95)
	assert.Equal(t, domain.ConfidenceInterval{}, ci)
}

func TestWilsonScoreIntervalKnownValue(t *testing.T) {
	// 30/100 at 95%: Wilson bounds (0.2189, 0.3958).
	ci := WilsonScoreInterval(30, 100, 0.95)
	assert.InDelta(t, 0.2189, ci.Lower, 1e-3)
	assert.InDelta(t, 0.3958, ci.Upper, 1e-3)
}

func TestWilsonScoreIntervalBoundsAndContainment(t *testing.T) {
	trials := []int{1, 2, 5, 10, 25, 50, 100, 500}

	for _, n := range trials {
		for successes := 0; successes <= n; successes++ {
			ci := WilsonScoreInterval(successes, n, 0.95)
			p := float64(successes) / float64(n)

			assert.GreaterOrEqual(t, ci.Lower, 0.0, "n=%d s=%d", n, successes)
			assert.LessOrEqual(t, ci.Upper, 1.0, "n=%d s=%d", n, successes)
			assert.LessOrEqual(t, ci.Lower, p, "n=%d s=%d", n, successes)
			assert.GreaterOrEqual(t, ci.Upper, p, "n=%d s=%d", n, successes)
		}
	}
}

func TestWilsonScoreIntervalExtremeProportions(t *testing.T) {
	// Unlike the Wald interval, Wilson bounds stay strictly inside (0,1)
	// at the extremes for finite n.
	ci := WilsonScoreInterval(0, 20, 0.95)
	assert.InDelta(t, 0.0, ci.Lower, 1e-12)
	assert.Greater(t, ci.Upper, 0.01)
	assert.Less(t, ci.Upper, 1.0)

	ci = WilsonScoreInterval(20, 20, 0.95)
	assert.InDelta(t, 1.0, ci.Upper, 1e-12)
	assert.Less(t, ci.Lower, 0.99)
	assert.Greater(t, ci.Lower, 0.0)
}

func TestWilsonScoreIntervalNarrowsWithSampleSize(t *testing.T) {
	wide := WilsonScoreInterval(3, 10, 0.95)
	narrow := WilsonScoreInterval(30, 100, 0.95)
	assert.Less(t, narrow.Width(), wide.Width())
}

func TestWilsonScoreIntervalConfidenceDefault(t *testing.T) {
	// Non-positive confidence falls back to 95%.
	fallback := WilsonScoreInterval(30, 100, 0)
	explicit := WilsonScoreInterval(30, 100, 0.95)
	assert.Equal(t, explicit, fallback)

	// Higher confidence widens the interval.
	ci99 := WilsonScoreInterval(30, 100, 0.99)
	assert.Greater(t, ci99.Width(), explicit.Width())
}
