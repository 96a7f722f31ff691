package stats

import "math"

// normalQuantile returns the inverse standard-normal CDF at p, i.e. the z
// value with P(Z <= z) = p. Uses the identity with the inverse error
// function: qnorm(p) = sqrt(2) * erfinv(2p - 1).
func normalQuantile(p float64) float64 {
	if p <= 0 {
		return math.Inf(-1)
	}
	if p >= 1 {
		return math.Inf(1)
	}
	return math.Sqrt2 * math.Erfinv(2*p-1)
}

// chiSquareSurvival returns P(X > x) for a chi-square random variable with
// df degrees of freedom: the regularized upper incomplete gamma function
// Q(df/2, x/2).
func chiSquareSurvival(x float64, df int) float64 {
	if df <= 0 {
		return math.NaN()
	}
	if x <= 0 {
		return 1.0
	}
	return regularizedGammaQ(float64(df)/2, x/2)
}

const (
	gammaMaxIterations = 500
	gammaEpsilon       = 1e-14
)

// regularizedGammaQ computes Q(a, x) = 1 - P(a, x), selecting the series
// expansion for x < a+1 and the continued fraction otherwise, the standard
// split for fast convergence of both.
func regularizedGammaQ(a, x float64) float64 {
	switch {
	case a <= 0 || x < 0:
		return math.NaN()
	case x == 0:
		return 1.0
	case x < a+1:
		return 1.0 - gammaSeriesP(a, x)
	default:
		return gammaContinuedFractionQ(a, x)
	}
}

// gammaSeriesP computes the regularized lower incomplete gamma P(a, x) by
// its power series.
func gammaSeriesP(a, x float64) float64 {
	lg, _ := math.Lgamma(a)
	ap := a
	sum := 1.0 / a
	del := sum
	for i := 0; i < gammaMaxIterations; i++ {
		ap++
		del *= x / ap
		sum += del
		if math.Abs(del) < math.Abs(sum)*gammaEpsilon {
			break
		}
	}
	return sum * math.Exp(-x+a*math.Log(x)-lg)
}

// gammaContinuedFractionQ computes the regularized upper incomplete gamma
// Q(a, x) by its continued fraction (modified Lentz's method).
func gammaContinuedFractionQ(a, x float64) float64 {
	const tiny = 1e-300
	lg, _ := math.Lgamma(a)

	b := x + 1 - a
	c := 1 / tiny
	d := 1 / b
	h := d
	for i := 1; i <= gammaMaxIterations; i++ {
		an := -float64(i) * (float64(i) - a)
		b += 2
		d = an*d + b
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = b + an/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		del := d * c
		h *= del
		if math.Abs(del-1) < gammaEpsilon {
			break
		}
	}
	return math.Exp(-x+a*math.Log(x)-lg) * h
}
