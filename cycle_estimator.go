package gocycle

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Hard bounds on the dominant cycle period estimate, in samples.
const (
	minCyclePeriod = 6
	maxCyclePeriod = 50
)

const rad2Deg = 180.0 / math.Pi

// cycleEstimator is the homodyne discriminator: it correlates the current
// quadrature pair with the previous sample's pair, smooths the resulting
// real and imaginary components, and converts the phase angle into a period
// estimate bounded by stepwise and hard clamps.
type cycleEstimator[T constraints.Float] struct {
	re     T
	im     T
	period T
}

// update folds one quadrature pair into the discriminator and returns the
// blended period. The raw estimate is refreshed only when both components
// are nonzero; otherwise the previous period carries forward. The clamp
// sequence is order-sensitive: step-up cap, step-down floor, hard bounds,
// then the 0.2/0.8 blend against the previous period.
func (e *cycleEstimator[T]) update(i2, q2 T, prev quadBridge[T]) T {
	e.re = 0.2*(i2*prev.i2+q2*prev.q2) + 0.8*e.re
	e.im = 0.2*(i2*prev.q2-q2*prev.i2) + 0.8*e.im

	prevPeriod := e.period
	period := prevPeriod
	if e.im != 0 && e.re != 0 {
		period = T(360 / (math.Atan(float64(e.im)/float64(e.re)) * rad2Deg))
	}
	if limit := 1.5 * prevPeriod; period > limit {
		period = limit
	}
	if limit := 0.67 * prevPeriod; period < limit {
		period = limit
	}
	if period < minCyclePeriod {
		period = minCyclePeriod
	} else if period > maxCyclePeriod {
		period = maxCyclePeriod
	}
	e.period = 0.2*period + 0.8*prevPeriod
	return e.period
}
