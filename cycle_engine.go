// Package gocycle measures the dominant cycle of a uniformly sampled price
// series using a discretized Hilbert transform, and exposes the two adaptive
// outputs built on that measurement: the dominant cycle phase and the MESA
// adaptive moving average pair. Batch scans are generic over the float type;
// the streaming consumer types mirror the per-sample API of the evdnx
// indicator catalogue.
package gocycle

import (
	"errors"

	"golang.org/x/exp/constraints"
)

// Sentinel errors shared by the batch operations and streaming consumers.
var (
	// ErrOutOfRange reports an index range that does not fit the input or
	// the caller-provided output buffers.
	ErrOutOfRange = errors.New("index range out of bounds")
	// ErrInvalidParams reports a parameter outside its documented domain.
	ErrInvalidParams = errors.New("invalid parameters")
	// ErrInsufficientData reports that the warm-up window has not been
	// consumed yet.
	ErrInsufficientData = errors.New("insufficient data for cycle calculation")
)

// Warm-up structure of a scan: three seed samples prime the pre-filter, a
// consumer-specific number of rolling updates settles it, and the remaining
// lookback samples run the full pipeline without emitting. The adaptive
// average and the phase output deliberately settle the pre-filter for
// different lengths; the kernel itself is identical.
const (
	mamaSmootherWarm  = 9
	phaseSmootherWarm = 34

	mamaBaseLookback  = 32
	phaseBaseLookback = 63
)

// MamaLookback returns the number of leading input samples consumed before
// the adaptive moving average pair produces its first value.
func MamaLookback(cfg Config) int {
	return mamaBaseLookback + cfg.UnstablePeriod
}

// DcPhaseLookback returns the number of leading input samples consumed before
// the dominant cycle phase produces its first value.
func DcPhaseLookback(cfg Config) int {
	return phaseBaseLookback + cfg.UnstablePeriod
}

// cycleEngine chains the pre-filter, the parity Hilbert transformer and the
// period estimator into the per-sample step shared by both producers.
type cycleEngine[T constraints.Float] struct {
	smoother  priceSmoother[T]
	transform hilbertTransformer[T]
	estimator cycleEstimator[T]
	bridge    quadBridge[T]

	today    int // absolute input index of the next sample; drives parity
	warmLeft int // rolling pre-filter updates left before the pipeline engages
}

func newCycleEngine[T constraints.Float](firstIdx, smootherWarm int) cycleEngine[T] {
	return cycleEngine[T]{today: firstIdx, warmLeft: smootherWarm}
}

// step feeds one raw sample through the pipeline. ok is false while the
// pre-filter is still seeding or settling; once true, the returned sample
// carries the smoothed price and quadrature components, and the period
// estimate has been advanced.
func (e *cycleEngine[T]) step(price T) (s hilbertSample[T], ok bool) {
	if e.smoother.seen < smootherSeedLen {
		e.smoother.seed(price)
		e.today++
		return s, false
	}
	if e.warmLeft > 0 {
		e.smoother.update(price)
		e.warmLeft--
		e.today++
		return s, false
	}

	// The transform gain derives from the previous sample's period estimate.
	adjPeriod := 0.075*e.estimator.period + 0.54
	smoothed := e.smoother.update(price)
	even := e.today%2 == 0
	s = e.transform.update(smoothed, adjPeriod, even, e.bridge)
	e.estimator.update(s.i2, s.q2, e.bridge)
	e.bridge = quadBridge[T]{i2: s.i2, q2: s.q2}
	e.today++
	return s, true
}
