package gocycle

import "golang.org/x/exp/constraints"

// Discretized Hilbert transform FIR coefficients. Together with the
// register depth below they realize the antisymmetric combination
//
//	a*x[t] + b*x[t-2] - b*x[t-4] - a*x[t-6]
//
// over one parity's input cadence.
const (
	hilbertCoeffA = 0.0962
	hilbertCoeffB = 0.5769
)

// hilbertChannel is a single filter channel for a single parity: a 3-deep lag
// register ring plus the previous output term and previous raw input carried
// between applications. Consecutive same-parity applications sit two absolute
// samples apart, so the three registers span inputs 2, 4 and 6 samples back.
type hilbertChannel[T constraints.Float] struct {
	lags      [3]T
	prev      T
	prevInput T
}

// apply folds one input into the channel and returns the transform output
// scaled by the period-adjusted gain. The register at idx holds the oldest
// lag and is overwritten with the newest.
func (c *hilbertChannel[T]) apply(input, adjPeriod T, idx int) T {
	scaled := hilbertCoeffA * input
	out := -c.lags[idx]
	c.lags[idx] = scaled
	out += scaled
	out -= c.prev
	c.prev = hilbertCoeffB * c.prevInput
	out += c.prev
	c.prevInput = input
	out *= adjPeriod
	return out
}

// parityRegisters groups the four chained channels of one sample parity.
// Even-sample updates must never write the odd set and vice versa; the
// transformer below is the only code that routes into them.
type parityRegisters[T constraints.Float] struct {
	detrender hilbertChannel[T]
	q1        hilbertChannel[T]
	jI        hilbertChannel[T]
	jQ        hilbertChannel[T]
}

// quadBridge carries the previous sample's smoothed quadrature pair across
// the parity boundary. Besides the detrender history feeding I1, it is the
// only Hilbert state shared by both parities, and it is passed by value.
type quadBridge[T constraints.Float] struct {
	i2 T
	q2 T
}

// hilbertSample is the transformer output for one processed sample.
type hilbertSample[T constraints.Float] struct {
	smoothed T // pre-filtered price that entered the transform
	i1       T // in-phase component (detrender delayed three samples)
	q1       T // quadrature component
	i2       T // smoothed in-phase after the 90-degree advance
	q2       T // smoothed quadrature after the 90-degree advance
}

// hilbertTransformer drives the even and odd register sets. A single 3-deep
// cursor is shared by both sets and advances only after even samples, so each
// set still cycles its own three slots once per six absolute samples.
type hilbertTransformer[T constraints.Float] struct {
	even parityRegisters[T]
	odd  parityRegisters[T]
	idx  int

	// Detrender values delayed two and three samples, feeding the opposite
	// parity's in-phase input on later samples.
	i1ForEvenPrev2 T
	i1ForEvenPrev3 T
	i1ForOddPrev2  T
	i1ForOddPrev3  T
}

// update runs the four chained transforms for one sample and blends the new
// quadrature pair against the bridge carried over from the previous sample:
//
//	Q2 = 0.2*(Q1 + jI) + 0.8*prevQ2
//	I2 = 0.2*(I1 - jQ) + 0.8*prevI2
func (h *hilbertTransformer[T]) update(smoothed, adjPeriod T, even bool, prev quadBridge[T]) hilbertSample[T] {
	s := hilbertSample[T]{smoothed: smoothed}
	if even {
		r := &h.even
		det := r.detrender.apply(smoothed, adjPeriod, h.idx)
		s.q1 = r.q1.apply(det, adjPeriod, h.idx)
		s.i1 = h.i1ForEvenPrev3
		jI := r.jI.apply(s.i1, adjPeriod, h.idx)
		jQ := r.jQ.apply(s.q1, adjPeriod, h.idx)
		h.idx++
		if h.idx == 3 {
			h.idx = 0
		}
		s.q2 = 0.2*(s.q1+jI) + 0.8*prev.q2
		s.i2 = 0.2*(s.i1-jQ) + 0.8*prev.i2
		h.i1ForOddPrev3 = h.i1ForOddPrev2
		h.i1ForOddPrev2 = det
		return s
	}
	r := &h.odd
	det := r.detrender.apply(smoothed, adjPeriod, h.idx)
	s.q1 = r.q1.apply(det, adjPeriod, h.idx)
	s.i1 = h.i1ForOddPrev3
	jI := r.jI.apply(s.i1, adjPeriod, h.idx)
	jQ := r.jQ.apply(s.q1, adjPeriod, h.idx)
	s.q2 = 0.2*(s.q1+jI) + 0.8*prev.q2
	s.i2 = 0.2*(s.i1-jQ) + 0.8*prev.i2
	h.i1ForEvenPrev3 = h.i1ForEvenPrev2
	h.i1ForEvenPrev2 = det
	return s
}
