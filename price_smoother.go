package gocycle

import "golang.org/x/exp/constraints"

// smootherSeedLen is the number of raw samples consumed to prime the
// pre-filter before its first rolling update.
const smootherSeedLen = 3

// priceSmoother is the 4-tap weighted pre-filter applied to raw input ahead
// of the Hilbert transform:
//
//	smoothed[t] = (4*x[t] + 3*x[t-1] + 2*x[t-2] + x[t-3]) / 10
//
// maintained as an O(1) rolling update: one plain sum for the subtraction
// step, one weighted sum, and the trailing value leaving the window.
type priceSmoother[T constraints.Float] struct {
	sub      T // plain sum of the current 4-sample window
	sum      T // weighted sum of the current window (weights 4,3,2,1)
	trailing T // raw input subtracted from sub on the next update
	recent   [4]T
	seen     int
}

// seed consumes one of the first three raw samples. The k-th seed enters the
// weighted sum with weight k, so the first rolling update completes the
// 4/3/2/1 kernel exactly.
func (s *priceSmoother[T]) seed(price T) {
	s.recent[s.seen&3] = price
	s.sub += price
	s.sum += price * T(s.seen+1)
	s.seen++
}

// update rolls one raw sample into the window and returns the smoothed value.
func (s *priceSmoother[T]) update(price T) T {
	idx := s.seen & 3
	s.recent[idx] = price
	s.seen++

	s.sub += price
	s.sub -= s.trailing
	s.sum += price * 4
	s.trailing = s.recent[(idx+1)&3]
	smoothed := s.sum * 0.1
	s.sum -= s.sub
	return smoothed
}
