package gocycle

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// smoothPriceSize is the physical capacity of the smoothed-price ring feeding
// the phase window. The period clamps keep the window at or below 50 samples,
// so the ring never truncates a window it is asked to cover.
const smoothPriceSize = 50

const twoPi = 2 * math.Pi

// phaseEngine layers the dominant-cycle-phase state over the shared pipeline:
// the 0.33/0.67 smoothed period, the ring of recent smoothed prices, and the
// phase scalar that the zero-imaginary branch adjusts in place.
type phaseEngine[T constraints.Float] struct {
	core         cycleEngine[T]
	smoothPeriod T
	ring         [smoothPriceSize]T
	ringIdx      int
	dcPhase      T
}

func newPhaseEngine[T constraints.Float](firstIdx int) phaseEngine[T] {
	return phaseEngine[T]{core: newCycleEngine[T](firstIdx, phaseSmootherWarm)}
}

// step feeds one raw sample. ok turns true once the pipeline has warmed; the
// returned phase is in degrees.
func (p *phaseEngine[T]) step(price T) (T, bool) {
	s, ok := p.core.step(price)
	if !ok {
		return 0, false
	}
	p.ring[p.ringIdx] = s.smoothed
	p.smoothPeriod = 0.33*p.core.estimator.period + 0.67*p.smoothPeriod

	// Correlate the ring window, newest value first, against one cycle of
	// sine and cosine at the smoothed period.
	window := int(p.smoothPeriod + 0.5)
	if window > smoothPriceSize {
		window = smoothPriceSize
	}
	var realPart, imagPart T
	idx := p.ringIdx
	for i := 0; i < window; i++ {
		angle := float64(i) * twoPi / float64(window)
		v := p.ring[idx]
		realPart += T(math.Sin(angle)) * v
		imagPart += T(math.Cos(angle)) * v
		if idx == 0 {
			idx = smoothPriceSize - 1
		} else {
			idx--
		}
	}

	abs := T(math.Abs(float64(imagPart)))
	if abs > 0 {
		p.dcPhase = T(math.Atan(float64(realPart)/float64(imagPart)) * rad2Deg)
	} else if abs <= 0.01 {
		// Imaginary part has collapsed to zero; nudge the previous phase by
		// a quarter turn in the direction of the real part.
		if realPart < 0 {
			p.dcPhase -= 90
		} else if realPart > 0 {
			p.dcPhase += 90
		}
	}
	p.dcPhase += 90
	// Compensate for the one-bar lag of the weighted pre-filter.
	p.dcPhase += 360 / p.smoothPeriod
	if imagPart < 0 {
		p.dcPhase += 180
	}
	if p.dcPhase > 315 {
		p.dcPhase -= 360
	}

	p.ringIdx++
	if p.ringIdx == smoothPriceSize {
		p.ringIdx = 0
	}
	return p.dcPhase, true
}

// DcPhaseInto computes the dominant cycle phase over the inclusive input
// range prices[startIdx..endIdx], writing into the caller-owned out buffer.
// It returns the input index of the first produced value and the number of
// values written, so out[k] corresponds to prices[first+k]. A range that
// ends inside the warm-up window succeeds with a zero count. The input is
// never written, and non-finite values propagate through the arithmetic
// unguarded.
func DcPhaseInto[T constraints.Float](prices []T, startIdx, endIdx int, cfg Config, out []T) (int, int, error) {
	if startIdx < 0 || endIdx < startIdx || endIdx >= len(prices) {
		return 0, 0, ErrOutOfRange
	}
	if err := cfg.Validate(); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	lookback := DcPhaseLookback(cfg)
	first := startIdx
	if first < lookback {
		first = lookback
	}
	if first > endIdx {
		return 0, 0, nil
	}
	if len(out) < endIdx-first+1 {
		return 0, 0, ErrOutOfRange
	}

	eng := newPhaseEngine[T](first - lookback)
	outIdx := 0
	for today := first - lookback; today <= endIdx; today++ {
		phase, ok := eng.step(prices[today])
		if ok && today >= first {
			out[outIdx] = phase
			outIdx++
		}
	}
	return first, outIdx, nil
}

// DcPhase computes the dominant cycle phase over the whole input, allocating
// the output. values[k] corresponds to prices[first+k]; an input shorter
// than the lookback yields an empty result and no error.
func DcPhase[T constraints.Float](prices []T, cfg Config) (values []T, first int, err error) {
	if len(prices) == 0 {
		return nil, 0, nil
	}
	var out []T
	if n := len(prices) - DcPhaseLookback(cfg); n > 0 {
		out = make([]T, n)
	}
	first, count, err := DcPhaseInto(prices, 0, len(prices)-1, cfg, out)
	if err != nil {
		return nil, 0, err
	}
	return out[:count], first, nil
}

// DominantCyclePhase measures the instantaneous phase, in degrees, of the
// dominant price cycle. It is the streaming counterpart of DcPhaseInto: the
// value after n Adds matches a batch scan over the same n prices.
type DominantCyclePhase struct {
	cfg    Config
	engine phaseEngine[float64]
	values []float64
	last   float64
	ready  bool
	n      int
}

// NewDominantCyclePhase creates the indicator with the library defaults.
func NewDominantCyclePhase() (*DominantCyclePhase, error) {
	return NewDominantCyclePhaseWithParams(DefaultConfig())
}

// NewDominantCyclePhaseWithParams creates the indicator with a custom config.
func NewDominantCyclePhaseWithParams(cfg Config) (*DominantCyclePhase, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create dominant cycle phase: %w", err)
	}
	return &DominantCyclePhase{
		cfg:    cfg,
		engine: newPhaseEngine[float64](0),
	}, nil
}

// Add ingests a new price. Only finiteness is checked here; the engine
// itself never sanitizes values.
func (d *DominantCyclePhase) Add(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return errors.New("invalid price")
	}
	idx := d.n
	d.n++
	phase, ok := d.engine.step(price)
	if ok && idx >= DcPhaseLookback(d.cfg) {
		d.last = phase
		d.ready = true
		d.values = append(d.values, phase)
		d.values = keepLast(d.values, d.cfg.MaxHistory)
	}
	return nil
}

// Calculate returns the latest phase in degrees.
func (d *DominantCyclePhase) Calculate() (float64, error) {
	if !d.ready {
		return 0, ErrInsufficientData
	}
	return d.last, nil
}

// GetValues returns a copy of the retained phase history.
func (d *DominantCyclePhase) GetValues() []float64 {
	return copySlice(d.values)
}

// Reset clears all internal state.
func (d *DominantCyclePhase) Reset() {
	d.engine = newPhaseEngine[float64](0)
	d.values = d.values[:0]
	d.last = 0
	d.ready = false
	d.n = 0
}

// GetPlotData returns plot-friendly data for the phase series.
func (d *DominantCyclePhase) GetPlotData(startTime, interval int64) []PlotData {
	if len(d.values) == 0 {
		return nil
	}
	x := make([]float64, len(d.values))
	for i := range x {
		x[i] = float64(i)
	}
	return []PlotData{
		{
			Name:      "Dominant Cycle Phase",
			X:         x,
			Y:         d.values,
			Type:      "line",
			Timestamp: GenerateTimestamps(startTime, len(d.values), interval),
		},
	}
}
