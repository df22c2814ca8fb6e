package gocycle

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Default smoothing-factor limits for the adaptive average pair.
const (
	DefaultFastLimit = 0.5
	DefaultSlowLimit = 0.05
)

// mamaEngine layers the adaptive-average state over the shared pipeline: the
// previous in-phase/quadrature angle and the two averages themselves.
type mamaEngine[T constraints.Float] struct {
	core      cycleEngine[T]
	fastLimit T
	slowLimit T
	prevPhase T
	mama      T
	fama      T
}

func newMamaEngine[T constraints.Float](firstIdx int, fastLimit, slowLimit T) mamaEngine[T] {
	return mamaEngine[T]{
		core:      newCycleEngine[T](firstIdx, mamaSmootherWarm),
		fastLimit: fastLimit,
		slowLimit: slowLimit,
	}
}

// step feeds one raw price. ok turns true once the pipeline has warmed. The
// smoothing factor follows the phase rate: fast when the quadrature angle is
// steady, throttled down toward slowLimit as the angle sweeps.
func (m *mamaEngine[T]) step(price T) (T, T, bool) {
	s, ok := m.core.step(price)
	if !ok {
		return 0, 0, false
	}

	var phase T
	if s.i1 != 0 {
		phase = T(math.Atan(float64(s.q1)/float64(s.i1)) * rad2Deg)
	}
	delta := m.prevPhase - phase
	m.prevPhase = phase
	if delta < 1 {
		delta = 1
	}
	alpha := m.fastLimit
	if delta > 1 {
		alpha = m.fastLimit / delta
		if alpha < m.slowLimit {
			alpha = m.slowLimit
		}
	}

	// The averages track the raw price, not the pre-filtered one.
	m.mama = alpha*price + (1-alpha)*m.mama
	m.fama = 0.5*alpha*m.mama + (1-0.5*alpha)*m.fama
	return m.mama, m.fama, true
}

func validLimit[T constraints.Float](limit T) bool {
	return limit >= 0.01 && limit <= 0.99
}

// MamaInto computes the MESA adaptive moving average pair over the inclusive
// input range prices[startIdx..endIdx], writing into the caller-owned
// buffers. It returns the input index of the first produced value and the
// number of values written, so outMama[k] and outFama[k] correspond to
// prices[first+k]. A range that ends inside the warm-up window succeeds with
// a zero count. The input is never written, and non-finite values propagate
// through the arithmetic unguarded.
func MamaInto[T constraints.Float](prices []T, startIdx, endIdx int, fastLimit, slowLimit T, cfg Config, outMama, outFama []T) (int, int, error) {
	if startIdx < 0 || endIdx < startIdx || endIdx >= len(prices) {
		return 0, 0, ErrOutOfRange
	}
	if !validLimit(fastLimit) || !validLimit(slowLimit) {
		return 0, 0, fmt.Errorf("%w: limits must be within [0.01, 0.99]", ErrInvalidParams)
	}
	if err := cfg.Validate(); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	lookback := MamaLookback(cfg)
	first := startIdx
	if first < lookback {
		first = lookback
	}
	if first > endIdx {
		return 0, 0, nil
	}
	if n := endIdx - first + 1; len(outMama) < n || len(outFama) < n {
		return 0, 0, ErrOutOfRange
	}

	eng := newMamaEngine(first-lookback, fastLimit, slowLimit)
	outIdx := 0
	for today := first - lookback; today <= endIdx; today++ {
		mama, fama, ok := eng.step(prices[today])
		if ok && today >= first {
			outMama[outIdx] = mama
			outFama[outIdx] = fama
			outIdx++
		}
	}
	return first, outIdx, nil
}

// Mama computes the adaptive average pair over the whole input, allocating
// the outputs. mama[k] and fama[k] correspond to prices[first+k]; an input
// shorter than the lookback yields empty results and no error.
func Mama[T constraints.Float](prices []T, fastLimit, slowLimit T, cfg Config) (mama, fama []T, first int, err error) {
	if len(prices) == 0 {
		return nil, nil, 0, nil
	}
	var outMama, outFama []T
	if n := len(prices) - MamaLookback(cfg); n > 0 {
		outMama = make([]T, n)
		outFama = make([]T, n)
	}
	first, count, err := MamaInto(prices, 0, len(prices)-1, fastLimit, slowLimit, cfg, outMama, outFama)
	if err != nil {
		return nil, nil, 0, err
	}
	return outMama[:count], outFama[:count], first, nil
}

// MESAAdaptiveMovingAverage tracks the MESA adaptive moving average (MAMA)
// and its following average (FAMA). The smoothing factor adapts to the
// measured cycle, so the average hugs price in trends and flattens in
// congestion. It is the streaming counterpart of MamaInto.
type MESAAdaptiveMovingAverage struct {
	cfg       Config
	fastLimit float64
	slowLimit float64
	engine    mamaEngine[float64]

	mamaValues []float64
	famaValues []float64
	lastMAMA   float64
	lastFAMA   float64
	ready      bool
	n          int
}

// NewMESAAdaptiveMovingAverage creates the indicator with the standard
// 0.5/0.05 limits and the library defaults.
func NewMESAAdaptiveMovingAverage() (*MESAAdaptiveMovingAverage, error) {
	return NewMESAAdaptiveMovingAverageWithParams(DefaultFastLimit, DefaultSlowLimit, DefaultConfig())
}

// NewMESAAdaptiveMovingAverageWithParams creates the indicator with custom
// limits and config.
func NewMESAAdaptiveMovingAverageWithParams(fastLimit, slowLimit float64, cfg Config) (*MESAAdaptiveMovingAverage, error) {
	if !validLimit(fastLimit) || !validLimit(slowLimit) {
		return nil, errors.New("limits must be within [0.01, 0.99]")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create MESA adaptive moving average: %w", err)
	}
	return &MESAAdaptiveMovingAverage{
		cfg:       cfg,
		fastLimit: fastLimit,
		slowLimit: slowLimit,
		engine:    newMamaEngine(0, fastLimit, slowLimit),
	}, nil
}

// Add ingests a new price. Only finiteness is checked here; the engine
// itself never sanitizes values.
func (m *MESAAdaptiveMovingAverage) Add(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return errors.New("invalid price")
	}
	idx := m.n
	m.n++
	mama, fama, ok := m.engine.step(price)
	if ok && idx >= MamaLookback(m.cfg) {
		m.lastMAMA = mama
		m.lastFAMA = fama
		m.ready = true
		m.mamaValues = append(m.mamaValues, mama)
		m.famaValues = append(m.famaValues, fama)
		m.trimSlices()
	}
	return nil
}

// Calculate returns the latest MAMA and FAMA values.
func (m *MESAAdaptiveMovingAverage) Calculate() (float64, float64, error) {
	if !m.ready {
		return 0, 0, ErrInsufficientData
	}
	return m.lastMAMA, m.lastFAMA, nil
}

// SetLimits updates the fast/slow smoothing limits and resets internal state.
func (m *MESAAdaptiveMovingAverage) SetLimits(fastLimit, slowLimit float64) error {
	if !validLimit(fastLimit) || !validLimit(slowLimit) {
		return errors.New("limits must be within [0.01, 0.99]")
	}
	m.fastLimit = fastLimit
	m.slowLimit = slowLimit
	m.Reset()
	return nil
}

// Reset clears all internal state.
func (m *MESAAdaptiveMovingAverage) Reset() {
	m.engine = newMamaEngine(0, m.fastLimit, m.slowLimit)
	m.mamaValues = m.mamaValues[:0]
	m.famaValues = m.famaValues[:0]
	m.lastMAMA, m.lastFAMA = 0, 0
	m.ready = false
	m.n = 0
}

// IsBullishCrossover reports whether MAMA crossed above FAMA on the most
// recent sample.
func (m *MESAAdaptiveMovingAverage) IsBullishCrossover() (bool, error) {
	if len(m.mamaValues) < 2 {
		return false, ErrInsufficientData
	}
	last := len(m.mamaValues) - 1
	return m.mamaValues[last-1] <= m.famaValues[last-1] &&
		m.mamaValues[last] > m.famaValues[last], nil
}

// IsBearishCrossover reports whether MAMA crossed below FAMA on the most
// recent sample.
func (m *MESAAdaptiveMovingAverage) IsBearishCrossover() (bool, error) {
	if len(m.mamaValues) < 2 {
		return false, ErrInsufficientData
	}
	last := len(m.mamaValues) - 1
	return m.mamaValues[last-1] >= m.famaValues[last-1] &&
		m.mamaValues[last] < m.famaValues[last], nil
}

// GetTrendDirection labels the current MAMA/FAMA relationship.
func (m *MESAAdaptiveMovingAverage) GetTrendDirection() (string, error) {
	if !m.ready {
		return "", ErrInsufficientData
	}
	switch {
	case m.lastMAMA > m.lastFAMA:
		return "Bullish", nil
	case m.lastMAMA < m.lastFAMA:
		return "Bearish", nil
	default:
		return "Neutral", nil
	}
}

// GetMAMAValues returns a copy of the retained MAMA history.
func (m *MESAAdaptiveMovingAverage) GetMAMAValues() []float64 {
	return copySlice(m.mamaValues)
}

// GetFAMAValues returns a copy of the retained FAMA history.
func (m *MESAAdaptiveMovingAverage) GetFAMAValues() []float64 {
	return copySlice(m.famaValues)
}

// GetPlotData returns plot-friendly data for the MAMA and FAMA lines.
func (m *MESAAdaptiveMovingAverage) GetPlotData(startTime, interval int64) []PlotData {
	if len(m.mamaValues) == 0 {
		return nil
	}
	x := make([]float64, len(m.mamaValues))
	for i := range x {
		x[i] = float64(i)
	}
	timestamps := GenerateTimestamps(startTime, len(m.mamaValues), interval)
	return []PlotData{
		{
			Name:      "MAMA",
			X:         x,
			Y:         m.mamaValues,
			Type:      "line",
			Timestamp: timestamps,
		},
		{
			Name:      "FAMA",
			X:         x,
			Y:         m.famaValues,
			Type:      "line",
			Timestamp: timestamps,
		},
	}
}

func (m *MESAAdaptiveMovingAverage) trimSlices() {
	m.mamaValues = keepLast(m.mamaValues, m.cfg.MaxHistory)
	m.famaValues = keepLast(m.famaValues, m.cfg.MaxHistory)
}
