package suite

import (
	"fmt"

	"github.com/evdnx/gocycle"
)

// ---------------------------------------------------------------------
// CycleSuite – aggregates the cycle-driven indicators.
// ---------------------------------------------------------------------

type CycleSuite struct {
	phase *gocycle.DominantCyclePhase
	mama  *gocycle.MESAAdaptiveMovingAverage
}

// CycleSnapshot is the combined state of the suite after the last Add.
type CycleSnapshot struct {
	Phase float64 // dominant cycle phase, degrees
	MAMA  float64
	FAMA  float64
	Trend string // "Bullish", "Bearish" or "Neutral"
}

// NewCycleSuite creates a suite with the library defaults.
func NewCycleSuite() (*CycleSuite, error) {
	return NewCycleSuiteWithConfig(gocycle.DefaultConfig())
}

// NewCycleSuiteWithConfig builds a suite using a custom configuration. The
// adaptive average keeps the standard 0.5/0.05 limits; callers needing other
// limits can construct the indicators directly.
func NewCycleSuiteWithConfig(cfg gocycle.Config) (*CycleSuite, error) {
	phase, err := gocycle.NewDominantCyclePhaseWithParams(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create dominant cycle phase: %w", err)
	}

	mama, err := gocycle.NewMESAAdaptiveMovingAverageWithParams(
		gocycle.DefaultFastLimit, gocycle.DefaultSlowLimit, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create MESA adaptive moving average: %w", err)
	}

	return &CycleSuite{
		phase: phase,
		mama:  mama,
	}, nil
}

// ---------------------------------------------------------------------
// Add – forwards the price sample to every indicator.
// ---------------------------------------------------------------------
func (s *CycleSuite) Add(price float64) error {
	if !gocycle.IsValidPrice(price) {
		return fmt.Errorf("invalid price")
	}
	if err := s.phase.Add(price); err != nil {
		return fmt.Errorf("dominant cycle phase add failed: %w", err)
	}
	if err := s.mama.Add(price); err != nil {
		return fmt.Errorf("MESA adaptive moving average add failed: %w", err)
	}
	return nil
}

// Snapshot returns the latest combined state. It fails with the underlying
// indicator error until both warm-up windows have been consumed (the phase
// output warms later than the adaptive average).
func (s *CycleSuite) Snapshot() (CycleSnapshot, error) {
	phase, err := s.phase.Calculate()
	if err != nil {
		return CycleSnapshot{}, fmt.Errorf("dominant cycle phase not ready: %w", err)
	}
	mama, fama, err := s.mama.Calculate()
	if err != nil {
		return CycleSnapshot{}, fmt.Errorf("MESA adaptive moving average not ready: %w", err)
	}
	trend, err := s.mama.GetTrendDirection()
	if err != nil {
		return CycleSnapshot{}, fmt.Errorf("trend direction check failed: %w", err)
	}
	return CycleSnapshot{
		Phase: phase,
		MAMA:  mama,
		FAMA:  fama,
		Trend: trend,
	}, nil
}

// GetCombinedSignal – bullish side.
func (s *CycleSuite) GetCombinedSignal() (string, error) {
	/* ---- MAMA/FAMA (crossover) ---- */
	mamaBullish, err := s.mama.IsBullishCrossover()
	if err != nil {
		return "", fmt.Errorf("MAMA bullish crossover check failed: %w", err)
	}

	/* ---- trend direction ---- */
	trend, err := s.mama.GetTrendDirection()
	if err != nil {
		return "", fmt.Errorf("trend direction check failed: %w", err)
	}

	/* ---- cycle phase quadrant ---- */
	phase, err := s.phase.Calculate()
	if err != nil {
		return "", fmt.Errorf("dominant cycle phase check failed: %w", err)
	}
	// The first quarter turn after the trough is the ascending part of the
	// cycle.
	phaseAscending := phase >= 0 && phase < 90

	weightSum := 0.0
	contrib := 0

	if mamaBullish {
		weightSum += 1.5
		contrib++
	}
	if trend == "Bullish" {
		weightSum += 1.0
		contrib++
	}
	if phaseAscending {
		weightSum += 0.5
		contrib++
	}

	/* Require at least two contributing indicators before emitting a
	   bullish label. Otherwise fall back to "Neutral". */
	switch {
	case weightSum >= 1.5 && contrib >= 2:
		return "Strong Bullish", nil
	case weightSum >= 1.0 && contrib >= 2:
		return "Bullish", nil
	case weightSum > 0 && contrib >= 2:
		return "Weak Bullish", nil
	default:
		return "Neutral", nil
	}
}

// GetCombinedBearishSignal – bearish side (mirrors the bullish logic).
func (s *CycleSuite) GetCombinedBearishSignal() (string, error) {
	/* ---- MAMA/FAMA (crossover) ---- */
	mamaBearish, err := s.mama.IsBearishCrossover()
	if err != nil {
		return "", fmt.Errorf("MAMA bearish crossover check failed: %w", err)
	}

	/* ---- trend direction ---- */
	trend, err := s.mama.GetTrendDirection()
	if err != nil {
		return "", fmt.Errorf("trend direction check failed: %w", err)
	}

	/* ---- cycle phase quadrant ---- */
	phase, err := s.phase.Calculate()
	if err != nil {
		return "", fmt.Errorf("dominant cycle phase check failed: %w", err)
	}
	// The quarter turn past the crest is the descending part of the cycle.
	phaseDescending := phase >= 180 && phase < 270

	weightSum := 0.0
	contrib := 0

	if mamaBearish {
		weightSum += 1.5
		contrib++
	}
	if trend == "Bearish" {
		weightSum += 1.0
		contrib++
	}
	if phaseDescending {
		weightSum += 0.5
		contrib++
	}

	switch {
	case weightSum >= 1.5 && contrib >= 2:
		return "Strong Bearish", nil
	case weightSum >= 1.0 && contrib >= 2:
		return "Bearish", nil
	case weightSum > 0 && contrib >= 2:
		return "Weak Bearish", nil
	default:
		return "Neutral", nil
	}
}

// Reset clears all indicator data
func (s *CycleSuite) Reset() {
	s.phase.Reset()
	s.mama.Reset()
}

// GetPhase returns the dominant cycle phase indicator
func (s *CycleSuite) GetPhase() *gocycle.DominantCyclePhase {
	return s.phase
}

// GetMAMA returns the MESA adaptive moving average indicator
func (s *CycleSuite) GetMAMA() *gocycle.MESAAdaptiveMovingAverage {
	return s.mama
}

// GetPlotData returns combined plot data from all indicators
func (s *CycleSuite) GetPlotData(startTime, interval int64) []gocycle.PlotData {
	var plotData []gocycle.PlotData
	plotData = append(plotData, s.phase.GetPlotData(startTime, interval)...)
	plotData = append(plotData, s.mama.GetPlotData(startTime, interval)...)
	return plotData
}

// ExportJSON renders the suite's plot data as JSON.
func (s *CycleSuite) ExportJSON(startTime, interval int64) (string, error) {
	return gocycle.FormatPlotDataJSON(s.GetPlotData(startTime, interval))
}

// ExportCSV renders the suite's plot data as CSV.
func (s *CycleSuite) ExportCSV(startTime, interval int64) (string, error) {
	return gocycle.FormatPlotDataCSV(s.GetPlotData(startTime, interval))
}
