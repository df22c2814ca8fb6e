package suite

import (
	"testing"

	"github.com/evdnx/gocycle"
)

// BenchmarkCycleSuite_Add tests the performance of adding data to the suite
func BenchmarkCycleSuite_Add(b *testing.B) {
	suite, err := NewCycleSuiteWithConfig(gocycle.DefaultConfig())
	if err != nil {
		b.Fatalf("Failed to create suite: %v", err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		// Vary the input slightly to prevent compiler optimizations
		price := 100.0 + float64(i%10)*0.1

		if err := suite.Add(price); err != nil {
			b.Fatalf("Add failed: %v", err)
		}
	}
}

// BenchmarkCycleSuite_Snapshot tests the performance of the combined readout
func BenchmarkCycleSuite_Snapshot(b *testing.B) {
	suite, err := NewCycleSuiteWithConfig(gocycle.DefaultConfig())
	if err != nil {
		b.Fatalf("Failed to create suite: %v", err)
	}

	// Pre-fill past both warm-up windows
	for i := 0; i < 100; i++ {
		price := 100.0 + float64(i%20)*0.5
		if err := suite.Add(price); err != nil {
			b.Fatalf("Pre-fill Add failed: %v", err)
		}
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := suite.Snapshot(); err != nil {
			b.Fatalf("Snapshot failed: %v", err)
		}
	}
}

// BenchmarkCycleSuite_GetCombinedSignal tests the performance of signal calculation
func BenchmarkCycleSuite_GetCombinedSignal(b *testing.B) {
	suite, err := NewCycleSuiteWithConfig(gocycle.DefaultConfig())
	if err != nil {
		b.Fatalf("Failed to create suite: %v", err)
	}

	// Pre-fill with enough data for meaningful calculations
	for i := 0; i < 100; i++ {
		price := 100.0 + float64(i%20)*0.5
		if err := suite.Add(price); err != nil {
			b.Fatalf("Pre-fill Add failed: %v", err)
		}
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := suite.GetCombinedSignal()
		if err != nil {
			b.Fatalf("GetCombinedSignal failed: %v", err)
		}
	}
}

// BenchmarkCycleSuite_FullCycle tests the full Add + GetCombinedSignal cycle
func BenchmarkCycleSuite_FullCycle(b *testing.B) {
	suite, err := NewCycleSuiteWithConfig(gocycle.DefaultConfig())
	if err != nil {
		b.Fatalf("Failed to create suite: %v", err)
	}

	// Pre-fill with some initial data
	for i := 0; i < 100; i++ {
		price := 100.0 + float64(i%10)*0.2
		if err := suite.Add(price); err != nil {
			b.Fatalf("Pre-fill Add failed: %v", err)
		}
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		// Add new data
		price := 100.0 + float64(i%10)*0.1
		if err := suite.Add(price); err != nil {
			b.Fatalf("Add failed: %v", err)
		}

		// Get signal
		_, err := suite.GetCombinedSignal()
		if err != nil {
			b.Fatalf("GetCombinedSignal failed: %v", err)
		}
	}
}

// BenchmarkCycleSuite_GetPlotData tests plot data generation performance
func BenchmarkCycleSuite_GetPlotData(b *testing.B) {
	suite, err := NewCycleSuiteWithConfig(gocycle.DefaultConfig())
	if err != nil {
		b.Fatalf("Failed to create suite: %v", err)
	}

	// Pre-fill with enough data for plot generation
	for i := 0; i < 200; i++ {
		price := 100.0 + float64(i%30)*0.3
		if err := suite.Add(price); err != nil {
			b.Fatalf("Pre-fill Add failed: %v", err)
		}
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = suite.GetPlotData(1625097600000, 60_000)
	}
}
