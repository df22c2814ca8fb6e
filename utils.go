package gocycle

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// PlotData holds data for visualization
type PlotData struct {
	Name      string    `json:"name"`
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
	Type      string    `json:"type,omitempty"`
	Signal    string    `json:"signal,omitempty"`
	Timestamp []int64   `json:"timestamp,omitempty"`
}

// copySlice creates a copy of a float64 slice
func copySlice(src []float64) []float64 {
	if src == nil {
		return nil
	}
	dst := make([]float64, len(src))
	copy(dst, src)
	return dst
}

// keepLast returns the slice trimmed to its most recent n elements.
func keepLast(src []float64, n int) []float64 {
	if n <= 0 || len(src) <= n {
		return src
	}
	return src[len(src)-n:]
}

// calculateWMA computes the Weighted Moving Average over the trailing window,
// newest value weighted heaviest. The 4-period case is the pre-filter kernel.
func calculateWMA(data []float64, period int) (float64, error) {
	if len(data) < period {
		return 0, fmt.Errorf("insufficient data for WMA: need %d, have %d", period, len(data))
	}
	sum, weightSum := 0.0, 0.0
	for i := 0; i < period; i++ {
		weight := float64(i + 1)
		sum += data[len(data)-period+i] * weight
		weightSum += weight
	}
	if weightSum == 0 {
		return 0, errors.New("zero weight sum in WMA calculation")
	}
	return sum / weightSum, nil
}

// IsValidPrice checks if a price is valid (strictly positive)
func IsValidPrice(price float64) bool {
	return price > 0 && !math.IsNaN(price) && !math.IsInf(price, 0)
}

// GenerateTimestamps creates timestamps for plotting
func GenerateTimestamps(startTime int64, count int, interval int64) []int64 {
	if count <= 0 {
		return nil
	}
	timestamps := make([]int64, count)
	for i := 0; i < count; i++ {
		timestamps[i] = startTime + int64(i)*interval
	}
	return timestamps
}

// FormatPlotDataJSON converts PlotData to JSON
func FormatPlotDataJSON(data []PlotData) (string, error) {
	if len(data) == 0 {
		return "[]", nil
	}
	for _, d := range data {
		if len(d.X) != len(d.Y) {
			return "", fmt.Errorf("mismatched X and Y lengths for %s: %d vs %d", d.Name, len(d.X), len(d.Y))
		}
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal plot data: %w", err)
	}
	return string(jsonData), nil
}

// FormatPlotDataCSV converts PlotData to CSV
func FormatPlotDataCSV(data []PlotData) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	var builder strings.Builder
	builder.WriteString("Name,X,Y,Type,Signal,Timestamp\n")
	for _, d := range data {
		if len(d.X) != len(d.Y) {
			return "", fmt.Errorf("mismatched X and Y lengths for %s: %d vs %d", d.Name, len(d.X), len(d.Y))
		}
		for i := 0; i < len(d.X); i++ {
			timestamp := ""
			if i < len(d.Timestamp) {
				timestamp = fmt.Sprintf("%d", d.Timestamp[i])
			}
			fmt.Fprintf(&builder, "%s,%f,%f,%s,%s,%s\n", d.Name, d.X[i], d.Y[i], d.Type, d.Signal, timestamp)
		}
	}
	return builder.String(), nil
}
