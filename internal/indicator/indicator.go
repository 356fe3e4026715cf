package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-research/internal/types"
)

// MovingAverage interface defines methods that any trailing average over a price column must implement
type MovingAverage interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Period returns the configured window or span
	Period() int
	// Calculate returns one average per input value, aligned to the input.
	// Positions without enough history are NaN.
	Calculate(values []float64) []float64
	// WarmupPeriods returns the number of leading outputs that are always NaN.
	WarmupPeriods() int
}

// nanSeries returns a slice of n NaN values.
func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

// warmup returns the number of leading NaN outputs of a trailing window.
func warmup(period int) int {
	if period <= 1 {
		return 0
	}

	return period - 1
}
