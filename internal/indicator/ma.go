package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-research/internal/types"
)

// SMA indicator implements Simple Moving Average calculation.
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator over the given trailing window.
func NewSMA(period int) MovingAverage {
	return &SMA{
		period: period,
	}
}

// Name returns the name of the indicator.
func (m *SMA) Name() types.IndicatorType {
	return types.IndicatorTypeSMA
}

// Period returns the trailing window.
func (m *SMA) Period() int {
	return m.period
}

// WarmupPeriods returns period-1.
func (m *SMA) WarmupPeriods() int {
	return warmup(m.period)
}

// Calculate returns the unweighted trailing mean at every index.
// The first period-1 outputs are NaN, and so is any window containing a NaN.
func (m *SMA) Calculate(values []float64) []float64 {
	out := nanSeries(len(values))
	if m.period <= 0 {
		return out
	}

	for i := m.period - 1; i < len(values); i++ {
		out[i] = calculateSimpleMovingAverage(values[i-m.period+1 : i+1])
	}

	return out
}

// calculateSimpleMovingAverage calculates the arithmetic mean of a window.
func calculateSimpleMovingAverage(window []float64) float64 {
	sum := 0.0
	for _, v := range window {
		if math.IsNaN(v) {
			return math.NaN()
		}

		sum += v
	}

	return sum / float64(len(window))
}
