package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-research/internal/types"
)

// WMA indicator implements a linearly weighted moving average.
// Inside a window of length w the oldest value has weight 1 and the newest weight w.
type WMA struct {
	period int
}

// NewWMA creates a new WMA indicator over the given trailing window.
func NewWMA(period int) MovingAverage {
	return &WMA{
		period: period,
	}
}

// Name returns the name of the indicator.
func (m *WMA) Name() types.IndicatorType {
	return types.IndicatorTypeWMA
}

// Period returns the trailing window.
func (m *WMA) Period() int {
	return m.period
}

// WarmupPeriods returns period-1.
func (m *WMA) WarmupPeriods() int {
	return warmup(m.period)
}

// Calculate returns the linearly weighted trailing mean at every index.
func (m *WMA) Calculate(values []float64) []float64 {
	out := nanSeries(len(values))
	if m.period <= 0 {
		return out
	}

	for i := m.period - 1; i < len(values); i++ {
		out[i] = calculateWeightedMovingAverage(values[i-m.period+1 : i+1])
	}

	return out
}

// calculateWeightedMovingAverage weights the k-th oldest value by k and normalizes by the weight sum.
func calculateWeightedMovingAverage(window []float64) float64 {
	weighted := 0.0
	weights := 0.0

	for k, v := range window {
		if math.IsNaN(v) {
			return math.NaN()
		}

		weight := float64(k + 1)
		weighted += weight * v
		weights += weight
	}

	return weighted / weights
}
