package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-research/internal/types"
)

// EMA indicator implements Exponential Moving Average calculation.
type EMA struct {
	period int
}

// NewEMA creates a new EMA indicator with the given span.
func NewEMA(period int) MovingAverage {
	return &EMA{
		period: period,
	}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Period returns the span.
func (e *EMA) Period() int {
	return e.period
}

// WarmupPeriods is always 0: the recursion is seeded with the first value.
func (e *EMA) WarmupPeriods() int {
	return 0
}

// Calculate runs the recursion over the whole input starting at index 0:
// ema[0] = values[0], ema[i] = alpha*values[i] + (1-alpha)*ema[i-1].
// A NaN input repeats the previous average and the next value is blended
// against it with the decay of both steps, as pandas ewm(adjust=False) does.
// Outputs before the first non-NaN input are NaN.
func (e *EMA) Calculate(values []float64) []float64 {
	if e.period <= 0 {
		return nanSeries(len(values))
	}

	return calculateExponentialMovingAverage(values, e.period)
}

// calculateExponentialMovingAverage applies EMA = price * alpha + EMA_prev * (1 - alpha)
// where alpha = 2 / (period + 1).
func calculateExponentialMovingAverage(values []float64, period int) []float64 {
	out := make([]float64, len(values))

	// Use alpha = 2/(span+1) to match pandas ewm implementation with adjust=False
	alpha := 2.0 / float64(period+1)
	weighted := math.NaN()
	oldWeight := 1.0

	for i, v := range values {
		switch {
		case math.IsNaN(weighted):
			weighted = v
		case math.IsNaN(v):
			oldWeight *= 1 - alpha
		default:
			oldWeight *= 1 - alpha
			weighted = (oldWeight*weighted + alpha*v) / (oldWeight + alpha)
			oldWeight = 1
		}

		out[i] = weighted
	}

	return out
}
