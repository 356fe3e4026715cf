package strategy

import (
	"github.com/rxtech-lab/argo-research/internal/indicator"
	"github.com/rxtech-lab/argo-research/internal/types"
)

const (
	exponentialMovingAverageName        = "Exponential Moving Average"
	exponentialMovingAverageDescription = "Generates buy and sell signals based on exponential moving averages"
)

// ExponentialMovingAverageStrategy signals on the crossover of two exponential averages.
// Both averages are seeded with the first close, so signals can fire from bar 0.
type ExponentialMovingAverageStrategy struct {
	crossover
}

// NewExponentialMovingAverageStrategy creates an EMA crossover. The windows are spans.
func NewExponentialMovingAverageStrategy(shortSpan int, longSpan int) *ExponentialMovingAverageStrategy {
	return &ExponentialMovingAverageStrategy{
		crossover: newCrossover(
			types.StrategyConfig{
				Type:        types.StrategyTypeExponentialMovingAverage,
				ShortWindow: shortSpan,
				LongWindow:  longSpan,
			},
			exponentialMovingAverageName,
			exponentialMovingAverageDescription,
			indicator.NewEMA(shortSpan),
			indicator.NewEMA(longSpan),
		),
	}
}
