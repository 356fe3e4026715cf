package strategy

import (
	"github.com/rxtech-lab/argo-research/internal/indicator"
	"github.com/rxtech-lab/argo-research/internal/types"
)

const (
	weightedMovingAverageName        = "Weighted Moving Average"
	weightedMovingAverageDescription = "Generates buy and sell signals based on weighted moving averages"
)

// WeightedMovingAverageStrategy signals on the crossover of two linearly weighted averages.
type WeightedMovingAverageStrategy struct {
	crossover
}

// NewWeightedMovingAverageStrategy creates a weighted moving average crossover.
func NewWeightedMovingAverageStrategy(shortWindow int, longWindow int) *WeightedMovingAverageStrategy {
	return &WeightedMovingAverageStrategy{
		crossover: newCrossover(
			types.StrategyConfig{
				Type:        types.StrategyTypeWeightedMovingAverage,
				ShortWindow: shortWindow,
				LongWindow:  longWindow,
			},
			weightedMovingAverageName,
			weightedMovingAverageDescription,
			indicator.NewWMA(shortWindow),
			indicator.NewWMA(longWindow),
		),
	}
}
