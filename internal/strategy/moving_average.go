package strategy

import (
	"github.com/rxtech-lab/argo-research/internal/indicator"
	"github.com/rxtech-lab/argo-research/internal/types"
)

const (
	movingAverageName        = "Moving Average"
	movingAverageDescription = "Generates buy and sell signals based on moving averages"
)

// MovingAverageStrategy signals on the crossover of two simple moving averages.
// Bars inside the long window's warm-up carry no signal.
type MovingAverageStrategy struct {
	crossover
}

// NewMovingAverageStrategy creates a simple moving average crossover.
// Windows are not validated; use NewStrategy for validated construction.
func NewMovingAverageStrategy(shortWindow int, longWindow int) *MovingAverageStrategy {
	return &MovingAverageStrategy{
		crossover: newCrossover(
			types.StrategyConfig{
				Type:        types.StrategyTypeMovingAverage,
				ShortWindow: shortWindow,
				LongWindow:  longWindow,
			},
			movingAverageName,
			movingAverageDescription,
			indicator.NewSMA(shortWindow),
			indicator.NewSMA(longWindow),
		),
	}
}
