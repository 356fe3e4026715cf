package strategy

import (
	"github.com/rxtech-lab/argo-research/internal/indicator"
	"github.com/rxtech-lab/argo-research/internal/types"
)

// Strategy turns a price series into buy and sell signals.
// Implementations are stateless: GetSignals is a pure function of the series and
// the strategy's parameters, so a single instance can be shared across goroutines.
type Strategy interface {
	// Name returns the human readable name of the strategy
	Name() string
	// Description returns a short explanation of how signals are generated
	Description() string
	// GetSignals returns buy and sell sequences aligned to the series index.
	// The only error is a MissingColumnError when the series has no close column.
	GetSignals(series types.PriceSeries) (types.SignalPair, error)
}

// WindowStrategy is a Strategy driven by a fast and a slow trailing average of the close.
type WindowStrategy interface {
	Strategy
	// Config returns the parameters the strategy was built with.
	Config() types.StrategyConfig
	// WarmupPeriods is the number of leading bars on which no signal can fire.
	WarmupPeriods() int
}

// crossover compares a fast and a slow average of the close at every bar.
type crossover struct {
	config      types.StrategyConfig
	name        string
	description string
	short       indicator.MovingAverage
	long        indicator.MovingAverage
}

func newCrossover(config types.StrategyConfig, name string, description string, short indicator.MovingAverage, long indicator.MovingAverage) crossover {
	return crossover{
		config:      config,
		name:        name,
		description: description,
		short:       short,
		long:        long,
	}
}

func (c *crossover) Name() string {
	return c.name
}

func (c *crossover) Description() string {
	return c.description
}

func (c *crossover) Config() types.StrategyConfig {
	return c.config
}

// WarmupPeriods returns the larger warm-up of the two averages.
func (c *crossover) WarmupPeriods() int {
	return max(c.short.WarmupPeriods(), c.long.WarmupPeriods())
}

func (c *crossover) GetSignals(series types.PriceSeries) (types.SignalPair, error) {
	closes, err := series.Closes()
	if err != nil {
		return types.SignalPair{}, err
	}

	return crossSignals(c.short.Calculate(closes), c.long.Calculate(closes)), nil
}

// crossSignals marks a buy where short > long and a sell where short < long.
// Comparisons against NaN are false, so undefined bars produce neither signal.
func crossSignals(short []float64, long []float64) types.SignalPair {
	signals := types.NewSignalPair(len(short))

	for i := range short {
		signals.Buy[i] = short[i] > long[i]
		signals.Sell[i] = short[i] < long[i]
	}

	return signals
}
