package types

type StrategyType string

const (
	StrategyTypeMovingAverage            StrategyType = "moving_average"
	StrategyTypeWeightedMovingAverage    StrategyType = "weighted_moving_average"
	StrategyTypeExponentialMovingAverage StrategyType = "exponential_moving_average"
)

// AllStrategyTypes lists every strategy type the factory can build.
var AllStrategyTypes = []any{
	string(StrategyTypeMovingAverage),
	string(StrategyTypeWeightedMovingAverage),
	string(StrategyTypeExponentialMovingAverage),
}

// StrategyConfig describes one window-crossover strategy.
// For the exponential variant the windows are EMA spans.
type StrategyConfig struct {
	Type        StrategyType `yaml:"type" json:"type" jsonschema:"title=Type,description=Signal generation algorithm" validate:"required,oneof=moving_average weighted_moving_average exponential_moving_average"`
	ShortWindow int          `yaml:"short_window" json:"short_window" jsonschema:"title=Short Window,description=Trailing periods of the fast average,minimum=1" validate:"required,min=1"`
	LongWindow  int          `yaml:"long_window" json:"long_window" jsonschema:"title=Long Window,description=Trailing periods of the slow average,minimum=1" validate:"required,min=1"`
}
