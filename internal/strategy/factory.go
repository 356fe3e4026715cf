package strategy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rxtech-lab/argo-research/internal/indicator"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// indicators builds the averages behind strategies created by NewStrategy.
var indicators = indicator.NewDefaultIndicatorRegistry()

// strategyIndicators maps each strategy type to the average it crosses.
var strategyIndicators = map[types.StrategyType]types.IndicatorType{
	types.StrategyTypeMovingAverage:            types.IndicatorTypeSMA,
	types.StrategyTypeWeightedMovingAverage:    types.IndicatorTypeWMA,
	types.StrategyTypeExponentialMovingAverage: types.IndicatorTypeEMA,
}

// NewStrategy builds a window strategy from its configuration.
// Unlike the constructors it rejects non-positive windows.
func NewStrategy(config types.StrategyConfig) (WindowStrategy, error) {
	if config.ShortWindow <= 0 || config.LongWindow <= 0 {
		return nil, errors.Newf(errors.ErrCodeStrategyConfigError,
			"windows must be positive, got short=%d long=%d", config.ShortWindow, config.LongWindow)
	}

	indicatorType, ok := strategyIndicators[config.Type]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnsupportedStrategy, "unsupported strategy type: %s", config.Type)
	}

	short, err := indicators.GetIndicator(indicatorType, config.ShortWindow)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "failed to build short average", err)
	}

	long, err := indicators.GetIndicator(indicatorType, config.LongWindow)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "failed to build long average", err)
	}

	switch config.Type {
	case types.StrategyTypeMovingAverage:
		return &MovingAverageStrategy{
			crossover: newCrossover(config, movingAverageName, movingAverageDescription, short, long),
		}, nil
	case types.StrategyTypeWeightedMovingAverage:
		return &WeightedMovingAverageStrategy{
			crossover: newCrossover(config, weightedMovingAverageName, weightedMovingAverageDescription, short, long),
		}, nil
	default:
		return &ExponentialMovingAverageStrategy{
			crossover: newCrossover(config, exponentialMovingAverageName, exponentialMovingAverageDescription, short, long),
		}, nil
	}
}

// ParseStrategyConfig parses the "type:short:long" notation used on the command line,
// e.g. "moving_average:5:20".
func ParseStrategyConfig(value string) (types.StrategyConfig, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return types.StrategyConfig{}, errors.Newf(errors.ErrCodeInvalidParameter,
			"invalid strategy %q, expected type:short:long", value)
	}

	shortWindow, err := strconv.Atoi(parts[1])
	if err != nil {
		return types.StrategyConfig{}, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid short window in %q", value)
	}

	longWindow, err := strconv.Atoi(parts[2])
	if err != nil {
		return types.StrategyConfig{}, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid long window in %q", value)
	}

	return types.StrategyConfig{
		Type:        types.StrategyType(strings.TrimSpace(parts[0])),
		ShortWindow: shortWindow,
		LongWindow:  longWindow,
	}, nil
}

// Key identifies a strategy inside a registry. Window strategies are keyed by
// type and windows so two crossovers of the same kind can be compared.
func Key(s Strategy) string {
	if ws, ok := s.(WindowStrategy); ok {
		config := ws.Config()

		return fmt.Sprintf("%s:%d:%d", config.Type, config.ShortWindow, config.LongWindow)
	}

	return s.Name()
}
