package types

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type IndicatorTestSuite struct {
	suite.Suite
}

func TestIndicatorSuite(t *testing.T) {
	suite.Run(t, new(IndicatorTestSuite))
}

func (suite *IndicatorTestSuite) TestIndicatorTypeConstants() {
	suite.Equal(IndicatorType("sma"), IndicatorTypeSMA)
	suite.Equal(IndicatorType("wma"), IndicatorTypeWMA)
	suite.Equal(IndicatorType("ema"), IndicatorTypeEMA)
}

func (suite *IndicatorTestSuite) TestStrategyTypeConstants() {
	suite.Equal(StrategyType("moving_average"), StrategyTypeMovingAverage)
	suite.Equal(StrategyType("weighted_moving_average"), StrategyTypeWeightedMovingAverage)
	suite.Equal(StrategyType("exponential_moving_average"), StrategyTypeExponentialMovingAverage)
	suite.Len(AllStrategyTypes, 3)
}
