package strategy

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type StrategyTestSuite struct {
	suite.Suite
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategyTestSuite))
}

// seriesFromCloses builds a daily series whose bars only carry a close.
func seriesFromCloses(closes ...float64) types.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]types.Bar, len(closes))

	for i, c := range closes {
		bars[i] = types.Bar{
			Time:  start.AddDate(0, 0, i),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		}
	}

	return types.PriceSeries{Symbol: "TEST", Bars: bars}
}

func (suite *StrategyTestSuite) TestMovingAverageWarmup() {
	s := NewMovingAverageStrategy(2, 3)

	signals, err := s.GetSignals(seriesFromCloses(1, 2, 3, 4, 5))
	suite.Require().NoError(err)

	suite.Equal([]bool{false, false, true, true, true}, signals.Buy)
	suite.Equal([]bool{false, false, false, false, false}, signals.Sell)
	suite.Equal(2, s.WarmupPeriods())
}

func (suite *StrategyTestSuite) TestMovingAverageCrossover() {
	s := NewMovingAverageStrategy(2, 3)

	signals, err := s.GetSignals(seriesFromCloses(1, 2, 3, 4, 5, 4, 3, 2, 1))
	suite.Require().NoError(err)

	// short: [_, 1.5, 2.5, 3.5, 4.5, 4.5, 3.5, 2.5, 1.5]
	// long:  [_, _, 2, 3, 4, 4.33, 4, 3, 2]
	suite.Equal([]bool{false, false, true, true, true, true, false, false, false}, signals.Buy)
	suite.Equal([]bool{false, false, false, false, false, false, true, true, true}, signals.Sell)
}

func (suite *StrategyTestSuite) TestWindowLongerThanSeries() {
	signals, err := NewMovingAverageStrategy(5, 50).GetSignals(seriesFromCloses(1, 2, 3))
	suite.Require().NoError(err)

	buys, sells := signals.Count()
	suite.Equal(0, buys)
	suite.Equal(0, sells)
	suite.Equal(3, signals.Len())
}

func (suite *StrategyTestSuite) TestWeightedMovingAverage() {
	s := NewWeightedMovingAverageStrategy(2, 3)

	signals, err := s.GetSignals(seriesFromCloses(1, 2, 3, 4))
	suite.Require().NoError(err)

	// short at 2: (2*1 + 3*2)/3 = 2.67, long at 2: (1 + 4 + 9)/6 = 2.33
	suite.Equal([]bool{false, false, true, true}, signals.Buy)
	suite.Equal([]bool{false, false, false, false}, signals.Sell)
	suite.Equal(2, s.WarmupPeriods())
}

func (suite *StrategyTestSuite) TestWeightedReactsFasterThanSimple() {
	// the late jump lifts the weighted short average while the simple averages still tie
	series := seriesFromCloses(10, 10, 10, 10, 9, 9, 12)

	wma, err := NewWeightedMovingAverageStrategy(3, 4).GetSignals(series)
	suite.Require().NoError(err)
	suite.True(wma.Buy[6])

	sma, err := NewMovingAverageStrategy(3, 4).GetSignals(series)
	suite.Require().NoError(err)
	suite.False(sma.Buy[6])
	suite.False(sma.Sell[6])
}

func (suite *StrategyTestSuite) TestExponentialMovingAverage() {
	s := NewExponentialMovingAverageStrategy(1, 2)

	signals, err := s.GetSignals(seriesFromCloses(10, 20, 30))
	suite.Require().NoError(err)

	// short: [10, 20, 30], long: [10, 16.67, 25.56]; bar 0 ties
	suite.Equal([]bool{false, true, true}, signals.Buy)
	suite.Equal([]bool{false, false, false}, signals.Sell)
	suite.Equal(0, s.WarmupPeriods())
}

func (suite *StrategyTestSuite) TestExponentialSignalsFromSecondBar() {
	signals, err := NewExponentialMovingAverageStrategy(3, 10).GetSignals(seriesFromCloses(100, 90, 80))
	suite.Require().NoError(err)

	suite.False(signals.Sell[0])
	suite.True(signals.Sell[1])
	suite.True(signals.Sell[2])
}

func (suite *StrategyTestSuite) TestConstantSeriesHasNoSignals() {
	series := seriesFromCloses(5, 5, 5, 5, 5, 5)

	for _, s := range []Strategy{
		NewMovingAverageStrategy(2, 4),
		NewWeightedMovingAverageStrategy(2, 4),
		NewExponentialMovingAverageStrategy(2, 4),
	} {
		signals, err := s.GetSignals(series)
		suite.Require().NoError(err)

		buys, sells := signals.Count()
		suite.Equal(0, buys, s.Name())
		suite.Equal(0, sells, s.Name())
	}
}

func (suite *StrategyTestSuite) TestMissingClose() {
	for _, s := range []Strategy{
		NewMovingAverageStrategy(2, 4),
		NewWeightedMovingAverageStrategy(2, 4),
		NewExponentialMovingAverageStrategy(2, 4),
	} {
		_, err := s.GetSignals(types.PriceSeries{Symbol: "EMPTY"})
		suite.Error(err)
		suite.True(errors.IsMissingColumnError(err))
	}
}

func (suite *StrategyTestSuite) TestGetSignalsIsPure() {
	series := seriesFromCloses(3, 1, 4, 1, 5, 9, 2, 6)
	s := NewMovingAverageStrategy(2, 3)

	first, err := s.GetSignals(series)
	suite.Require().NoError(err)
	second, err := s.GetSignals(series)
	suite.Require().NoError(err)

	suite.Equal(first, second)
	suite.Equal(seriesFromCloses(3, 1, 4, 1, 5, 9, 2, 6), series)
}

func (suite *StrategyTestSuite) TestNamesAndDescriptions() {
	suite.Equal("Moving Average", NewMovingAverageStrategy(5, 20).Name())
	suite.Equal("Weighted Moving Average", NewWeightedMovingAverageStrategy(5, 20).Name())
	suite.Equal("Exponential Moving Average", NewExponentialMovingAverageStrategy(5, 20).Name())
	suite.Contains(NewExponentialMovingAverageStrategy(5, 20).Description(), "exponential moving averages")
}

func (suite *StrategyTestSuite) TestConstructorsDoNotValidate() {
	s := NewMovingAverageStrategy(0, -1)
	suite.Equal(0, s.Config().ShortWindow)

	signals, err := s.GetSignals(seriesFromCloses(1, 2, 3))
	suite.Require().NoError(err)

	buys, sells := signals.Count()
	suite.Equal(0, buys)
	suite.Equal(0, sells)
}

func (suite *StrategyTestSuite) TestCrossSignals() {
	signals := crossSignals([]float64{1, 2, 3}, []float64{2, 2, 1})

	suite.Equal([]bool{false, false, true}, signals.Buy)
	suite.Equal([]bool{true, false, false}, signals.Sell)
}
