package backtest

import (
	"context"
	"math"
	"testing"

	"github.com/rxtech-lab/argo-research/internal/strategy"
	"github.com/rxtech-lab/argo-research/mocks"
	"github.com/stretchr/testify/suite"
)

type AnnotateTestSuite struct {
	suite.Suite
}

func TestAnnotateSuite(t *testing.T) {
	suite.Run(t, new(AnnotateTestSuite))
}

func (suite *AnnotateTestSuite) TestColumnNames() {
	suite.Equal("Buy1", BuyColumn(1))
	suite.Equal("Sell2", SellColumn(2))
	suite.Equal("Strategy1_Position", PositionColumn(1))
	suite.Equal("Strategy2_Returns", ReturnsColumn(2))
}

func (suite *AnnotateTestSuite) TestAnnotate() {
	series := mocks.GenerateCloses("TRI", 1, 2, 3, 4, 5, 4, 3, 2, 1)

	comparison, err := NewComparator().Run(context.Background(), series,
		strategy.NewMovingAverageStrategy(2, 3),
		strategy.NewExponentialMovingAverageStrategy(2, 3),
	)
	suite.Require().NoError(err)

	table := comparison.Annotate()

	suite.Equal([]string{
		"Buy1", "Sell1", "Buy2", "Sell2",
		"Strategy1_Position", "Strategy2_Position",
		"Strategy1_Returns", "Strategy2_Returns",
	}, table.Names())
	suite.Len(table.Times, 9)
	suite.Equal(5.0, table.Close[4])

	buy1, ok := table.Column("Buy1")
	suite.True(ok)
	suite.Equal(ColumnKindBool, buy1.Kind)
	suite.Equal(comparison.Results[0].Signals.Buy, buy1.Bools)

	returns2, ok := table.Column("Strategy2_Returns")
	suite.True(ok)
	suite.Equal(ColumnKindFloat, returns2.Kind)
	suite.True(math.IsNaN(returns2.Floats[0]))

	_, ok = table.Column("Strategy3_Returns")
	suite.False(ok)
}

func (suite *AnnotateTestSuite) TestAnnotateCopiesResults() {
	series := mocks.GenerateCloses("X", 1, 2, 3, 4)

	comparison, err := NewComparator().Run(context.Background(), series, strategy.NewMovingAverageStrategy(1, 2))
	suite.Require().NoError(err)

	table := comparison.Annotate()
	position, ok := table.Column("Strategy1_Position")
	suite.Require().True(ok)

	position.Floats[3] = 99

	suite.Equal(1.0, comparison.Results[0].Positions[3])
}
