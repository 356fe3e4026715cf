package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type IndicatorInterfaceTestSuite struct {
	suite.Suite
}

func TestIndicatorInterfaceSuite(t *testing.T) {
	suite.Run(t, new(IndicatorInterfaceTestSuite))
}

func (suite *IndicatorInterfaceTestSuite) TestWarmup() {
	suite.Equal(0, warmup(0))
	suite.Equal(0, warmup(1))
	suite.Equal(1, warmup(2))
	suite.Equal(19, warmup(20))
}

func (suite *IndicatorInterfaceTestSuite) TestNanSeries() {
	out := nanSeries(3)
	suite.Len(out, 3)

	for _, v := range out {
		suite.True(math.IsNaN(v))
	}

	suite.Empty(nanSeries(0))
}

func (suite *IndicatorInterfaceTestSuite) TestImplementations() {
	var _ MovingAverage = &SMA{}
	var _ MovingAverage = &WMA{}
	var _ MovingAverage = &EMA{}
}
