package backtest

import (
	"math"

	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// AccumulateReturns computes per-period and cumulative returns of holding positions over series.
//
// period[0] is NaN, period[i] = position[i] * (close[i]/close[i-1] - 1).
// The cumulative return is a running sum where NaN periods contribute 0; it does not compound.
func AccumulateReturns(series types.PriceSeries, positions types.PositionSeries) (types.ReturnSeries, error) {
	closes, err := series.Closes()
	if err != nil {
		return types.ReturnSeries{}, err
	}

	if len(closes) != len(positions) {
		return types.ReturnSeries{}, errors.Newf(errors.ErrCodeSeriesLengthMismatch,
			"series has %d bars but %d positions", len(closes), len(positions))
	}

	period := PeriodReturns(closes, positions)

	return types.ReturnSeries{
		Period:     period,
		Cumulative: CumulativeSum(period),
	}, nil
}

// PeriodReturns multiplies the close-to-close change by the position held on each bar.
func PeriodReturns(closes []float64, positions types.PositionSeries) []float64 {
	period := make([]float64, len(closes))

	for i := range closes {
		if i == 0 {
			period[i] = math.NaN()

			continue
		}

		period[i] = positions[i] * (closes[i]/closes[i-1] - 1)
	}

	return period
}

// CumulativeSum returns the running sum of values, treating NaN as 0.
func CumulativeSum(values []float64) []float64 {
	cumulative := make([]float64, len(values))
	sum := 0.0

	for i, v := range values {
		if !math.IsNaN(v) {
			sum += v
		}

		cumulative[i] = sum
	}

	return cumulative
}

// BuyAndHoldReturn is close[last]/close[first] - 1, or 0 for fewer than two bars.
func BuyAndHoldReturn(closes []float64) float64 {
	if len(closes) < 2 {
		return 0
	}

	return closes[len(closes)-1]/closes[0] - 1
}
