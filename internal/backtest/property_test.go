package backtest

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rxtech-lab/argo-research/internal/strategy"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/mocks"
)

func generateSeries(seed int64, count int) types.PriceSeries {
	config := mocks.DefaultConfig()
	config.Count = count
	config.Volatility = 0.03

	return mocks.NewDataGenerator(seed).Generate(config)
}

// TestCumulativeReturnAdditivity checks that the final cumulative return equals the
// plain sum of all defined period returns.
func TestCumulativeReturnAdditivity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("final return is the sum of period returns", prop.ForAll(
		func(seed int64, count int, shortWindow int, longWindow int) bool {
			series := generateSeries(seed, count)

			for _, s := range []strategy.Strategy{
				strategy.NewMovingAverageStrategy(shortWindow, longWindow),
				strategy.NewWeightedMovingAverageStrategy(shortWindow, longWindow),
				strategy.NewExponentialMovingAverageStrategy(shortWindow, longWindow),
			} {
				result, err := RunStrategy(1, s, series)
				if err != nil {
					return false
				}

				sum := 0.0
				for _, r := range result.Returns.Period {
					if !math.IsNaN(r) {
						sum += r
					}
				}

				if math.Abs(sum-result.Final()) > 1e-9 {
					return false
				}
			}

			return true
		},
		gen.Int64Range(1, 1_000_000),
		gen.IntRange(2, 300),
		gen.IntRange(1, 10),
		gen.IntRange(11, 60),
	))

	properties.TestingRun(t)
}

// TestFlatPositionNeutrality checks that a strategy that never signals ends flat.
func TestFlatPositionNeutrality(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("no signal means zero return", prop.ForAll(
		func(seed int64, count int) bool {
			series := generateSeries(seed, count)

			// the long window never fills, so no signal fires
			result, err := RunStrategy(1, strategy.NewMovingAverageStrategy(2, count+1), series)
			if err != nil {
				return false
			}

			return result.Final() == 0 && result.Positions.FirstDefined() == -1
		},
		gen.Int64Range(1, 1_000_000),
		gen.IntRange(1, 120),
	))

	properties.Property("undefined positions yield zero return", prop.ForAll(
		func(seed int64, count int) bool {
			series := generateSeries(seed, count)
			positions := ResolvePositions(types.NewSignalPair(count))

			returns, err := AccumulateReturns(series, positions)
			if err != nil {
				return false
			}

			return returns.Final() == 0
		},
		gen.Int64Range(1, 1_000_000),
		gen.IntRange(1, 120),
	))

	properties.TestingRun(t)
}

// TestComparatorSymmetry checks that swapping the strategies swaps the results.
func TestComparatorSymmetry(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("compare(A, B) mirrors compare(B, A)", prop.ForAll(
		func(seed int64, shortWindow int, longWindow int) bool {
			series := generateSeries(seed, 200)
			a := strategy.NewMovingAverageStrategy(shortWindow, longWindow)
			b := strategy.NewExponentialMovingAverageStrategy(shortWindow, longWindow)

			ab1, ab2, err := Compare(a, b, series)
			if err != nil {
				return false
			}

			ba1, ba2, err := Compare(b, a, series)
			if err != nil {
				return false
			}

			return ab1 == ba2 && ab2 == ba1
		},
		gen.Int64Range(1, 1_000_000),
		gen.IntRange(1, 10),
		gen.IntRange(11, 40),
	))

	properties.TestingRun(t)
}

// TestForwardFillIdempotence checks that resolving the signals implied by a
// resolved position series reproduces it.
func TestForwardFillIdempotence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("resolve(signals(resolve(x))) == resolve(x)", prop.ForAll(
		func(seed int64, count int) bool {
			series := generateSeries(seed, count)

			signals, err := strategy.NewExponentialMovingAverageStrategy(3, 8).GetSignals(series)
			if err != nil {
				return false
			}

			positions := ResolvePositions(signals)

			implied := types.NewSignalPair(len(positions))
			for i, p := range positions {
				implied.Buy[i] = p == types.PositionLong
				implied.Sell[i] = p == types.PositionShort
			}

			again := ResolvePositions(implied)
			for i := range positions {
				if math.IsNaN(positions[i]) != math.IsNaN(again[i]) {
					return false
				}

				if !math.IsNaN(positions[i]) && positions[i] != again[i] {
					return false
				}
			}

			return true
		},
		gen.Int64Range(1, 1_000_000),
		gen.IntRange(1, 200),
	))

	properties.TestingRun(t)
}
