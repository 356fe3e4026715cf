package engine

import (
	"time"

	"github.com/rxtech-lab/argo-research/internal/backtest"
	"github.com/rxtech-lab/argo-research/internal/strategy"
	"github.com/rxtech-lab/argo-research/internal/types"
)

// NewComparisonReport summarizes a comparison.
func NewComparisonReport(runID string, comparison *backtest.Comparison) *types.ComparisonReport {
	series := comparison.Series

	report := &types.ComparisonReport{
		ID:               runID,
		Timestamp:        time.Now(),
		Symbol:           series.Symbol,
		Bars:             series.Len(),
		BuyAndHoldReturn: comparison.BuyAndHoldReturn(),
		Strategies:       make([]types.StrategyStats, 0, len(comparison.Results)),
	}

	if series.Len() > 0 {
		report.Start = series.Bars[0].Time
		report.End = series.Bars[series.Len()-1].Time
	}

	for _, result := range comparison.Results {
		report.Strategies = append(report.Strategies, newStrategyStats(result))
	}

	if best, ok := comparison.Best(); ok {
		report.Best = strategy.Key(best.Strategy)
	}

	return report
}

func newStrategyStats(result backtest.StrategyResult) types.StrategyStats {
	buys, sells := result.Signals.Count()
	long, short, undefined := result.Positions.Exposure()

	return types.StrategyStats{
		Index:           result.Index,
		Key:             strategy.Key(result.Strategy),
		Name:            result.Strategy.Name(),
		Description:     result.Strategy.Description(),
		FinalReturn:     result.Final(),
		WarmupPeriods:   result.WarmupPeriods,
		BuySignals:      buys,
		SellSignals:     sells,
		PositionChanges: result.Positions.Changes(),
		Exposure: types.PositionExposure{
			Long:      long,
			Short:     short,
			Undefined: undefined,
		},
	}
}
