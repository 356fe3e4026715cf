package backtest

import (
	"context"
	"math"

	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/strategy"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// StrategyResult holds everything one strategy produced over a series.
type StrategyResult struct {
	// Index is the 1-based position of the strategy in the comparison.
	Index     int
	Strategy  strategy.Strategy
	Signals   types.SignalPair
	Positions types.PositionSeries
	Returns   types.ReturnSeries
	// WarmupPeriods is 0 for strategies that do not expose a warm-up.
	WarmupPeriods int
}

// Final returns the last cumulative return.
func (r StrategyResult) Final() float64 {
	return r.Returns.Final()
}

// Comparison is the result of running several strategies over the same series.
// The series is shared with the caller and never modified.
type Comparison struct {
	Series  types.PriceSeries
	Results []StrategyResult
}

// Finals returns the final cumulative return of every strategy, in input order.
func (c *Comparison) Finals() []float64 {
	finals := make([]float64, len(c.Results))
	for i, result := range c.Results {
		finals[i] = result.Final()
	}

	return finals
}

// Best returns the result with the highest final return. The first one wins a tie.
func (c *Comparison) Best() (StrategyResult, bool) {
	if len(c.Results) == 0 {
		return StrategyResult{}, false
	}

	best := c.Results[0]
	for _, result := range c.Results[1:] {
		if result.Final() > best.Final() {
			best = result
		}
	}

	return best, true
}

// BuyAndHoldReturn is the return of holding the instrument long over the whole series.
func (c *Comparison) BuyAndHoldReturn() float64 {
	closes, err := c.Series.Closes()
	if err != nil {
		return math.NaN()
	}

	return BuyAndHoldReturn(closes)
}

// ComparatorOption configures a Comparator.
type ComparatorOption func(*Comparator)

// WithLogger sets the logger used by the comparator.
func WithLogger(log *logger.Logger) ComparatorOption {
	return func(c *Comparator) {
		c.log = log
	}
}

// WithParallel runs every strategy in its own goroutine.
func WithParallel(parallel bool) ComparatorOption {
	return func(c *Comparator) {
		c.parallel = parallel
	}
}

// Comparator runs strategies against a price series and collects their returns.
type Comparator struct {
	log      *logger.Logger
	parallel bool
}

// NewComparator creates a sequential comparator that does not log.
func NewComparator(opts ...ComparatorOption) *Comparator {
	c := &Comparator{
		log:      logger.NewNopLogger(),
		parallel: false,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Run evaluates every strategy over series. Strategies are independent, so the
// result does not depend on their order or on whether they ran in parallel.
func (c *Comparator) Run(ctx context.Context, series types.PriceSeries, strategies ...strategy.Strategy) (*Comparison, error) {
	if len(strategies) == 0 {
		return nil, errors.New(errors.ErrCodeBacktestNoStrategies, "no strategies to compare")
	}

	c.log.Debug("Comparing strategies",
		zap.String("symbol", series.Symbol),
		zap.Int("bars", series.Len()),
		zap.Int("strategies", len(strategies)),
		zap.Bool("parallel", c.parallel),
	)

	results := make([]StrategyResult, len(strategies))

	if c.parallel {
		g, gctx := errgroup.WithContext(ctx)

		for i, s := range strategies {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				result, err := c.runOne(i+1, s, series)
				if err != nil {
					return err
				}

				results[i] = result

				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, s := range strategies {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			result, err := c.runOne(i+1, s, series)
			if err != nil {
				return nil, err
			}

			results[i] = result
		}
	}

	return &Comparison{
		Series:  series,
		Results: results,
	}, nil
}

func (c *Comparator) runOne(index int, s strategy.Strategy, series types.PriceSeries) (StrategyResult, error) {
	result, err := RunStrategy(index, s, series)
	if err != nil {
		c.log.Error("Strategy failed",
			zap.Int("index", index),
			zap.String("strategy", s.Name()),
			zap.Error(err),
		)

		return StrategyResult{}, err
	}

	c.log.Debug("Strategy evaluated",
		zap.Int("index", index),
		zap.String("strategy", s.Name()),
		zap.Int("warmup_periods", result.WarmupPeriods),
		zap.Float64("final_return", result.Final()),
	)

	return result, nil
}

// RunStrategy derives signals, positions and returns of one strategy over series.
func RunStrategy(index int, s strategy.Strategy, series types.PriceSeries) (StrategyResult, error) {
	signals, err := s.GetSignals(series)
	if err != nil {
		return StrategyResult{}, err
	}

	if signals.Len() != series.Len() || len(signals.Sell) != series.Len() {
		return StrategyResult{}, errors.Newf(errors.ErrCodeStrategySignalsFailed,
			"strategy %s returned %d buy and %d sell signals for %d bars",
			s.Name(), signals.Len(), len(signals.Sell), series.Len())
	}

	positions := ResolvePositions(signals)

	returns, err := AccumulateReturns(series, positions)
	if err != nil {
		return StrategyResult{}, err
	}

	warmup := 0
	if ws, ok := s.(strategy.WindowStrategy); ok {
		warmup = ws.WarmupPeriods()
	}

	return StrategyResult{
		Index:         index,
		Strategy:      s,
		Signals:       signals,
		Positions:     positions,
		Returns:       returns,
		WarmupPeriods: warmup,
	}, nil
}

// Compare runs two strategies over series and returns their final cumulative returns.
func Compare(a strategy.Strategy, b strategy.Strategy, series types.PriceSeries) (float64, float64, error) {
	comparison, err := NewComparator().Run(context.Background(), series, a, b)
	if err != nil {
		return 0, 0, err
	}

	return comparison.Results[0].Final(), comparison.Results[1].Final(), nil
}
