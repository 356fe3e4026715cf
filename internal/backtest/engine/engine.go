package engine

import (
	"context"

	"github.com/rxtech-lab/argo-research/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-research/internal/strategy"
	"github.com/rxtech-lab/argo-research/internal/types"
)

// Lifecycle callback types for backtest phases
// All callbacks with error return can abort execution if they return an error

// OnRunStartCallback is called once the price series is loaded, before any strategy runs.
// runID is the identifier of the comparison report that will be produced.
type OnRunStartCallback func(runID string, symbol string, totalBars int) error

// OnStrategyEndCallback is called after a strategy was evaluated, in input order.
// index is 1-based.
type OnStrategyEndCallback func(index int, strategyName string, finalReturn float64)

// OnRunEndCallback is called when the run completes (always called via defer).
type OnRunEndCallback func(err error)

// LifecycleCallbacks holds all lifecycle callback functions for the backtest engine.
// All fields are pointers - nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnRunStart    *OnRunStartCallback
	OnStrategyEnd *OnStrategyEndCallback
	OnRunEnd      *OnRunEndCallback
}

type Engine interface {
	// Initialize the engine with the given yaml configuration.
	// Strategies listed in the configuration are loaded immediately.
	Initialize(config string) error
	// SetDataPath sets the path to the daily bar file (parquet or csv).
	// Accepts a glob pattern that must resolve to exactly one file.
	SetDataPath(path string) error
	// SetDataSource sets the data source for the engine.
	SetDataSource(dataSource datasource.DataSource) error
	// LoadStrategy adds a strategy to the comparison. Could be called multiple times to load multiple strategies.
	LoadStrategy(strategy strategy.Strategy) error
	// Run loads the series, evaluates every strategy and returns the comparison report.
	// The context can be used to cancel the run.
	Run(ctx context.Context, callbacks LifecycleCallbacks) (*types.ComparisonReport, error)
	// GetConfigSchema returns the schema of the engine configuration
	GetConfigSchema() (string, error)
}
