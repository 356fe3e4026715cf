package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-research/internal/backtest"
	"github.com/rxtech-lab/argo-research/internal/backtest/engine"
	"github.com/rxtech-lab/argo-research/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/strategy"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type BacktestEngineV1 struct {
	config     BacktestEngineV1Config
	strategies *strategy.Registry
	dataPath   string
	log        *logger.Logger
	datasource datasource.DataSource
}

func NewBacktestEngineV1() engine.Engine {
	return &BacktestEngineV1{
		config:     EmptyConfig(),
		strategies: strategy.NewRegistry(),
		dataPath:   "",
		log:        logger.NewNopLogger(),
		datasource: nil,
	}
}

// Initialize implements engine.Engine.
func (b *BacktestEngineV1) Initialize(config string) error {
	// parse the config
	err := yaml.Unmarshal([]byte(config), &b.config)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to parse backtest config", err)
	}

	if err := b.config.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestConfigError, "invalid backtest config", err)
	}

	// initialize the logger
	var loggerError error

	b.log, loggerError = logger.NewLoggerWithLevel(b.config.LogLevel)
	if loggerError != nil {
		return errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to create logger", loggerError)
	}

	for _, strategyConfig := range b.config.Strategies {
		s, err := strategy.NewStrategy(strategyConfig)
		if err != nil {
			return err
		}

		if err := b.LoadStrategy(s); err != nil {
			return err
		}
	}

	b.log.Debug("Backtest engine initialized",
		zap.String("symbol", b.config.Symbol),
		zap.Int("strategies", b.strategies.Len()),
		zap.Bool("parallel", b.config.Parallel),
	)

	return nil
}

// LoadStrategy implements engine.Engine.
func (b *BacktestEngineV1) LoadStrategy(s strategy.Strategy) error {
	if err := b.strategies.Register(s); err != nil {
		return err
	}

	b.log.Debug("Strategy loaded",
		zap.String("strategy", strategy.Key(s)),
		zap.Int("total_strategies", b.strategies.Len()),
	)

	return nil
}

// SetDataPath implements engine.Engine.
func (b *BacktestEngineV1) SetDataPath(path string) error {
	// use glob to get all the files that match the path
	files, err := filepath.Glob(path)
	if err != nil {
		b.log.Error("Failed to set data path",
			zap.String("path", path),
			zap.Error(err),
		)

		return errors.Wrap(errors.ErrCodeBacktestDataPathError, "invalid data path", err)
	}

	switch len(files) {
	case 0:
		return errors.Newf(errors.ErrCodeBacktestNoDataPaths, "no data file matches %s", path)
	case 1:
	default:
		return errors.Newf(errors.ErrCodeBacktestDataPathError, "%d data files match %s, expected exactly one", len(files), path)
	}

	absPath, err := filepath.Abs(files[0])
	if err != nil {
		b.log.Error("Failed to get absolute path",
			zap.String("path", files[0]),
			zap.Error(err),
		)

		return errors.Wrap(errors.ErrCodeBacktestDataPathError, "invalid data path", err)
	}

	b.dataPath = absPath
	b.log.Debug("Data path set",
		zap.String("file", absPath),
	)

	return nil
}

// SetDataSource implements engine.Engine.
func (b *BacktestEngineV1) SetDataSource(dataSource datasource.DataSource) error {
	b.datasource = dataSource

	return nil
}

// Run implements engine.Engine.
func (b *BacktestEngineV1) Run(ctx context.Context, callbacks engine.LifecycleCallbacks) (report *types.ComparisonReport, err error) {
	defer func() {
		if callbacks.OnRunEnd != nil {
			(*callbacks.OnRunEnd)(err)
		}
	}()

	if err := b.preRunCheck(); err != nil {
		return nil, err
	}

	dataSource := b.datasource
	if dataSource == nil {
		dataSource, err = datasource.NewDataSource(":memory:", b.log)
		if err != nil {
			return nil, err
		}

		defer dataSource.Close()
	}

	if b.dataPath != "" {
		if err := dataSource.Initialize(b.dataPath); err != nil {
			return nil, fmt.Errorf("failed to initialize data source: %w", err)
		}
	}

	count, err := dataSource.Count(b.config.StartTime, b.config.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to count bars: %w", err)
	}

	if count == 0 {
		return nil, errors.New(errors.ErrCodeNoDataFound, "no bars in the requested window")
	}

	b.log.Debug("Bars in window", zap.Int("bars", count))

	series, err := dataSource.ReadSeries(b.config.Symbol, b.config.StartTime, b.config.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to read price series: %w", err)
	}

	if b.config.StrictWarmup {
		if err := checkWarmup(series, b.strategies.List()); err != nil {
			b.log.Error("Series too short", zap.Error(err))

			return nil, err
		}
	}

	runID := uuid.New().String()

	b.log.Info("Running comparison",
		zap.String("run_id", runID),
		zap.String("symbol", series.Symbol),
		zap.Int("bars", series.Len()),
		zap.Int("strategies", b.strategies.Len()),
	)

	if callbacks.OnRunStart != nil {
		if err := (*callbacks.OnRunStart)(runID, series.Symbol, series.Len()); err != nil {
			return nil, fmt.Errorf("run aborted by OnRunStart callback: %w", err)
		}
	}

	comparator := backtest.NewComparator(
		backtest.WithLogger(b.log),
		backtest.WithParallel(b.config.Parallel),
	)

	comparison, err := comparator.Run(ctx, series, b.strategies.List()...)
	if err != nil {
		return nil, err
	}

	for _, result := range comparison.Results {
		if callbacks.OnStrategyEnd != nil {
			(*callbacks.OnStrategyEnd)(result.Index, result.Strategy.Name(), result.Final())
		}
	}

	report = NewComparisonReport(runID, comparison)

	b.log.Info("Comparison finished",
		zap.String("run_id", runID),
		zap.String("best", report.Best),
	)

	return report, nil
}

// GetConfigSchema implements engine.Engine.
func (b *BacktestEngineV1) GetConfigSchema() (string, error) {
	config := b.config

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return "", fmt.Errorf("failed to generate schema: %w", err)
	}

	return schema, nil
}

func (b *BacktestEngineV1) preRunCheck() error {
	if b.strategies.Len() == 0 {
		b.log.Error("No strategies loaded")

		return errors.New(errors.ErrCodeBacktestNoStrategies, "no strategies loaded")
	}

	if b.dataPath == "" && b.datasource == nil {
		b.log.Error("No data path or data source set")

		return errors.New(errors.ErrCodeBacktestNoDatasource, "no data path or data source set")
	}

	return nil
}

// checkWarmup returns an InsufficientDataError when no strategy can emit a
// signal on series, i.e. the series is not longer than every warm-up.
func checkWarmup(series types.PriceSeries, strategies []strategy.Strategy) error {
	required := -1

	for _, s := range strategies {
		periods := 0
		if ws, ok := s.(strategy.WindowStrategy); ok {
			periods = ws.WarmupPeriods()
		}

		if required < 0 || periods+1 < required {
			required = periods + 1
		}
	}

	if series.Len() >= required {
		return nil
	}

	return errors.NewInsufficientDataErrorf(required, series.Len(), series.Symbol,
		"series of %d bars is too short for any strategy to signal, need at least %d", series.Len(), required)
}
