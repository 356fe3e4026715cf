package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type BacktestCommandTestSuite struct {
	suite.Suite
	dir string
}

func TestBacktestCommandSuite(t *testing.T) {
	suite.Run(t, new(BacktestCommandTestSuite))
}

func (suite *BacktestCommandTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()

	content := "time,symbol,open,high,low,close,volume\n"
	for i, c := range []float64{1, 2, 3, 4, 5, 4, 3, 2, 1} {
		content += fmt.Sprintf("2024-01-%02d,SPY,%.2f,%.2f,%.2f,%.2f,100\n", i+1, c, c, c, c)
	}

	suite.Require().NoError(os.WriteFile(filepath.Join(suite.dir, "SPY.csv"), []byte(content), 0o600))
}

func (suite *BacktestCommandTestSuite) writeConfig(content string) string {
	path := filepath.Join(suite.dir, "config.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	return path
}

func (suite *BacktestCommandTestSuite) TestBuildConfigFromFlags() {
	config, err := buildConfig(compareOptions{
		Strategies: []string{"moving_average:2:3", "exponential_moving_average:5:20"},
		Symbol:     "SPY",
		Start:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)

	var values map[string]any
	suite.Require().NoError(yaml.Unmarshal([]byte(config), &values))
	suite.Equal("SPY", values["symbol"])
	suite.Equal(defaultLogLevel, values["log_level"])
	suite.Equal("2024-01-02T00:00:00Z", values["start_time"])
	suite.NotContains(values, "end_time")

	strategies, ok := values["strategies"].([]any)
	suite.Require().True(ok)
	suite.Len(strategies, 2)
}

func (suite *BacktestCommandTestSuite) TestBuildConfigMergesFile() {
	path := suite.writeConfig(`
symbol: QQQ
log_level: error
strategies:
  - type: moving_average
    short_window: 2
    long_window: 3
`)

	config, err := buildConfig(compareOptions{
		ConfigPath: path,
		Strategies: []string{"weighted_moving_average:2:3"},
		Symbol:     "SPY",
	})
	suite.Require().NoError(err)

	var values map[string]any
	suite.Require().NoError(yaml.Unmarshal([]byte(config), &values))
	suite.Equal("SPY", values["symbol"])
	suite.Equal("error", values["log_level"])
	suite.Len(values["strategies"], 2)
}

func (suite *BacktestCommandTestSuite) TestRunCompareWindowFromFile() {
	var out bytes.Buffer

	path := suite.writeConfig(`
start_time: 2024-01-01
end_time: 2024-01-05
strategies:
  - type: moving_average
    short_window: 2
    long_window: 3
`)

	err := runCompare(context.Background(), compareOptions{
		ConfigPath: path,
		DataPath:   filepath.Join(suite.dir, "SPY.csv"),
		Format:     "json",
	}, &out)
	suite.Require().NoError(err)

	var report types.ComparisonReport
	suite.Require().NoError(json.Unmarshal(out.Bytes(), &report))
	suite.Equal(5, report.Bars)
}

func (suite *BacktestCommandTestSuite) TestBuildConfigErrors() {
	_, err := buildConfig(compareOptions{Strategies: []string{"moving_average:2"}})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

	_, err = buildConfig(compareOptions{ConfigPath: filepath.Join(suite.dir, "missing.yaml")})
	suite.Error(err)
	suite.Contains(err.Error(), "failed to read config")
}

func (suite *BacktestCommandTestSuite) TestRunCompareJSON() {
	var out bytes.Buffer

	err := runCompare(context.Background(), compareOptions{
		Strategies: []string{"moving_average:2:3", "moving_average:1:9"},
		DataPath:   filepath.Join(suite.dir, "*.csv"),
		Format:     "json",
	}, &out)
	suite.Require().NoError(err)

	var report types.ComparisonReport
	suite.Require().NoError(json.Unmarshal(out.Bytes(), &report))
	suite.Equal("SPY", report.Symbol)
	suite.Equal(9, report.Bars)
	suite.Require().Len(report.Strategies, 2)
	suite.Equal("moving_average:2:3", report.Best)
	suite.InDelta(0.5, report.Strategies[1].FinalReturn, 1e-9)
}

func (suite *BacktestCommandTestSuite) TestRunCompareTable() {
	var out bytes.Buffer

	path := suite.writeConfig(`
strategies:
  - type: moving_average
    short_window: 2
    long_window: 3
  - type: weighted_moving_average
    short_window: 2
    long_window: 3
`)

	err := runCompare(context.Background(), compareOptions{
		ConfigPath: path,
		DataPath:   filepath.Join(suite.dir, "SPY.csv"),
		Format:     formatTable,
	}, &out)
	suite.Require().NoError(err)

	suite.Contains(out.String(), "moving_average:2:3")
	suite.Contains(out.String(), "weighted_moving_average:2:3")
	suite.Contains(out.String(), "Best: ")
	suite.Contains(out.String(), "Buy and hold: 0.00%")
}

func (suite *BacktestCommandTestSuite) TestRunCompareWindowFilter() {
	var out bytes.Buffer

	err := runCompare(context.Background(), compareOptions{
		Strategies: []string{"moving_average:2:3"},
		DataPath:   filepath.Join(suite.dir, "SPY.csv"),
		Start:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Format:     "yaml",
	}, &out)
	suite.Require().NoError(err)

	var report types.ComparisonReport
	suite.Require().NoError(yaml.Unmarshal(out.Bytes(), &report))
	suite.Equal(5, report.Bars)
	suite.InDelta(4.0, report.BuyAndHoldReturn, 1e-9)
}

func (suite *BacktestCommandTestSuite) TestRunCompareErrors() {
	var out bytes.Buffer

	err := runCompare(context.Background(), compareOptions{
		Strategies: []string{"moving_average:2:3"},
		DataPath:   filepath.Join(suite.dir, "SPY.csv"),
		Format:     "xml",
	}, &out)
	suite.Error(err)
	suite.Contains(err.Error(), "unsupported format")

	err = runCompare(context.Background(), compareOptions{
		Strategies: []string{"moving_average:0:3"},
		DataPath:   filepath.Join(suite.dir, "SPY.csv"),
	}, &out)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeBacktestConfigError))

	err = runCompare(context.Background(), compareOptions{
		Strategies: []string{"moving_average:2:3"},
		DataPath:   filepath.Join(suite.dir, "*.parquet"),
	}, &out)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeBacktestNoDataPaths))
}

func (suite *BacktestCommandTestSuite) TestRunCompareStrictWarmup() {
	var out bytes.Buffer

	opts := compareOptions{
		Strategies: []string{"moving_average:2:20"},
		DataPath:   filepath.Join(suite.dir, "SPY.csv"),
		Format:     "json",
	}

	suite.Require().NoError(runCompare(context.Background(), opts, &out))

	opts.StrictWarmup = true
	err := runCompare(context.Background(), opts, &out)
	suite.Error(err)
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *BacktestCommandTestSuite) TestRenderReportHighlightsBest() {
	report := types.ComparisonReport{
		Symbol: "SPY",
		Bars:   3,
		Start:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		Strategies: []types.StrategyStats{
			{Index: 1, Key: "moving_average:2:3", Name: "Moving Average", FinalReturn: 0.25},
			{Index: 2, Key: "exponential_moving_average:2:3", Name: "Exponential Moving Average", FinalReturn: -0.1},
		},
		Best: "moving_average:2:3",
	}

	out := renderReport(report)
	suite.Contains(out, "SPY  3 bars  2024-01-01 to 2024-01-03")
	suite.Contains(out, "25.00%")
	suite.Contains(out, "-10.00%")
	suite.Contains(out, "Best: moving_average:2:3")
}
