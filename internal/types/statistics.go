package types

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

type ReportFormat string

const (
	ReportFormatYAML ReportFormat = "yaml"
	ReportFormatJSON ReportFormat = "json"
)

type PositionExposure struct {
	// Bars spent long.
	Long int `yaml:"long" json:"long"`
	// Bars spent short.
	Short int `yaml:"short" json:"short"`
	// Bars before the first signal fired.
	Undefined int `yaml:"undefined" json:"undefined"`
}

// StrategyStats summarizes one strategy run over a price series.
type StrategyStats struct {
	// Index is the 1-based position of the strategy in the comparison.
	Index       int    `yaml:"index" json:"index"`
	// Key identifies the strategy and its parameters, e.g. moving_average:5:20.
	Key         string `yaml:"key" json:"key"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	// FinalReturn is the last value of the additive cumulative return.
	FinalReturn float64 `yaml:"final_return" json:"final_return"`
	// WarmupPeriods is the number of leading bars on which the strategy cannot signal.
	WarmupPeriods int `yaml:"warmup_periods" json:"warmup_periods"`
	// Number of buy and sell signals emitted.
	BuySignals  int `yaml:"buy_signals" json:"buy_signals"`
	SellSignals int `yaml:"sell_signals" json:"sell_signals"`
	// PositionChanges counts flips between long and short.
	PositionChanges int              `yaml:"position_changes" json:"position_changes"`
	Exposure        PositionExposure `yaml:"exposure" json:"exposure"`
}

// ComparisonReport is the outcome of comparing strategies over one price series.
type ComparisonReport struct {
	// ID is the unique identifier for this run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	Symbol    string    `yaml:"symbol" json:"symbol"`
	// Bars is the number of bars in the evaluated window.
	Bars  int       `yaml:"bars" json:"bars"`
	Start time.Time `yaml:"start" json:"start"`
	End   time.Time `yaml:"end" json:"end"`
	// BuyAndHoldReturn is close[last]/close[first] - 1 over the window.
	BuyAndHoldReturn float64         `yaml:"buy_and_hold_return" json:"buy_and_hold_return"`
	Strategies       []StrategyStats `yaml:"strategies" json:"strategies"`
	// Best is the key of the strategy with the highest final return.
	Best string `yaml:"best" json:"best"`
}

// WriteComparisonReport encodes the report to w in the requested format.
func WriteComparisonReport(w io.Writer, report ComparisonReport, format ReportFormat) error {
	switch format {
	case ReportFormatYAML:
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()

		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("failed to marshal comparison report to YAML: %w", err)
		}
	case ReportFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("failed to marshal comparison report to JSON: %w", err)
		}
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}

	return nil
}
