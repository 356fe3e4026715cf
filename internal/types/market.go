package types

import (
	"time"

	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// Column names understood by PriceSeries.Column.
const (
	ColumnOpen   = "open"
	ColumnHigh   = "high"
	ColumnLow    = "low"
	ColumnClose  = "close"
	ColumnVolume = "volume"
)

// Bar is one trading day of open/high/low/close/volume.
type Bar struct {
	Time   time.Time `yaml:"time" json:"time"`
	Open   float64   `yaml:"open" json:"open"`
	High   float64   `yaml:"high" json:"high"`
	Low    float64   `yaml:"low" json:"low"`
	Close  float64   `yaml:"close" json:"close"`
	Volume int64     `yaml:"volume" json:"volume"`
}

// PriceSeries is an ordered-by-time sequence of daily bars for a single instrument.
// Gaps (non-trading days) are permitted and never filled.
type PriceSeries struct {
	Symbol string
	Bars   []Bar
}

// Len returns the number of bars in the series.
func (p PriceSeries) Len() int {
	return len(p.Bars)
}

// Times returns the index of the series.
func (p PriceSeries) Times() []time.Time {
	times := make([]time.Time, len(p.Bars))
	for i, bar := range p.Bars {
		times[i] = bar.Time
	}

	return times
}

// Column returns the named column as a float slice.
// An empty series carries no columns, so any lookup on it fails with a MissingColumnError.
func (p PriceSeries) Column(name string) ([]float64, error) {
	if len(p.Bars) == 0 {
		return nil, errors.NewMissingColumnError(name, p.Symbol)
	}

	var pick func(Bar) float64

	switch name {
	case ColumnOpen:
		pick = func(b Bar) float64 { return b.Open }
	case ColumnHigh:
		pick = func(b Bar) float64 { return b.High }
	case ColumnLow:
		pick = func(b Bar) float64 { return b.Low }
	case ColumnClose:
		pick = func(b Bar) float64 { return b.Close }
	case ColumnVolume:
		pick = func(b Bar) float64 { return float64(b.Volume) }
	default:
		return nil, errors.NewMissingColumnError(name, p.Symbol)
	}

	values := make([]float64, len(p.Bars))
	for i, bar := range p.Bars {
		values[i] = pick(bar)
	}

	return values, nil
}

// Closes is a shorthand for Column(ColumnClose).
func (p PriceSeries) Closes() ([]float64, error) {
	return p.Column(ColumnClose)
}

// Validate checks that the index is strictly increasing.
// The backtest core assumes this but never calls it; data sources do.
func (p PriceSeries) Validate() error {
	for i := 1; i < len(p.Bars); i++ {
		if !p.Bars[i].Time.After(p.Bars[i-1].Time) {
			return errors.Newf(errors.ErrCodeUnorderedSeries,
				"bar %d (%s) is not after bar %d (%s)",
				i, p.Bars[i].Time.Format(time.DateOnly), i-1, p.Bars[i-1].Time.Format(time.DateOnly))
		}
	}

	return nil
}
