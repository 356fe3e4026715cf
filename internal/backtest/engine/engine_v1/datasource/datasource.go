package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-research/internal/types"
)

type DataSource interface {
	// Initialize loads the daily bars at path (parquet or csv) as the market_data view
	Initialize(path string) error
	// ReadSeries reads the bars of symbol within [start, end], ordered by time.
	// An empty symbol is allowed when the data holds a single instrument.
	ReadSeries(symbol string, start optional.Option[time.Time], end optional.Option[time.Time]) (types.PriceSeries, error)
	// Symbols returns the distinct symbols in the data
	Symbols() ([]string, error)
	// Count returns the number of bars of every symbol within [start, end]
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Close closes the data source and releases any resources
	Close() error
}
