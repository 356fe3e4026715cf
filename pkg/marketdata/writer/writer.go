package writer

import (
	"github.com/rxtech-lab/argo-research/internal/types"
)

// MarketDataWriter defines the interface for writing downloaded daily bars to a destination.
type MarketDataWriter interface {
	// Initialize sets up the writer, potentially creating tables or files.
	Initialize() error
	// Write persists a single bar of the given symbol.
	Write(symbol string, bar types.Bar) error
	// Finalize completes the writing process (e.g., commits transactions, exports files).
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}
