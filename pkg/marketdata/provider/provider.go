package provider

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/rxtech-lab/argo-research/pkg/marketdata/writer"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderPolygon      ProviderType = "polygon"
	ProviderBinance      ProviderType = "binance"
	ProviderAlpaca       ProviderType = "alpaca"
	ProviderAlphaVantage ProviderType = "alphavantage"
	ProviderYahoo        ProviderType = "yahoo"
)

type OnDownloadProgress = func(current float64, total float64, message string)

type Provider interface {
	// ConfigWriter configures the writer for the provider
	// Writer is used to write the market data to the database.
	// It could be a file, a database, etc.
	ConfigWriter(writer writer.MarketDataWriter)
	// Download downloads the daily bars for the given ticker in [startDate, endDate].
	// The context can be used to cancel the download operation.
	// example:
	// Download(ctx, "AAPL", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC), onProgress)
	Download(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, onProgress OnDownloadProgress) (path string, err error)
	// Fundamentals fetches the headline fundamental metrics of the ticker.
	// Providers without fundamentals return ErrCodeFundamentalsUnsupported.
	Fundamentals(ctx context.Context, ticker string) (types.Fundamentals, error)
}

// Config carries the settings shared by all providers.
type Config struct {
	APIKey    string
	APISecret string
	// BaseURL overrides the provider's API endpoint. Empty means the public endpoint.
	BaseURL string
	Logger  *logger.Logger
	// ProgressWriter receives the terminal progress bar. Defaults to stderr.
	ProgressWriter io.Writer
}

func (c Config) logger() *logger.Logger {
	if c.Logger == nil {
		return logger.NewNopLogger()
	}

	return c.Logger
}

// NewMarketDataProvider creates a new market data provider based on the provider type.
func NewMarketDataProvider(providerType ProviderType, config Config) (Provider, error) {
	switch providerType {
	case ProviderPolygon:
		return NewPolygonClient(config)
	case ProviderBinance:
		return NewBinanceClient(config)
	case ProviderAlpaca:
		return NewAlpacaClient(config)
	case ProviderAlphaVantage:
		return NewAlphaVantageClient(config)
	case ProviderYahoo:
		return NewYahooClient(config)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}

// writeBars initializes w, hands fetch an emit function that writes one bar,
// and finalizes the output once fetch returns.
func writeBars(w writer.MarketDataWriter, ticker string, fetch func(emit func(bar types.Bar) error) error) (path string, err error) {
	if w == nil {
		return "", errors.New(errors.ErrCodeMarketDataWriteFailed, "no writer configured, call ConfigWriter first")
	}

	if err = w.Initialize(); err != nil {
		return "", fmt.Errorf("failed to initialize writer: %w", err)
	}

	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing writer: %w", cerr)
		}
	}()

	err = fetch(func(bar types.Bar) error {
		if err := w.Write(ticker, bar); err != nil {
			return fmt.Errorf("failed to write data: %w", err)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	outputPath, err := w.Finalize()
	if err != nil {
		return "", fmt.Errorf("failed to finalize writer: %w", err)
	}

	return outputPath, nil
}

// inWindow reports whether t falls on a day in [start, end].
func inWindow(t time.Time, start time.Time, end time.Time) bool {
	day := t.UTC().Truncate(24 * time.Hour)

	return !day.Before(start.UTC().Truncate(24*time.Hour)) && !day.After(end.UTC().Truncate(24*time.Hour))
}

func unsupportedFundamentals(providerType ProviderType, ticker string) error {
	return errors.Newf(errors.ErrCodeFundamentalsUnsupported, "%s does not provide fundamentals for %s", providerType, ticker)
}
