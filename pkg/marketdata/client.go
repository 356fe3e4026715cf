package marketdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-research/pkg/marketdata/writer"
	"go.uber.org/zap"
)

// ProviderType defines the type of market data provider.
type ProviderType = provider.ProviderType

const (
	ProviderPolygon      = provider.ProviderPolygon
	ProviderBinance      = provider.ProviderBinance
	ProviderAlpaca       = provider.ProviderAlpaca
	ProviderAlphaVantage = provider.ProviderAlphaVantage
	ProviderYahoo        = provider.ProviderYahoo
)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	ProviderType ProviderType `validate:"required,oneof=polygon binance alpaca alphavantage yahoo"`
	DataPath     string       `validate:"required"`
	APIKey       string       `validate:"required_if=ProviderType polygon,required_if=ProviderType alphavantage,required_if=ProviderType alpaca"`
	APISecret    string       `validate:"required_if=ProviderType alpaca"`
	// BaseURL overrides the provider endpoint.
	BaseURL string
	Logger  *logger.Logger `validate:"-"`
}

// DownloadParams holds the parameters for a market data download request.
// Both dates are inclusive except for the yahoo provider, whose end date is exclusive.
type DownloadParams struct {
	Ticker    string    `validate:"required"`
	StartDate time.Time `validate:"required"`
	EndDate   time.Time `validate:"required,gtefield=StartDate"`
}

// Client is the market data client responsible for downloading data from providers and storing it using writers.
type Client struct {
	provider   provider.Provider
	config     ClientConfig
	validate   *validator.Validate
	onProgress provider.OnDownloadProgress
	log        *logger.Logger
}

// NewClient creates a new market data client with the given configuration.
func NewClient(config ClientConfig, onProgress provider.OnDownloadProgress) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid client configuration: %w", err)
	}

	log := config.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	marketProvider, err := provider.NewMarketDataProvider(config.ProviderType, provider.Config{
		APIKey:         config.APIKey,
		APISecret:      config.APISecret,
		BaseURL:        config.BaseURL,
		Logger:         log,
		ProgressWriter: nil,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", config.ProviderType, err)
	}

	return &Client{
		provider:   marketProvider,
		config:     config,
		validate:   validate,
		onProgress: onProgress,
		log:        log,
	}, nil
}

// Download fetches the daily bars described by params and returns the written Parquet path.
// The context can be used to cancel the download operation.
func (c *Client) Download(ctx context.Context, params DownloadParams) (string, error) {
	if err := c.validate.Struct(params); err != nil {
		return "", fmt.Errorf("invalid download parameters: %w", err)
	}

	marketWriter, err := c.setupWriter(params)
	if err != nil {
		return "", fmt.Errorf("failed to setup writer: %w", err)
	}

	defer func() {
		if err := marketWriter.Close(); err != nil {
			c.log.Warn("Failed to close writer", zap.Error(err))
		}
	}()

	c.provider.ConfigWriter(marketWriter)

	path, err := c.provider.Download(
		ctx,
		params.Ticker,
		params.StartDate,
		params.EndDate,
		c.onProgress,
	)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}

	return path, nil
}

// Fundamentals fetches the fundamental metrics of ticker from the configured provider.
func (c *Client) Fundamentals(ctx context.Context, ticker string) (types.Fundamentals, error) {
	if ticker == "" {
		return types.Fundamentals{}, fmt.Errorf("ticker is required")
	}

	return c.provider.Fundamentals(ctx, ticker)
}

// OutputFileName is the Parquet file name of a download: TICKER_START_END_1d.parquet.
func OutputFileName(params DownloadParams) string {
	return fmt.Sprintf("%s_%s_%s_1d.parquet",
		params.Ticker,
		params.StartDate.Format(time.DateOnly),
		params.EndDate.Format(time.DateOnly))
}

// setupWriter creates the data directory if needed and returns a DuckDB writer for the download.
func (c *Client) setupWriter(params DownloadParams) (writer.MarketDataWriter, error) {
	if err := os.MkdirAll(c.config.DataPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", c.config.DataPath, err)
	}

	return writer.NewDuckDBWriter(filepath.Join(c.config.DataPath, OutputFileName(params)), c.log), nil
}
