package provider

import (
	"context"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/rxtech-lab/argo-research/pkg/marketdata/writer"
	"go.uber.org/zap"
)

// AlpacaAPIClient is the subset of the Alpaca market data client used by AlpacaClient.
type AlpacaAPIClient interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

type AlpacaClient struct {
	apiClient AlpacaAPIClient
	writer    writer.MarketDataWriter
	config    Config
	log       *logger.Logger
}

func NewAlpacaClient(config Config) (Provider, error) {
	if config.APIKey == "" || config.APISecret == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "apiKey and apiSecret are required")
	}

	opts := marketdata.ClientOpts{
		APIKey:    config.APIKey,
		APISecret: config.APISecret,
	}
	if config.BaseURL != "" {
		opts.BaseURL = config.BaseURL
	}

	return NewAlpacaClientWithAPI(marketdata.NewClient(opts), config), nil
}

// NewAlpacaClientWithAPI creates an AlpacaClient on top of the given API client.
func NewAlpacaClientWithAPI(apiClient AlpacaAPIClient, config Config) *AlpacaClient {
	return &AlpacaClient{
		apiClient: apiClient,
		writer:    nil,
		config:    config,
		log:       config.logger(),
	}
}

func (c *AlpacaClient) ConfigWriter(w writer.MarketDataWriter) {
	c.writer = w
}

// Download fetches split and dividend adjusted daily bars. The Alpaca client pages internally.
func (c *AlpacaClient) Download(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, onProgress OnDownloadProgress) (path string, err error) {
	progress := newDownloadProgress(c.config, ticker, startDate, endDate, onProgress)

	return writeBars(c.writer, ticker, func(emit func(types.Bar) error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		//nolint:exhaustruct // third-party struct with many optional fields
		bars, err := c.apiClient.GetBars(ticker, marketdata.GetBarsRequest{
			TimeFrame:  marketdata.OneDay,
			Adjustment: marketdata.All,
			Start:      startDate,
			// the bars endpoint treats End as exclusive
			End: endDate.Add(24 * time.Hour),
		})
		if err != nil {
			return errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to fetch bars from Alpaca", err)
		}

		processedCount := 0

		for _, b := range bars {
			if !inWindow(b.Timestamp, startDate, endDate) {
				continue
			}

			bar := types.Bar{
				Time:   b.Timestamp.UTC(),
				Open:   b.Open,
				High:   b.High,
				Low:    b.Low,
				Close:  b.Close,
				Volume: int64(b.Volume),
			}

			if err := emit(bar); err != nil {
				return err
			}

			processedCount++

			progress.update(bar.Time)
		}

		progress.finish()
		c.log.Info("Finished downloading bars",
			zap.String("provider", string(ProviderAlpaca)),
			zap.String("ticker", ticker),
			zap.Int("bars", processedCount),
		)

		return nil
	})
}

// Fundamentals is not offered by the Alpaca market data API.
func (c *AlpacaClient) Fundamentals(_ context.Context, ticker string) (types.Fundamentals, error) {
	return types.Fundamentals{}, unsupportedFundamentals(ProviderAlpaca, ticker)
}
