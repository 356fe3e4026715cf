package provider

import (
	"context"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/rxtech-lab/argo-research/pkg/marketdata/writer"
	"go.uber.org/zap"
)

// PolygonAggsIterator is the subset of the polygon aggregate iterator used by the client.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient is the subset of the polygon REST client used by PolygonClient.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
	GetTickerDetails(ctx context.Context, params *models.GetTickerDetailsParams, options ...models.RequestOption) (*models.GetTickerDetailsResponse, error)
}

type polygonAPIAdapter struct {
	client *polygon.Client
}

func (a *polygonAPIAdapter) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return a.client.ListAggs(ctx, params, options...)
}

func (a *polygonAPIAdapter) GetTickerDetails(ctx context.Context, params *models.GetTickerDetailsParams, options ...models.RequestOption) (*models.GetTickerDetailsResponse, error) {
	return a.client.GetTickerDetails(ctx, params, options...)
}

type PolygonClient struct {
	apiClient PolygonAPIClient
	writer    writer.MarketDataWriter
	config    Config
	log       *logger.Logger
}

func NewPolygonClient(config Config) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "apiKey is required")
	}

	return NewPolygonClientWithAPI(&polygonAPIAdapter{client: polygon.New(config.APIKey)}, config), nil
}

// NewPolygonClientWithAPI creates a PolygonClient on top of the given API client.
func NewPolygonClientWithAPI(apiClient PolygonAPIClient, config Config) *PolygonClient {
	return &PolygonClient{
		apiClient: apiClient,
		writer:    nil,
		config:    config,
		log:       config.logger(),
	}
}

func (c *PolygonClient) ConfigWriter(w writer.MarketDataWriter) {
	c.writer = w
}

// Download pages through the daily aggregates of ticker and writes them as bars.
func (c *PolygonClient) Download(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, onProgress OnDownloadProgress) (path string, err error) {
	progress := newDownloadProgress(c.config, ticker, startDate, endDate, onProgress)

	return writeBars(c.writer, ticker, func(emit func(types.Bar) error) error {
		//nolint:exhaustruct // third-party struct with many optional fields
		params := models.ListAggsParams{
			Ticker:     ticker,
			Multiplier: 1,
			Timespan:   models.Day,
			From:       models.Millis(startDate),
			To:         models.Millis(endDate),
		}.WithLimit(50000)

		iter := c.apiClient.ListAggs(ctx, params)

		processedCount := 0

		for iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			agg := iter.Item()
			bar := types.Bar{
				Time:   time.Time(agg.Timestamp).UTC(),
				Open:   agg.Open,
				High:   agg.High,
				Low:    agg.Low,
				Close:  agg.Close,
				Volume: int64(agg.Volume),
			}

			if err := emit(bar); err != nil {
				return err
			}

			processedCount++

			progress.update(bar.Time)
		}

		if iter.Err() != nil {
			return errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "error iterating polygon aggregates", iter.Err())
		}

		progress.finish()
		c.log.Info("Finished downloading bars",
			zap.String("provider", string(ProviderPolygon)),
			zap.String("ticker", ticker),
			zap.Int("bars", processedCount),
		)

		return nil
	})
}

// Fundamentals reports the market capitalization from the ticker details endpoint.
// Polygon's reference data carries no earnings figures, so the other metrics stay zero.
func (c *PolygonClient) Fundamentals(ctx context.Context, ticker string) (types.Fundamentals, error) {
	//nolint:exhaustruct // third-party struct with many optional fields
	resp, err := c.apiClient.GetTickerDetails(ctx, &models.GetTickerDetailsParams{Ticker: ticker})
	if err != nil {
		return types.Fundamentals{}, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to fetch polygon ticker details", err)
	}

	return types.Fundamentals{
		Symbol:        ticker,
		PERatio:       0,
		MarketCap:     resp.Results.MarketCap,
		DividendYield: 0,
		EPS:           0,
		Revenue:       0,
	}, nil
}
