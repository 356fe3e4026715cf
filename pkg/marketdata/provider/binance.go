package provider

import (
	"context"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/rxtech-lab/argo-research/pkg/marketdata/writer"
	"go.uber.org/zap"
)

// binanceKlinesLimit is the largest page the klines endpoint returns.
const binanceKlinesLimit = 1000

type BinanceClient struct {
	client *binance.Client
	writer writer.MarketDataWriter
	config Config
	log    *logger.Logger
}

func NewBinanceClient(config Config) (Provider, error) {
	client := binance.NewClient(config.APIKey, config.APISecret)
	if config.BaseURL != "" {
		client.BaseURL = config.BaseURL
	}

	return &BinanceClient{
		client: client,
		writer: nil,
		config: config,
		log:    config.logger(),
	}, nil
}

func (c *BinanceClient) ConfigWriter(w writer.MarketDataWriter) {
	c.writer = w
}

// Download downloads the daily klines for the given ticker and date range from Binance.
// It converts the binance kline format to bars and writes them using the configured writer.
func (c *BinanceClient) Download(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, onProgress OnDownloadProgress) (path string, err error) {
	progress := newDownloadProgress(c.config, ticker, startDate, endDate, onProgress)

	return writeBars(c.writer, ticker, func(emit func(types.Bar) error) error {
		// Binance API uses milliseconds for timestamps
		currentStartTime := startDate.UnixMilli()
		endTimeMillis := endDate.UnixMilli()
		processedCount := 0

		for {
			klines, err := c.client.NewKlinesService().
				Symbol(ticker).
				Interval("1d").
				StartTime(currentStartTime).
				EndTime(endTimeMillis).
				Limit(binanceKlinesLimit).
				Do(ctx)
			if err != nil {
				return errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to fetch klines from Binance", err)
			}

			for _, k := range klines {
				bar, err := klineToBar(k)
				if err != nil {
					return err
				}

				if err := emit(bar); err != nil {
					return err
				}

				processedCount++

				progress.update(bar.Time)
			}

			// last page
			if len(klines) < binanceKlinesLimit {
				break
			}

			// Use the close time of the last kline + 1ms to avoid duplicates
			currentStartTime = klines[len(klines)-1].CloseTime + 1
			if currentStartTime >= endTimeMillis {
				break
			}
		}

		progress.finish()
		c.log.Info("Finished downloading bars",
			zap.String("provider", string(ProviderBinance)),
			zap.String("ticker", ticker),
			zap.Int("bars", processedCount),
		)

		return nil
	})
}

// Fundamentals is not available for crypto pairs.
func (c *BinanceClient) Fundamentals(_ context.Context, ticker string) (types.Fundamentals, error) {
	return types.Fundamentals{}, unsupportedFundamentals(ProviderBinance, ticker)
}

// klineToBar converts a Binance kline, whose prices are decimal strings, to a bar.
func klineToBar(k *binance.Kline) (types.Bar, error) {
	values := make([]float64, 0, 5)

	for _, field := range []string{k.Open, k.High, k.Low, k.Close, k.Volume} {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return types.Bar{}, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid kline value %q", field)
		}

		values = append(values, v)
	}

	return types.Bar{
		Time:   time.UnixMilli(k.OpenTime).UTC(),
		Open:   values[0],
		High:   values[1],
		Low:    values[2],
		Close:  values[3],
		Volume: int64(values[4]),
	}, nil
}
