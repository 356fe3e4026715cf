package provider

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/rxtech-lab/argo-research/pkg/marketdata/writer"
	"go.uber.org/zap"
)

const (
	yahooBaseURL   = "https://query1.finance.yahoo.com"
	yahooUserAgent = "Mozilla/5.0 (compatible; argo-research)"
)

type yahooChartResponse struct {
	Chart struct {
		Result []yahooChartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooChartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
		AdjClose []struct {
			AdjClose []*float64 `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
}

type YahooClient struct {
	http   *resty.Client
	writer writer.MarketDataWriter
	config Config
	log    *logger.Logger
}

func NewYahooClient(config Config) (Provider, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = yahooBaseURL
	}

	return &YahooClient{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("User-Agent", yahooUserAgent).
			SetTimeout(30 * time.Second),
		writer: nil,
		config: config,
		log:    config.logger(),
	}, nil
}

func (c *YahooClient) ConfigWriter(w writer.MarketDataWriter) {
	c.writer = w
}

// Download reads the daily chart of ticker. endDate is exclusive and the
// adjusted close replaces the raw close.
func (c *YahooClient) Download(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, onProgress OnDownloadProgress) (path string, err error) {
	progress := newDownloadProgress(c.config, ticker, startDate, endDate, onProgress)

	return writeBars(c.writer, ticker, func(emit func(types.Bar) error) error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetPathParam("ticker", ticker).
			SetQueryParams(map[string]string{
				"period1":              strconv.FormatInt(startDate.Unix(), 10),
				"period2":              strconv.FormatInt(endDate.Unix(), 10),
				"interval":             "1d",
				"includeAdjustedClose": "true",
			}).
			Get("/v8/finance/chart/{ticker}")
		if err != nil {
			return errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "yahoo chart request failed", err)
		}

		var chart yahooChartResponse
		if err := json.Unmarshal(resp.Body(), &chart); err != nil {
			return errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to decode yahoo chart response", err)
		}

		if chart.Chart.Error != nil {
			return errors.Newf(errors.ErrCodeMarketDataFetchFailed, "yahoo: %s", chart.Chart.Error.Description)
		}

		if resp.IsError() {
			return errors.Newf(errors.ErrCodeMarketDataFetchFailed, "yahoo returned status %d", resp.StatusCode())
		}

		if len(chart.Chart.Result) == 0 {
			return errors.Newf(errors.ErrCodeNoDataFound, "yahoo returned no chart for %s", ticker)
		}

		bars := parseYahooChart(chart.Chart.Result[0], startDate, endDate)
		for _, bar := range bars {
			if err := emit(bar); err != nil {
				return err
			}

			progress.update(bar.Time)
		}

		progress.finish()
		c.log.Info("Finished downloading bars",
			zap.String("provider", string(ProviderYahoo)),
			zap.String("ticker", ticker),
			zap.Int("bars", len(bars)),
		)

		return nil
	})
}

// Fundamentals is not supported: quoteSummary requires a session cookie and crumb token
// that the chart endpoint does not.
func (c *YahooClient) Fundamentals(_ context.Context, ticker string) (types.Fundamentals, error) {
	return types.Fundamentals{}, unsupportedFundamentals(ProviderYahoo, ticker)
}

// parseYahooChart turns the columnar chart payload into bars dated at midnight UTC.
// Rows with a missing price are skipped, as are rows outside [startDate, endDate).
func parseYahooChart(result yahooChartResult, startDate time.Time, endDate time.Time) []types.Bar {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}

	quote := result.Indicators.Quote[0]

	var adjClose []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adjClose = result.Indicators.AdjClose[0].AdjClose
	}

	at := func(values []*float64, i int) (float64, bool) {
		if i >= len(values) || values[i] == nil {
			return 0, false
		}

		return *values[i], true
	}

	bars := make([]types.Bar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		day := time.Unix(ts, 0).UTC().Truncate(24 * time.Hour)
		if day.Before(startDate.UTC().Truncate(24*time.Hour)) || !day.Before(endDate) {
			continue
		}

		open, okOpen := at(quote.Open, i)
		high, okHigh := at(quote.High, i)
		low, okLow := at(quote.Low, i)

		closePrice, okClose := at(adjClose, i)
		if !okClose {
			closePrice, okClose = at(quote.Close, i)
		}

		if !okOpen || !okHigh || !okLow || !okClose {
			continue
		}

		var volume int64
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}

		bars = append(bars, types.Bar{
			Time:   day,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: volume,
		})
	}

	return bars
}
