package provider

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/rxtech-lab/argo-research/pkg/marketdata/writer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const alphaVantageBaseURL = "https://www.alphavantage.co"

type alphaVantageDailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

type alphaVantageDailyResponse struct {
	TimeSeries   map[string]alphaVantageDailyBar `json:"Time Series (Daily)"`
	ErrorMessage string                          `json:"Error Message"`
	Note         string                          `json:"Note"`
	Information  string                          `json:"Information"`
}

type alphaVantageOverview struct {
	Symbol               string `json:"Symbol"`
	PERatio              string `json:"PERatio"`
	MarketCapitalization string `json:"MarketCapitalization"`
	DividendYield        string `json:"DividendYield"`
	EPS                  string `json:"EPS"`
	RevenueTTM           string `json:"RevenueTTM"`
	ErrorMessage         string `json:"Error Message"`
	Note                 string `json:"Note"`
	Information          string `json:"Information"`
}

type AlphaVantageClient struct {
	http   *resty.Client
	writer writer.MarketDataWriter
	config Config
	log    *logger.Logger
}

func NewAlphaVantageClient(config Config) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "apiKey is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = alphaVantageBaseURL
	}

	return &AlphaVantageClient{
		http:   resty.New().SetBaseURL(baseURL).SetTimeout(30 * time.Second),
		writer: nil,
		config: config,
		log:    config.logger(),
	}, nil
}

func (c *AlphaVantageClient) ConfigWriter(w writer.MarketDataWriter) {
	c.writer = w
}

// query calls the function endpoint and decodes the body into out.
func (c *AlphaVantageClient) query(ctx context.Context, params map[string]string, out any) error {
	params["apikey"] = c.config.APIKey

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/query")
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "alpha vantage request failed", err)
	}

	if resp.IsError() {
		return errors.Newf(errors.ErrCodeMarketDataFetchFailed, "alpha vantage returned status %d", resp.StatusCode())
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to decode alpha vantage response", err)
	}

	return nil
}

// Download fetches the full TIME_SERIES_DAILY history, keeps the bars in
// [startDate, endDate] and writes them oldest first.
func (c *AlphaVantageClient) Download(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, onProgress OnDownloadProgress) (path string, err error) {
	progress := newDownloadProgress(c.config, ticker, startDate, endDate, onProgress)

	return writeBars(c.writer, ticker, func(emit func(types.Bar) error) error {
		var daily alphaVantageDailyResponse

		err := c.query(ctx, map[string]string{
			"function":   "TIME_SERIES_DAILY",
			"symbol":     ticker,
			"outputsize": "full",
		}, &daily)
		if err != nil {
			return err
		}

		if msg := firstNonEmpty(daily.ErrorMessage, daily.Note, daily.Information); msg != "" && daily.TimeSeries == nil {
			return errors.Newf(errors.ErrCodeMarketDataFetchFailed, "alpha vantage: %s", msg)
		}

		bars, err := parseAlphaVantageSeries(daily.TimeSeries, startDate, endDate)
		if err != nil {
			return err
		}

		for _, bar := range bars {
			if err := emit(bar); err != nil {
				return err
			}

			progress.update(bar.Time)
		}

		progress.finish()
		c.log.Info("Finished downloading bars",
			zap.String("provider", string(ProviderAlphaVantage)),
			zap.String("ticker", ticker),
			zap.Int("bars", len(bars)),
		)

		return nil
	})
}

// Fundamentals reads the OVERVIEW endpoint. Missing or "None" values become 0.
func (c *AlphaVantageClient) Fundamentals(ctx context.Context, ticker string) (types.Fundamentals, error) {
	var overview alphaVantageOverview

	err := c.query(ctx, map[string]string{
		"function": "OVERVIEW",
		"symbol":   ticker,
	}, &overview)
	if err != nil {
		return types.Fundamentals{}, err
	}

	if msg := firstNonEmpty(overview.ErrorMessage, overview.Note, overview.Information); msg != "" {
		return types.Fundamentals{}, errors.Newf(errors.ErrCodeMarketDataFetchFailed, "alpha vantage: %s", msg)
	}

	return types.Fundamentals{
		Symbol:        ticker,
		PERatio:       decimalOrZero(overview.PERatio),
		MarketCap:     decimalOrZero(overview.MarketCapitalization),
		DividendYield: decimalOrZero(overview.DividendYield),
		EPS:           decimalOrZero(overview.EPS),
		Revenue:       decimalOrZero(overview.RevenueTTM),
	}, nil
}

func parseAlphaVantageSeries(series map[string]alphaVantageDailyBar, startDate time.Time, endDate time.Time) ([]types.Bar, error) {
	bars := make([]types.Bar, 0, len(series))

	for date, raw := range series {
		t, err := time.Parse(time.DateOnly, date)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid date %q", date)
		}

		if !inWindow(t, startDate, endDate) {
			continue
		}

		fields := [5]decimal.Decimal{}

		for i, value := range []string{raw.Open, raw.High, raw.Low, raw.Close, raw.Volume} {
			d, err := decimal.NewFromString(value)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid value %q on %s", value, date)
			}

			fields[i] = d
		}

		bars = append(bars, types.Bar{
			Time:   t,
			Open:   fields[0].InexactFloat64(),
			High:   fields[1].InexactFloat64(),
			Low:    fields[2].InexactFloat64(),
			Close:  fields[3].InexactFloat64(),
			Volume: fields[4].IntPart(),
		})
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Time.Before(bars[j].Time)
	})

	return bars, nil
}

func decimalOrZero(value string) float64 {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0
	}

	return d.InexactFloat64()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
