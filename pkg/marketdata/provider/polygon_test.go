package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	argoErrors "github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// mockPolygonAPIClient implements PolygonAPIClient for testing.
type mockPolygonAPIClient struct {
	iterator   PolygonAggsIterator
	params     *models.ListAggsParams
	details    *models.GetTickerDetailsResponse
	detailsErr error
}

func (m *mockPolygonAPIClient) ListAggs(_ context.Context, params *models.ListAggsParams, _ ...models.RequestOption) PolygonAggsIterator {
	m.params = params

	return m.iterator
}

func (m *mockPolygonAPIClient) GetTickerDetails(_ context.Context, _ *models.GetTickerDetailsParams, _ ...models.RequestOption) (*models.GetTickerDetailsResponse, error) {
	return m.details, m.detailsErr
}

// mockPolygonIterator implements PolygonAggsIterator for testing.
type mockPolygonIterator struct {
	aggs  []models.Agg
	index int
	err   error
}

func (m *mockPolygonIterator) Next() bool {
	if m.index < len(m.aggs) {
		m.index++

		return true
	}

	return false
}

func (m *mockPolygonIterator) Item() models.Agg {
	if m.index > 0 && m.index <= len(m.aggs) {
		return m.aggs[m.index-1]
	}

	return models.Agg{}
}

func (m *mockPolygonIterator) Err() error {
	return m.err
}

type PolygonClientTestSuite struct {
	suite.Suite
}

func TestPolygonClientSuite(t *testing.T) {
	suite.Run(t, new(PolygonClientTestSuite))
}

func (suite *PolygonClientTestSuite) dailyAggs() []models.Agg {
	return []models.Agg{
		{
			Timestamp: models.Millis(time.Date(2024, 1, 2, 5, 0, 0, 0, time.UTC)),
			Open:      100.0,
			High:      101.0,
			Low:       99.0,
			Close:     100.5,
			Volume:    1000000,
		},
		{
			Timestamp: models.Millis(time.Date(2024, 1, 3, 5, 0, 0, 0, time.UTC)),
			Open:      100.5,
			High:      102.0,
			Low:       100.0,
			Close:     101.5,
			Volume:    1500000,
		},
	}
}

func (suite *PolygonClientTestSuite) TestNewPolygonClient() {
	client, err := NewPolygonClient(testConfig())
	suite.NoError(err)

	polygonClient, ok := client.(*PolygonClient)
	suite.Require().True(ok)
	suite.NotNil(polygonClient.apiClient)
	suite.Nil(polygonClient.writer)
}

func (suite *PolygonClientTestSuite) TestNewPolygonClientEmptyApiKey() {
	client, err := NewPolygonClient(Config{})
	suite.Error(err)
	suite.Nil(client)
	suite.Contains(err.Error(), "apiKey is required")
}

func (suite *PolygonClientTestSuite) TestDownloadWithoutWriter() {
	client := NewPolygonClientWithAPI(&mockPolygonAPIClient{iterator: &mockPolygonIterator{}}, testConfig())

	_, err := client.Download(context.Background(), "SPY",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), nil)
	suite.Error(err)
	suite.Contains(err.Error(), "no writer configured")
}

func (suite *PolygonClientTestSuite) TestDownloadSuccess() {
	mockAPI := &mockPolygonAPIClient{iterator: &mockPolygonIterator{aggs: suite.dailyAggs()}}
	mockW := &mockWriter{outputPath: "/tmp/test.parquet"}

	client := NewPolygonClientWithAPI(mockAPI, testConfig())
	client.ConfigWriter(mockW)

	path, err := client.Download(context.Background(), "SPY",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), nil)
	suite.NoError(err)
	suite.Equal("/tmp/test.parquet", path)
	suite.Require().Len(mockW.writtenData, 2)
	suite.Equal([]string{"SPY", "SPY"}, mockW.symbols)

	suite.Require().NotNil(mockAPI.params)
	suite.Equal(models.Day, mockAPI.params.Timespan)
	suite.Equal(1, mockAPI.params.Multiplier)

	first := mockW.writtenData[0]
	suite.Equal(time.Date(2024, 1, 2, 5, 0, 0, 0, time.UTC), first.Time)
	suite.InDelta(100.0, first.Open, 0.01)
	suite.InDelta(101.0, first.High, 0.01)
	suite.InDelta(99.0, first.Low, 0.01)
	suite.InDelta(100.5, first.Close, 0.01)
	suite.Equal(int64(1000000), first.Volume)
}

func (suite *PolygonClientTestSuite) TestDownloadEmptyAggs() {
	mockW := &mockWriter{outputPath: "/tmp/empty.parquet"}

	client := NewPolygonClientWithAPI(&mockPolygonAPIClient{iterator: &mockPolygonIterator{}}, testConfig())
	client.ConfigWriter(mockW)

	path, err := client.Download(context.Background(), "SPY",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), nil)
	suite.NoError(err)
	suite.Equal("/tmp/empty.parquet", path)
	suite.Empty(mockW.writtenData)
}

func (suite *PolygonClientTestSuite) TestDownloadIteratorError() {
	mockW := &mockWriter{outputPath: "/tmp/test.parquet"}

	client := NewPolygonClientWithAPI(&mockPolygonAPIClient{
		iterator: &mockPolygonIterator{err: errors.New("API rate limit exceeded")},
	}, testConfig())
	client.ConfigWriter(mockW)

	_, err := client.Download(context.Background(), "SPY",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), nil)
	suite.Error(err)
	suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeMarketDataFetchFailed))
	suite.Contains(err.Error(), "API rate limit exceeded")
	suite.Equal(0, mockW.finalizeCallCount)
	suite.Equal(1, mockW.closeCallCount)
}

func (suite *PolygonClientTestSuite) TestDownloadCancelled() {
	mockW := &mockWriter{outputPath: "/tmp/test.parquet"}

	client := NewPolygonClientWithAPI(&mockPolygonAPIClient{iterator: &mockPolygonIterator{aggs: suite.dailyAggs()}}, testConfig())
	client.ConfigWriter(mockW)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Download(ctx, "SPY",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), nil)
	suite.ErrorIs(err, context.Canceled)
	suite.Empty(mockW.writtenData)
}

func (suite *PolygonClientTestSuite) TestFundamentals() {
	//nolint:exhaustruct // third-party struct with many optional fields
	details := &models.GetTickerDetailsResponse{}
	details.Results.MarketCap = 2.5e12

	client := NewPolygonClientWithAPI(&mockPolygonAPIClient{details: details}, testConfig())

	fundamentals, err := client.Fundamentals(context.Background(), "AAPL")
	suite.NoError(err)
	suite.Equal("AAPL", fundamentals.Symbol)
	suite.InDelta(2.5e12, fundamentals.MarketCap, 1)
	suite.Zero(fundamentals.PERatio)
}

func (suite *PolygonClientTestSuite) TestFundamentalsError() {
	client := NewPolygonClientWithAPI(&mockPolygonAPIClient{detailsErr: errors.New("not found")}, testConfig())

	_, err := client.Fundamentals(context.Background(), "NOPE")
	suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeMarketDataFetchFailed))
}
