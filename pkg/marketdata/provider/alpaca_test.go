package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	argoErrors "github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type fakeAlpacaAPI struct {
	bars    []marketdata.Bar
	err     error
	symbol  string
	request marketdata.GetBarsRequest
}

func (f *fakeAlpacaAPI) GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error) {
	f.symbol = symbol
	f.request = req

	return f.bars, f.err
}

type AlpacaClientTestSuite struct {
	suite.Suite
}

func TestAlpacaClientSuite(t *testing.T) {
	suite.Run(t, new(AlpacaClientTestSuite))
}

func (suite *AlpacaClientTestSuite) TestDownload() {
	api := &fakeAlpacaAPI{
		bars: []marketdata.Bar{
			{Timestamp: time.Date(2024, 1, 2, 5, 0, 0, 0, time.UTC), Open: 187.15, High: 188.44, Low: 183.89, Close: 185.64, Volume: 82488700},
			{Timestamp: time.Date(2024, 1, 3, 5, 0, 0, 0, time.UTC), Open: 184.22, High: 185.88, Low: 183.43, Close: 184.25, Volume: 58414500},
			{Timestamp: time.Date(2024, 1, 6, 5, 0, 0, 0, time.UTC), Open: 1, High: 1, Low: 1, Close: 1, Volume: 1},
		},
	}

	mockW := &mockWriter{outputPath: "/tmp/aapl.parquet"}
	client := NewAlpacaClientWithAPI(api, testConfig())
	client.ConfigWriter(mockW)

	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	path, err := client.Download(context.Background(), "AAPL", start, end, nil)
	suite.Require().NoError(err)
	suite.Equal("/tmp/aapl.parquet", path)

	suite.Equal("AAPL", api.symbol)
	suite.Equal(marketdata.OneDay, api.request.TimeFrame)
	suite.Equal(marketdata.All, api.request.Adjustment)
	suite.Equal(start, api.request.Start)
	suite.Equal(end.Add(24*time.Hour), api.request.End)

	// the bar on the 6th is outside the window
	suite.Require().Len(mockW.writtenData, 2)
	suite.InDelta(185.64, mockW.writtenData[0].Close, 1e-9)
	suite.Equal(int64(82488700), mockW.writtenData[0].Volume)
}

func (suite *AlpacaClientTestSuite) TestDownloadError() {
	mockW := &mockWriter{outputPath: "/tmp/aapl.parquet"}
	client := NewAlpacaClientWithAPI(&fakeAlpacaAPI{err: errors.New("forbidden")}, testConfig())
	client.ConfigWriter(mockW)

	_, err := client.Download(context.Background(), "AAPL",
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), nil)
	suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeMarketDataFetchFailed))
	suite.Empty(mockW.writtenData)
}

func (suite *AlpacaClientTestSuite) TestNewAlpacaClientRequiresSecret() {
	config := testConfig()
	config.APISecret = ""

	_, err := NewAlpacaClient(config)
	suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeMissingParameter))
}
