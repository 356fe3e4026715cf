package main

import (
	"testing"

	"github.com/rxtech-lab/argo-research/pkg/marketdata"
	"github.com/stretchr/testify/suite"
)

type ProviderTestSuite struct {
	suite.Suite
}

func TestProviderSuite(t *testing.T) {
	suite.Run(t, new(ProviderTestSuite))
}

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func (suite *ProviderTestSuite) TestClientConfigWithoutCredentials() {
	for _, name := range []string{"binance", "yahoo"} {
		config, err := clientConfig(name, "data", env(nil))
		suite.NoError(err)
		suite.Equal(marketdata.ProviderType(name), config.ProviderType)
		suite.Equal("data", config.DataPath)
		suite.Empty(config.APIKey)
	}
}

func (suite *ProviderTestSuite) TestClientConfigReadsCredentials() {
	config, err := clientConfig("alpaca", "data", env(map[string]string{
		"ALPACA_API_KEY":    "key",
		"ALPACA_API_SECRET": "secret",
	}))
	suite.NoError(err)
	suite.Equal("key", config.APIKey)
	suite.Equal("secret", config.APISecret)

	config, err = clientConfig("alphavantage", "data", env(map[string]string{"ALPHA_VANTAGE_API_KEY": "av"}))
	suite.NoError(err)
	suite.Equal("av", config.APIKey)
}

func (suite *ProviderTestSuite) TestClientConfigMissingCredentials() {
	_, err := clientConfig("polygon", "data", env(nil))
	suite.Error(err)
	suite.Contains(err.Error(), "POLYGON_API_KEY")

	_, err = clientConfig("alpaca", "data", env(map[string]string{"ALPACA_API_KEY": "key"}))
	suite.Error(err)
	suite.Contains(err.Error(), "ALPACA_API_SECRET")
}

func (suite *ProviderTestSuite) TestClientConfigUnknownProvider() {
	_, err := clientConfig("bloomberg", "data", env(nil))
	suite.Error(err)
	suite.Contains(err.Error(), "unsupported provider")
}
