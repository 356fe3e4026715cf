package main

import (
	"fmt"
	"os"

	"github.com/rxtech-lab/argo-research/pkg/marketdata"
)

// credentials maps each provider to the environment variables holding its API key and secret.
var credentials = map[marketdata.ProviderType][2]string{
	marketdata.ProviderPolygon:      {"POLYGON_API_KEY", ""},
	marketdata.ProviderAlphaVantage: {"ALPHA_VANTAGE_API_KEY", ""},
	marketdata.ProviderAlpaca:       {"ALPACA_API_KEY", "ALPACA_API_SECRET"},
}

// clientConfig builds the market data client configuration for providerName,
// reading credentials from the environment.
func clientConfig(providerName string, dataPath string, getenv func(string) string) (marketdata.ClientConfig, error) {
	if _, err := marketdata.GetProviderInfo(providerName); err != nil {
		return marketdata.ClientConfig{}, fmt.Errorf("%w (supported: %v)", err, marketdata.GetSupportedProviders())
	}

	providerType := marketdata.ProviderType(providerName)
	config := marketdata.ClientConfig{
		ProviderType: providerType,
		DataPath:     dataPath,
	}

	if env, ok := credentials[providerType]; ok {
		config.APIKey = getenv(env[0])
		if config.APIKey == "" {
			return marketdata.ClientConfig{}, fmt.Errorf("%s is required for the %s provider", env[0], providerName)
		}

		if env[1] != "" {
			config.APISecret = getenv(env[1])
			if config.APISecret == "" {
				return marketdata.ClientConfig{}, fmt.Errorf("%s is required for the %s provider", env[1], providerName)
			}
		}
	}

	return config, nil
}

func clientConfigFromEnv(providerName string, dataPath string) (marketdata.ClientConfig, error) {
	return clientConfig(providerName, dataPath, os.Getenv)
}
