package marketdata

import (
	"fmt"
	"sort"

	"github.com/rxtech-lab/argo-research/internal/strategy"
)

// ProviderInfo contains metadata about a market data provider.
type ProviderInfo struct {
	Name                 string `json:"name"`
	DisplayName          string `json:"displayName"`
	Description          string `json:"description"`
	RequiresAuth         bool   `json:"requiresAuth"`
	SupportsFundamentals bool   `json:"supportsFundamentals"`
}

// providerRegistry holds metadata about all supported providers.
var providerRegistry = map[ProviderType]ProviderInfo{
	ProviderPolygon: {
		Name:                 string(ProviderPolygon),
		DisplayName:          "Polygon.io",
		Description:          "US stock market data provider with historical daily aggregates",
		RequiresAuth:         true,
		SupportsFundamentals: true,
	},
	ProviderBinance: {
		Name:                 string(ProviderBinance),
		DisplayName:          "Binance",
		Description:          "Cryptocurrency exchange with daily klines for crypto trading pairs",
		RequiresAuth:         false,
		SupportsFundamentals: false,
	},
	ProviderAlpaca: {
		Name:                 string(ProviderAlpaca),
		DisplayName:          "Alpaca",
		Description:          "US equities market data API with adjusted daily bars",
		RequiresAuth:         true,
		SupportsFundamentals: false,
	},
	ProviderAlphaVantage: {
		Name:                 string(ProviderAlphaVantage),
		DisplayName:          "Alpha Vantage",
		Description:          "Daily time series and company overview fundamentals",
		RequiresAuth:         true,
		SupportsFundamentals: true,
	},
	ProviderYahoo: {
		Name:                 string(ProviderYahoo),
		DisplayName:          "Yahoo Finance",
		Description:          "Daily chart data with adjusted close prices",
		RequiresAuth:         false,
		SupportsFundamentals: false,
	},
}

// GetSupportedProviders returns the names of all supported providers in alphabetical order.
func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	sort.Strings(providers)

	return providers
}

// GetProviderInfo returns metadata for a specific provider.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[ProviderType(providerName)]
	if !exists {
		return ProviderInfo{}, fmt.Errorf("unsupported provider: %s", providerName)
	}

	return info, nil
}

// GetDownloadParamsSchema returns the JSON schema of DownloadParams.
func GetDownloadParamsSchema() (string, error) {
	//nolint:exhaustruct // Empty struct is intentional for schema generation
	return strategy.ToJSONSchema(DownloadParams{})
}
