package types

// Fundamentals holds the headline fundamental metrics of a ticker.
// Metrics a provider does not report are left at zero.
type Fundamentals struct {
	Symbol        string  `yaml:"symbol" json:"symbol"`
	PERatio       float64 `yaml:"pe_ratio" json:"pe_ratio"`
	MarketCap     float64 `yaml:"market_cap" json:"market_cap"`
	DividendYield float64 `yaml:"dividend_yield" json:"dividend_yield"`
	EPS           float64 `yaml:"eps" json:"eps"`
	Revenue       float64 `yaml:"revenue" json:"revenue"`
}
