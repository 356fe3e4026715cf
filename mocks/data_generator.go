package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-research/internal/types"
)

// DataGenerator generates daily price series for testing.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how bars are generated.
type GeneratorConfig struct {
	// Symbol is the instrument symbol (e.g., "AAPL", "SPY")
	Symbol string
	// StartTime is the date of the first bar
	StartTime time.Time
	// Count is the number of bars to generate
	Count int
	// SkipWeekends leaves Saturdays and Sundays out of the index
	SkipWeekends bool
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% typical daily volatility)
	Volatility float64
	// Trend is the total drift over the series (-0.5 to 0.5 for bearish to bullish)
	Trend float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultConfig returns a sensible default configuration: one trading year of daily bars.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:         "TEST",
		StartTime:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Count:          252,
		SkipWeekends:   true,
		InitialPrice:   100.0,
		Volatility:     0.015, // 1.5% per day
		Trend:          0.0,   // neutral
		VolumeBase:     1_000_000,
		VolumeVariance: 0.3,
	}
}

// Generate creates a daily price series based on the configuration.
// Closes follow a geometric Brownian motion model.
func (g *DataGenerator) Generate(config GeneratorConfig) types.PriceSeries {
	bars := make([]types.Bar, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime

	for i := 0; i < config.Count; i++ {
		if config.SkipWeekends {
			currentTime = nextWeekday(currentTime)
		}

		open := currentPrice

		// Using Box-Muller transform for normal distribution
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		priceChange := config.Volatility * z
		drift := config.Trend / float64(config.Count) // Distribute trend across bars

		close := open * (1 + priceChange + drift)
		if close <= 0 {
			close = open * 0.99 // Prevent negative prices
		}

		highExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)
		lowExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)

		high := math.Max(open, close) + highExtension
		low := math.Min(open, close) - lowExtension
		if low <= 0 {
			low = math.Min(open, close) * 0.99
		}

		volumeVariation := 1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance
		volume := config.VolumeBase * volumeVariation
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		bars[i] = types.Bar{
			Time:   currentTime,
			Open:   roundToDecimals(open, 4),
			High:   roundToDecimals(high, 4),
			Low:    roundToDecimals(low, 4),
			Close:  roundToDecimals(close, 4),
			Volume: int64(volume),
		}

		currentPrice = close
		currentTime = currentTime.AddDate(0, 0, 1)
	}

	return types.PriceSeries{
		Symbol: config.Symbol,
		Bars:   bars,
	}
}

// GenerateCloses builds a series whose bars carry only the given closes, one per calendar day.
func GenerateCloses(symbol string, closes ...float64) types.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]types.Bar, len(closes))

	for i, c := range closes {
		bars[i] = types.Bar{
			Time:  start.AddDate(0, 0, i),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		}
	}

	return types.PriceSeries{
		Symbol: symbol,
		Bars:   bars,
	}
}

// GenerateYear is a convenience function that generates one trading year
// of daily bars with a fixed seed.
func GenerateYear(symbol string) types.PriceSeries {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Symbol = symbol

	return gen.Generate(config)
}

func nextWeekday(t time.Time) time.Time {
	for t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		t = t.AddDate(0, 0, 1)
	}

	return t
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
