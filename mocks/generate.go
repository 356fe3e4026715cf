package mocks

//go:generate mockgen -destination=./mock_strategy.go -package=mocks github.com/rxtech-lab/argo-research/internal/strategy Strategy
//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/rxtech-lab/argo-research/internal/backtest/engine/engine_v1/datasource DataSource
//go:generate mockgen -destination=./mock_market_data_writer.go -package=mocks github.com/rxtech-lab/argo-research/pkg/marketdata/writer MarketDataWriter
//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/argo-research/pkg/marketdata/provider Provider
