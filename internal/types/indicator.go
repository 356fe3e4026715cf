package types

type IndicatorType string

const (
	IndicatorTypeSMA IndicatorType = "sma"
	IndicatorTypeWMA IndicatorType = "wma"
	IndicatorTypeEMA IndicatorType = "ema"
)
