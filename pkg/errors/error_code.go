package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInsufficientData     ErrorCode = 106
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeMissingColumn        ErrorCode = 120
	ErrCodeSeriesLengthMismatch ErrorCode = 121
	ErrCodeUnorderedSeries      ErrorCode = 122

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeNoDataFound           ErrorCode = 204

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301

	// Strategy errors (400-499)
	ErrCodeStrategyConfigError   ErrorCode = 401
	ErrCodeUnsupportedStrategy   ErrorCode = 403
	ErrCodeStrategyNotFound      ErrorCode = 405
	ErrCodeStrategyAlreadyExists ErrorCode = 406
	ErrCodeStrategySignalsFailed ErrorCode = 407

	// Backtest errors (600-699)
	ErrCodeBacktestInitFailed    ErrorCode = 601
	ErrCodeBacktestConfigError   ErrorCode = 602
	ErrCodeBacktestDataPathError ErrorCode = 603
	ErrCodeBacktestNoStrategies  ErrorCode = 604
	ErrCodeBacktestNoDataPaths   ErrorCode = 606
	ErrCodeBacktestNoDatasource  ErrorCode = 608

	// Market data errors (700-799)
	ErrCodeMarketDataFetchFailed   ErrorCode = 700
	ErrCodeMarketDataWriteFailed   ErrorCode = 701
	ErrCodeMarketDataParseFailed   ErrorCode = 702
	ErrCodeInvalidProvider         ErrorCode = 704
	ErrCodeFundamentalsUnsupported ErrorCode = 705
)
