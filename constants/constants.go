package constants

const (
	LogPrefixFmt = "%-17s "

	//
	// DefaultSymbol is the trading pair that market data operations fall back to when the caller
	// does not specify one.
	//
	DefaultSymbol = "BTCUSDT"

	//
	// DefaultQuoteSuffix is the quote asset that ticker exports are filtered by unless configured
	// otherwise.
	//
	DefaultQuoteSuffix = "USDT"
)
