package market

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"

	"github.com/oscarcortez/binance-api/constants"
	"github.com/oscarcortez/binance-api/exchange"
)

const (
	Name = "≪market-data≫"
)

var (
	logger *log.Logger
)

func init() {
	//
	// Initialize the logger.
	//
	logger = log.New(log.Writer(), fmt.Sprintf(constants.LogPrefixFmt, Name), log.Ldate|log.Ltime|log.Lmsgprefix)
}

//
// Service issues read-only market data queries against the exchange and reshapes each raw
// response into a typed record. Every operation is a single synchronous call – no retries, no
// pagination. Failures from the underlying client propagate to the caller unmodified.
//
type Service struct {
	client *binance.Client
}

//
// NewService instantiates a market data service on top of the provided client.
//
func NewService(client *binance.Client) *Service {
	return &Service{
		client: client,
	}
}

//
// ServerTime represents the exchange's clock at the moment of the request.
//
type ServerTime struct {
	Timestamp int64
	Time      time.Time
	Formatted string
}

//
// ServerTime retrieves the exchange's current server time.
//
func (o *Service) ServerTime(ctx context.Context) (*ServerTime, error) {
	ms, err := o.client.NewServerTimeService().Do(ctx)
	if err != nil {
		return nil, err
	}

	t := time.UnixMilli(ms)

	return &ServerTime{
		Timestamp: ms,
		Time:      t,
		Formatted: t.Format("2006-01-02 15:04:05"),
	}, nil
}

//
// CurrentPrice retrieves the current price of the provided trading pair. An empty symbol falls
// back to the process default.
//
func (o *Service) CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if symbol == "" {
		symbol = constants.DefaultSymbol
	}

	prices, err := o.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	if len(prices) == 0 {
		return decimal.Zero, fmt.Errorf("the exchange returned no price for symbol %s", symbol)
	}

	return decimal.NewFromString(prices[0].Price)
}

//
// Ticker24h retrieves the 24-hour ticker statistics of the provided trading pair. An empty
// symbol falls back to the process default.
//
func (o *Service) Ticker24h(ctx context.Context, symbol string) (*Ticker, error) {
	if symbol == "" {
		symbol = constants.DefaultSymbol
	}

	stats, err := o.client.NewListPriceChangeStatsService().Symbol(symbol).Do(ctx)
	if err != nil {
		return nil, err
	}

	if len(stats) == 0 {
		return nil, fmt.Errorf("the exchange returned no 24h statistics for symbol %s", symbol)
	}

	return ShapeTicker(stats[0])
}

//
// Klines retrieves up to the provided limit of candlesticks of the provided interval for the
// provided trading pair. The returned sequence is chronological by open time, exactly as the
// exchange returned it.
//
func (o *Service) Klines(ctx context.Context, symbol string, interval exchange.Interval, limit int) ([]Candle, error) {
	if symbol == "" {
		symbol = constants.DefaultSymbol
	}

	klines, err := o.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval.String()).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	return ShapeCandles(klines)
}

//
// OrderBook retrieves a depth snapshot of the provided trading pair, up to the provided limit of
// price levels per side.
//
func (o *Service) OrderBook(ctx context.Context, symbol string, limit int) (*OrderBook, error) {
	if symbol == "" {
		symbol = constants.DefaultSymbol
	}

	depth, err := o.client.NewDepthService().Symbol(symbol).Limit(limit).Do(ctx)
	if err != nil {
		return nil, err
	}

	return ShapeOrderBook(depth)
}

//
// AllTickers retrieves the minimal {symbol, price} listing across every trading pair on the
// exchange.
//
func (o *Service) AllTickers(ctx context.Context) ([]SymbolPrice, error) {
	prices, err := o.client.NewListPricesService().Do(ctx)
	if err != nil {
		return nil, err
	}

	ret := make([]SymbolPrice, 0, len(prices))

	for _, price := range prices {
		amt, err := decimal.NewFromString(price.Price)
		if err != nil {
			return nil, fmt.Errorf("failed to coerce price for symbol %s (%w)", price.Symbol, err)
		}

		ret = append(ret, SymbolPrice{
			Symbol: price.Symbol,
			Price:  amt,
		})
	}

	return ret, nil
}

//
// AllTickersComplete retrieves the full 24-hour ticker snapshot across every trading pair on the
// exchange. Coercion of the snapshot is best-effort per column – a column that cannot be coerced
// is reported in the returned table's warnings and keeps its original string form, rather than
// failing the whole operation.
//
func (o *Service) AllTickersComplete(ctx context.Context) (*TickerTable, error) {
	stats, err := o.client.NewListPriceChangeStatsService().Do(ctx)
	if err != nil {
		return nil, err
	}

	return ShapeTickerTable(stats), nil
}

//
// SymbolPrice is the minimal ticker record – a trading pair and its current price.
//
type SymbolPrice struct {
	Symbol string
	Price  decimal.Decimal
}
