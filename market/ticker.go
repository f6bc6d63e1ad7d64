package market

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/logrusorgru/aurora"
	"github.com/shopspring/decimal"
)

//
// Ticker represents the shaped 24-hour statistics of a single trading pair.
//
type Ticker struct {
	Symbol        string
	LastPrice     decimal.Decimal
	PriceChange   decimal.Decimal
	ChangePercent decimal.Decimal
	High          decimal.Decimal
	Low           decimal.Decimal
	Volume        decimal.Decimal
	QuoteVolume   decimal.Decimal
}

//
// ShapeTicker coerces raw 24-hour statistics into a ticker record. Coercion here is strict – this
// shape backs a single-symbol query where a malformed field should fail loudly.
//
func ShapeTicker(stats *binance.PriceChangeStats) (*Ticker, error) {
	var err error

	parse := func(name string, raw string) decimal.Decimal {
		if err != nil {
			return decimal.Zero
		}

		amt, parseErr := decimal.NewFromString(raw)
		if parseErr != nil {
			err = fmt.Errorf("failed to coerce %s %q for symbol %s (%w)", name, raw, stats.Symbol, parseErr)
		}

		return amt
	}

	ticker := &Ticker{
		Symbol:        stats.Symbol,
		LastPrice:     parse("last price", stats.LastPrice),
		PriceChange:   parse("price change", stats.PriceChange),
		ChangePercent: parse("price change percent", stats.PriceChangePercent),
		High:          parse("high price", stats.HighPrice),
		Low:           parse("low price", stats.LowPrice),
		Volume:        parse("volume", stats.Volume),
		QuoteVolume:   parse("quote volume", stats.QuoteVolume),
	}

	if err != nil {
		return nil, err
	}

	return ticker, nil
}

//
// FullTicker represents one fully shaped row of the complete 24-hour ticker snapshot. Decimal
// fields that failed coercion hold zero – the authoritative original string form is retained and
// is what Record() emits, so a bad column survives export untouched.
//
type FullTicker struct {
	Symbol             string
	PriceChange        decimal.Decimal
	PriceChangePercent decimal.Decimal
	WeightedAvgPrice   decimal.Decimal
	PrevClosePrice     decimal.Decimal
	LastPrice          decimal.Decimal
	LastQty            decimal.Decimal
	BidPrice           decimal.Decimal
	BidQty             decimal.Decimal
	AskPrice           decimal.Decimal
	AskQty             decimal.Decimal
	OpenPrice          decimal.Decimal
	HighPrice          decimal.Decimal
	LowPrice           decimal.Decimal
	Volume             decimal.Decimal
	QuoteVolume        decimal.Decimal
	OpenTime           time.Time
	CloseTime          time.Time
	FirstTradeID       int64
	LastTradeID        int64
	TradeCount         int64

	raw *binance.PriceChangeStats
}

//
// Warning describes a single column of a single snapshot row that could not be coerced and was
// left in its original string form.
//
type Warning struct {
	Symbol string
	Column string
	Err    error
}

//
// TickerTable is a complete ticker snapshot – one shaped row per trading pair plus the coercion
// warnings accumulated while shaping it. Callers that care about partial coercion failures can
// assert on Warnings; callers that do not can ignore it.
//
type TickerTable struct {
	Rows     []FullTicker
	Warnings []Warning
}

//
// ShapeTickerTable coerces a raw full-snapshot response into a ticker table. Per-column coercion
// is best-effort: a column that fails is logged as a warning, recorded in the table's warnings,
// and left in its original string form. One bad column never invalidates the rest of the
// snapshot.
//
func ShapeTickerTable(stats []*binance.PriceChangeStats) *TickerTable {
	table := &TickerTable{
		Rows: make([]FullTicker, 0, len(stats)),
	}

	for _, row := range stats {
		parse := func(column string, raw string) decimal.Decimal {
			amt, err := decimal.NewFromString(raw)
			if err != nil {
				table.Warnings = append(table.Warnings, Warning{
					Symbol: row.Symbol,
					Column: column,
					Err:    err,
				})

				logger.Printf(
					"%s",
					aurora.Yellow(fmt.Sprintf(
						"Failed to coerce column %q for symbol %s. Keeping its original value. (Error: %s)",
						column, row.Symbol, err,
					)),
				)

				return decimal.Zero
			}

			return amt
		}

		table.Rows = append(table.Rows, FullTicker{
			Symbol:             row.Symbol,
			PriceChange:        parse("priceChange", row.PriceChange),
			PriceChangePercent: parse("priceChangePercent", row.PriceChangePercent),
			WeightedAvgPrice:   parse("weightedAvgPrice", row.WeightedAvgPrice),
			PrevClosePrice:     parse("prevClosePrice", row.PrevClosePrice),
			LastPrice:          parse("lastPrice", row.LastPrice),
			LastQty:            parse("lastQty", row.LastQty),
			BidPrice:           parse("bidPrice", row.BidPrice),
			BidQty:             parse("bidQty", row.BidQty),
			AskPrice:           parse("askPrice", row.AskPrice),
			AskQty:             parse("askQty", row.AskQty),
			OpenPrice:          parse("openPrice", row.OpenPrice),
			HighPrice:          parse("highPrice", row.HighPrice),
			LowPrice:           parse("lowPrice", row.LowPrice),
			Volume:             parse("volume", row.Volume),
			QuoteVolume:        parse("quoteVolume", row.QuoteVolume),
			OpenTime:           time.UnixMilli(row.OpenTime),
			CloseTime:          time.UnixMilli(row.CloseTime),
			FirstTradeID:       row.FristID,
			LastTradeID:        row.LastID,
			TradeCount:         row.Count,
			raw:                row,
		})
	}

	return table
}

//
// FilterQuote returns the rows whose symbol ends with the provided quote asset suffix, sorted by
// symbol ascending. The receiver is not modified.
//
func (o *TickerTable) FilterQuote(suffix string) []FullTicker {
	ret := make([]FullTicker, 0)

	for _, row := range o.Rows {
		if strings.HasSuffix(row.Symbol, suffix) {
			ret = append(ret, row)
		}
	}

	sort.Slice(ret, func(i int, j int) bool {
		return ret[i].Symbol < ret[j].Symbol
	})

	return ret
}

//
// TableHeader returns the header row for tabular exports of a ticker table. Its order matches
// the cells produced by Record().
//
func TableHeader() []string {
	return []string{
		"symbol", "priceChange", "priceChangePercent", "weightedAvgPrice", "prevClosePrice",
		"lastPrice", "lastQty", "bidPrice", "bidQty", "askPrice", "askQty", "openPrice",
		"highPrice", "lowPrice", "volume", "quoteVolume", "openTime", "closeTime", "firstId",
		"lastId", "count", "timestamp",
	}
}

//
// Record renders the row as export cells. Numeric columns emit the exchange's original string
// form – identical to the coerced value when coercion succeeded, and deliberately untouched when
// it did not. The provided capture timestamp is appended as the final cell.
//
func (o FullTicker) Record(capturedAt string) []string {
	return []string{
		o.Symbol,
		o.raw.PriceChange,
		o.raw.PriceChangePercent,
		o.raw.WeightedAvgPrice,
		o.raw.PrevClosePrice,
		o.raw.LastPrice,
		o.raw.LastQty,
		o.raw.BidPrice,
		o.raw.BidQty,
		o.raw.AskPrice,
		o.raw.AskQty,
		o.raw.OpenPrice,
		o.raw.HighPrice,
		o.raw.LowPrice,
		o.raw.Volume,
		o.raw.QuoteVolume,
		o.OpenTime.Format("2006-01-02 15:04:05"),
		o.CloseTime.Format("2006-01-02 15:04:05"),
		fmt.Sprintf("%d", o.FirstTradeID),
		fmt.Sprintf("%d", o.LastTradeID),
		fmt.Sprintf("%d", o.TradeCount),
		capturedAt,
	}
}
