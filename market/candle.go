package market

import (
	"fmt"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

//
// Candle represents a single shaped candlestick (a.k.a. kline) as provided by the exchange's
// historical data endpoint. All prices and volumes are decimals, all instants are real times.
//
type Candle struct {
	OpenTime      time.Time
	Open          decimal.Decimal
	High          decimal.Decimal
	Low           decimal.Decimal
	Close         decimal.Decimal
	Volume        decimal.Decimal
	CloseTime     time.Time
	QuoteVolume   decimal.Decimal
	TradeCount    int64
	TakerBuyBase  decimal.Decimal
	TakerBuyQuote decimal.Decimal
}

//
// ShapeCandles coerces a raw kline sequence into candle records, preserving the exchange's
// chronological ordering. Unlike the full ticker snapshot, kline coercion is strict – a malformed
// field fails the whole operation with the offending candle and field named.
//
func ShapeCandles(klines []*binance.Kline) ([]Candle, error) {
	ret := make([]Candle, 0, len(klines))

	for i, kline := range klines {
		candle, err := ShapeCandle(kline)
		if err != nil {
			return nil, fmt.Errorf("failed to shape candle at index %d (%w)", i, err)
		}

		ret = append(ret, candle)
	}

	return ret, nil
}

//
// ShapeCandle coerces a single raw kline into a candle record.
//
func ShapeCandle(kline *binance.Kline) (Candle, error) {
	var err error

	//
	// Parse each price/volume field, remembering the first failure along with the name of the
	// field that caused it.
	//
	parse := func(name string, raw string) decimal.Decimal {
		if err != nil {
			return decimal.Zero
		}

		amt, parseErr := decimal.NewFromString(raw)
		if parseErr != nil {
			err = fmt.Errorf("failed to coerce %s %q (%w)", name, raw, parseErr)
		}

		return amt
	}

	candle := Candle{
		OpenTime:      time.UnixMilli(kline.OpenTime),
		Open:          parse("open", kline.Open),
		High:          parse("high", kline.High),
		Low:           parse("low", kline.Low),
		Close:         parse("close", kline.Close),
		Volume:        parse("volume", kline.Volume),
		CloseTime:     time.UnixMilli(kline.CloseTime),
		QuoteVolume:   parse("quote asset volume", kline.QuoteAssetVolume),
		TradeCount:    kline.TradeNum,
		TakerBuyBase:  parse("taker buy base volume", kline.TakerBuyBaseAssetVolume),
		TakerBuyQuote: parse("taker buy quote volume", kline.TakerBuyQuoteAssetVolume),
	}

	if err != nil {
		return Candle{}, err
	}

	return candle, nil
}
