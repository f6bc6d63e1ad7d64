package market

import (
	"testing"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawKline(openTime int64, open string, close string) *binance.Kline {
	return &binance.Kline{
		OpenTime:                 openTime,
		Open:                     open,
		High:                     "101.5",
		Low:                      "99.25",
		Close:                    close,
		Volume:                   "1234.56789",
		CloseTime:                openTime + 59_999,
		QuoteAssetVolume:         "123456.789",
		TradeNum:                 308,
		TakerBuyBaseAssetVolume:  "617.28",
		TakerBuyQuoteAssetVolume: "61728.9",
	}
}

func TestShapeCandle(t *testing.T) {
	candle, err := ShapeCandle(rawKline(1_499_040_000_000, "100.0", "101.0"))
	require.NoError(t, err)

	assert.Equal(t, time.UnixMilli(1_499_040_000_000), candle.OpenTime)
	assert.Equal(t, time.UnixMilli(1_499_040_059_999), candle.CloseTime)
	assert.True(t, candle.Open.Equal(decimal.RequireFromString("100.0")))
	assert.True(t, candle.High.Equal(decimal.RequireFromString("101.5")))
	assert.True(t, candle.Low.Equal(decimal.RequireFromString("99.25")))
	assert.True(t, candle.Close.Equal(decimal.RequireFromString("101.0")))
	assert.True(t, candle.Volume.Equal(decimal.RequireFromString("1234.56789")))
	assert.True(t, candle.QuoteVolume.Equal(decimal.RequireFromString("123456.789")))
	assert.True(t, candle.TakerBuyBase.Equal(decimal.RequireFromString("617.28")))
	assert.True(t, candle.TakerBuyQuote.Equal(decimal.RequireFromString("61728.9")))
	assert.Equal(t, int64(308), candle.TradeCount)
}

func TestShapeCandleMalformedField(t *testing.T) {
	_, err := ShapeCandle(rawKline(1_499_040_000_000, "not-a-number", "101.0"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open")
}

func TestShapeCandlesPreservesChronology(t *testing.T) {
	klines := []*binance.Kline{
		rawKline(1_499_040_000_000, "100.0", "101.0"),
		rawKline(1_499_040_060_000, "101.0", "102.0"),
		rawKline(1_499_040_120_000, "102.0", "103.0"),
	}

	candles, err := ShapeCandles(klines)
	require.NoError(t, err)
	require.Len(t, candles, 3)

	for i := 1; i < len(candles); i++ {
		assert.False(
			t,
			candles[i].OpenTime.Before(candles[i-1].OpenTime),
			"candle open times should be non-decreasing in request order",
		)
	}
}

func TestShapeCandlesMalformedFieldNamesIndex(t *testing.T) {
	klines := []*binance.Kline{
		rawKline(1_499_040_000_000, "100.0", "101.0"),
		rawKline(1_499_040_060_000, "101.0", "bad"),
	}

	_, err := ShapeCandles(klines)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 1")
}
