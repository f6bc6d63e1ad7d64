package stream

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const klinePayload = `{
	"e": "kline",
	"E": 1672515782136,
	"s": "BTCUSDT",
	"k": {
		"t": 1672515780000,
		"s": "BTCUSDT",
		"i": "1m",
		"o": "0.0010",
		"c": "0.0020",
		"h": "0.0025",
		"l": "0.0015",
		"v": "1000",
		"n": 100,
		"x": false,
		"q": "1.0000"
	}
}`

const tradePayload = `{
	"e": "trade",
	"E": 1672515782136,
	"s": "BNBBTC",
	"t": 12345,
	"p": "0.001",
	"q": "100",
	"T": 1672515782134,
	"m": true,
	"M": true
}`

func TestParseKlineEvent(t *testing.T) {
	record, ok := parseKlineEvent([]byte(klinePayload))
	require.True(t, ok)

	assert.Equal(t, "BTCUSDT", record.Symbol)
	assert.Equal(t, time.UnixMilli(1_672_515_780_000), record.OpenTime)
	assert.True(t, record.Open.Equal(decimal.RequireFromString("0.0010")))
	assert.True(t, record.High.Equal(decimal.RequireFromString("0.0025")))
	assert.True(t, record.Low.Equal(decimal.RequireFromString("0.0015")))
	assert.True(t, record.Close.Equal(decimal.RequireFromString("0.0020")))
	assert.True(t, record.Volume.Equal(decimal.RequireFromString("1000")))
	assert.False(t, record.Closed)
}

func TestParseKlineEventForeignTypeTagDropped(t *testing.T) {
	_, ok := parseKlineEvent([]byte(`{"e":"aggTrade","E":1672515782136,"s":"BTCUSDT"}`))

	assert.False(t, ok)
}

func TestParseKlineEventMalformedPriceDropped(t *testing.T) {
	payload := `{"e":"kline","E":1,"s":"BTCUSDT","k":{"t":1,"s":"BTCUSDT","o":"nope","c":"1","h":"1","l":"1","v":"1","x":true}}`

	_, ok := parseKlineEvent([]byte(payload))

	assert.False(t, ok)
}

func TestParseTradeEvent(t *testing.T) {
	record, ok := parseTradeEvent([]byte(tradePayload))
	require.True(t, ok)

	assert.Equal(t, "BNBBTC", record.Symbol)
	assert.True(t, record.Price.Equal(decimal.RequireFromString("0.001")))
	assert.True(t, record.Quantity.Equal(decimal.RequireFromString("100")))
	assert.Equal(t, time.UnixMilli(1_672_515_782_134), record.TradeTime)
	assert.True(t, record.IsBuyerMaker)
}

func TestParseTradeEventForeignTypeTagDropped(t *testing.T) {
	_, ok := parseTradeEvent([]byte(klinePayload))

	assert.False(t, ok)
}
