package stream

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/shopspring/decimal"
)

//
// Kline represents a normalized candlestick update received from a kline stream. Closed reports
// whether the candle's interval has ended – until then the same candle is re-delivered with
// updated values.
//
type Kline struct {
	Symbol    string
	EventTime time.Time
	OpenTime  time.Time
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	Volume    decimal.Decimal
	Closed    bool
}

//
// Trade represents a normalized trade received from a trade stream.
//
type Trade struct {
	Symbol       string
	EventTime    time.Time
	Price        decimal.Decimal
	Quantity     decimal.Decimal
	TradeTime    time.Time
	IsBuyerMaker bool
}

//
// klineEvent models the payload of a kline push event as delivered on the wire.
//
type klineEvent struct {
	EventType string `json:"e"`
	EventTime int64  `json:"E"`
	Symbol    string `json:"s"`
	Kline     struct {
		OpenTime int64  `json:"t"`
		Symbol   string `json:"s"`
		Open     string `json:"o"`
		High     string `json:"h"`
		Low      string `json:"l"`
		Close    string `json:"c"`
		Volume   string `json:"v"`
		Closed   bool   `json:"x"`
	} `json:"k"`
}

//
// tradeEvent models the payload of a trade push event as delivered on the wire.
//
type tradeEvent struct {
	EventType    string `json:"e"`
	EventTime    int64  `json:"E"`
	Symbol       string `json:"s"`
	Price        string `json:"p"`
	Quantity     string `json:"q"`
	TradeTime    int64  `json:"T"`
	IsBuyerMaker bool   `json:"m"`
}

//
// parseKlineEvent shapes a raw inbound message from a kline channel into a kline record. The
// second return value reports whether a record was produced – events whose type tag is not
// "kline" are dropped silently, and events that cannot be coerced are dropped with a warning.
//
func parseKlineEvent(payload []byte) (Kline, bool) {
	var event klineEvent

	if err := json.Unmarshal(payload, &event); err != nil {
		warn("kline", err)

		return Kline{}, false
	}

	if event.EventType != "kline" {
		return Kline{}, false
	}

	var err error

	parse := func(raw string) decimal.Decimal {
		if err != nil {
			return decimal.Zero
		}

		var amt decimal.Decimal

		amt, err = decimal.NewFromString(raw)

		return amt
	}

	record := Kline{
		Symbol:    event.Kline.Symbol,
		EventTime: time.UnixMilli(event.EventTime),
		OpenTime:  time.UnixMilli(event.Kline.OpenTime),
		Open:      parse(event.Kline.Open),
		High:      parse(event.Kline.High),
		Low:       parse(event.Kline.Low),
		Close:     parse(event.Kline.Close),
		Volume:    parse(event.Kline.Volume),
		Closed:    event.Kline.Closed,
	}

	if err != nil {
		warn("kline", err)

		return Kline{}, false
	}

	return record, true
}

//
// parseTradeEvent shapes a raw inbound message from a trade channel into a trade record,
// following the same drop rules as parseKlineEvent.
//
func parseTradeEvent(payload []byte) (Trade, bool) {
	var event tradeEvent

	if err := json.Unmarshal(payload, &event); err != nil {
		warn("trade", err)

		return Trade{}, false
	}

	if event.EventType != "trade" {
		return Trade{}, false
	}

	price, err := decimal.NewFromString(event.Price)
	if err != nil {
		warn("trade", err)

		return Trade{}, false
	}

	quantity, err := decimal.NewFromString(event.Quantity)
	if err != nil {
		warn("trade", err)

		return Trade{}, false
	}

	return Trade{
		Symbol:       event.Symbol,
		EventTime:    time.UnixMilli(event.EventTime),
		Price:        price,
		Quantity:     quantity,
		TradeTime:    time.UnixMilli(event.TradeTime),
		IsBuyerMaker: event.IsBuyerMaker,
	}, true
}

func warn(channel string, err error) {
	logger.Printf(
		"%s",
		aurora.Yellow(fmt.Sprintf("Dropped a malformed %s event. (Error: %s)", channel, err)),
	)
}
