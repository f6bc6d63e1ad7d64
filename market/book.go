package market

import (
	"fmt"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

//
// PriceLevel is a single (price, quantity) entry on one side of an order book.
//
type PriceLevel struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

//
// OrderBook is an immutable depth snapshot of a single trading pair. It is never incrementally
// updated – each query produces a fresh snapshot.
//
type OrderBook struct {
	LastUpdateID int64
	Bids         []PriceLevel
	Asks         []PriceLevel
}

//
// ShapeOrderBook coerces a raw depth response into an order book snapshot.
//
func ShapeOrderBook(depth *binance.DepthResponse) (*OrderBook, error) {
	bids, err := shapeLevels("bid", depth.Bids)
	if err != nil {
		return nil, err
	}

	// binance.Ask aliases the same price level type as binance.Bid.
	asks, err := shapeLevels("ask", depth.Asks)
	if err != nil {
		return nil, err
	}

	return &OrderBook{
		LastUpdateID: depth.LastUpdateID,
		Bids:         bids,
		Asks:         asks,
	}, nil
}

func shapeLevels(side string, raw []binance.Bid) ([]PriceLevel, error) {
	ret := make([]PriceLevel, 0, len(raw))

	for i, level := range raw {
		price, err := decimal.NewFromString(level.Price)
		if err != nil {
			return nil, fmt.Errorf("failed to coerce %s price at depth %d (%w)", side, i, err)
		}

		quantity, err := decimal.NewFromString(level.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to coerce %s quantity at depth %d (%w)", side, i, err)
		}

		ret = append(ret, PriceLevel{
			Price:    price,
			Quantity: quantity,
		})
	}

	return ret, nil
}
