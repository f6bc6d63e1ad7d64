package trading

import (
	"context"
	"fmt"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

//
// LimitParams holds the parameters that only exist on the limit order variant. Its presence on
// an OrderParams is what selects the limit order path – market orders never carry a price, so a
// nil price can never leak into a request.
//
type LimitParams struct {
	Price       decimal.Decimal
	TimeInForce binance.TimeInForceType
}

//
// OrderParams is a validated set of order parameters. Construct it through MarketOrderParams or
// LimitOrderParams – both check their inputs up front so that a malformed order is rejected
// before anything is sent to the exchange.
//
type OrderParams struct {
	Symbol   string
	Side     binance.SideType
	Type     binance.OrderType
	Quantity decimal.Decimal
	Limit    *LimitParams
}

//
// MarketOrderParams builds the parameters of an immediately-executing market order.
//
func MarketOrderParams(symbol string, side binance.SideType, quantity decimal.Decimal) (*OrderParams, error) {
	if err := validateBase(symbol, side, quantity); err != nil {
		return nil, err
	}

	return &OrderParams{
		Symbol:   symbol,
		Side:     side,
		Type:     binance.OrderTypeMarket,
		Quantity: quantity,
	}, nil
}

//
// LimitOrderParams builds the parameters of a resting limit order with good-till-cancelled
// time-in-force.
//
func LimitOrderParams(symbol string, side binance.SideType, quantity decimal.Decimal, price decimal.Decimal) (*OrderParams, error) {
	if err := validateBase(symbol, side, quantity); err != nil {
		return nil, err
	}

	if price.Sign() <= 0 {
		return nil, fmt.Errorf("a limit order requires a positive price (got %s)", price)
	}

	return &OrderParams{
		Symbol:   symbol,
		Side:     side,
		Type:     binance.OrderTypeLimit,
		Quantity: quantity,
		Limit: &LimitParams{
			Price:       price,
			TimeInForce: binance.TimeInForceTypeGTC,
		},
	}, nil
}

func validateBase(symbol string, side binance.SideType, quantity decimal.Decimal) error {
	if symbol == "" {
		return fmt.Errorf("an order requires a symbol")
	}

	if side != binance.SideTypeBuy && side != binance.SideTypeSell {
		return fmt.Errorf("order side must be %s or %s (got %q)", binance.SideTypeBuy, binance.SideTypeSell, side)
	}

	if quantity.Sign() <= 0 {
		return fmt.Errorf("an order requires a positive quantity (got %s)", quantity)
	}

	return nil
}

//
// TestOrderResult is the synthesized acknowledgment of a test order. The exchange returns no
// body when validation succeeds, so a fixed success record is substituted.
//
type TestOrderResult struct {
	Success bool
	Message string
}

//
// MarketOrder places an immediately-executing order for the provided quantity. The exchange's
// raw acknowledgment is returned as-is.
//
// Note that order placement is not idempotent – retrying a failed placement risks duplicate
// execution, and this layer does not mitigate that.
//
func (o *Service) MarketOrder(ctx context.Context, symbol string, side binance.SideType, quantity decimal.Decimal) (*binance.CreateOrderResponse, error) {
	params, err := MarketOrderParams(symbol, side, quantity)
	if err != nil {
		return nil, err
	}

	return o.orderService(params).Do(ctx)
}

//
// LimitOrder places a resting good-till-cancelled order at the provided price. The exchange's
// raw acknowledgment is returned as-is.
//
func (o *Service) LimitOrder(ctx context.Context, symbol string, side binance.SideType, quantity decimal.Decimal, price decimal.Decimal) (*binance.CreateOrderResponse, error) {
	params, err := LimitOrderParams(symbol, side, quantity, price)
	if err != nil {
		return nil, err
	}

	return o.orderService(params).Do(ctx)
}

//
// TestOrder validates the provided order parameters against the exchange's rules without
// executing anything.
//
func (o *Service) TestOrder(ctx context.Context, params *OrderParams) (*TestOrderResult, error) {
	if err := o.orderService(params).Test(ctx); err != nil {
		return nil, err
	}

	return &TestOrderResult{
		Success: true,
		Message: "test order validated",
	}, nil
}

//
// CancelOrder cancels the identified order.
//
func (o *Service) CancelOrder(ctx context.Context, symbol string, orderID int64) (*binance.CancelOrderResponse, error) {
	return o.client.NewCancelOrderService().
		Symbol(symbol).
		OrderID(orderID).
		Do(ctx)
}

//
// OpenOrders lists the open orders on the provided symbol. An empty symbol lists open orders
// across all symbols.
//
func (o *Service) OpenOrders(ctx context.Context, symbol string) ([]*binance.Order, error) {
	service := o.client.NewListOpenOrdersService()

	if symbol != "" {
		service = service.Symbol(symbol)
	}

	return service.Do(ctx)
}

//
// OrderStatus retrieves the exchange's current view of the identified order.
//
func (o *Service) OrderStatus(ctx context.Context, symbol string, orderID int64) (*binance.Order, error) {
	return o.client.NewGetOrderService().
		Symbol(symbol).
		OrderID(orderID).
		Do(ctx)
}

//
// orderService assembles the exchange request for the provided parameters. The price and
// time-in-force are attached only when the limit payload is present.
//
func (o *Service) orderService(params *OrderParams) *binance.CreateOrderService {
	service := o.client.NewCreateOrderService().
		Symbol(params.Symbol).
		Side(params.Side).
		Type(params.Type).
		Quantity(params.Quantity.String())

	if params.Limit != nil {
		service = service.
			TimeInForce(params.Limit.TimeInForce).
			Price(params.Limit.Price.String())
	}

	return service
}
