package trading

import (
	"context"
	"fmt"
	"strings"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

//
// Service issues authenticated account and order-management operations against the exchange and
// reshapes responses into simplified records. No order state is tracked locally – every query
// re-fetches from the exchange, and errors propagate to the caller unmodified.
//
type Service struct {
	client *binance.Client
}

//
// NewService instantiates a trading service on top of the provided client.
//
func NewService(client *binance.Client) *Service {
	return &Service{
		client: client,
	}
}

//
// Balance represents the holdings of a single asset. Total is always Free + Locked.
//
type Balance struct {
	Asset  string
	Free   decimal.Decimal
	Locked decimal.Decimal
	Total  decimal.Decimal
}

//
// AccountInfo represents the account's capability flags along with its non-zero balances.
//
type AccountInfo struct {
	CanTrade    bool
	CanWithdraw bool
	CanDeposit  bool
	Balances    []Balance
}

//
// AccountInfo retrieves the account's capability flags and balances. Assets with neither free
// nor locked holdings are dropped from the result.
//
func (o *Service) AccountInfo(ctx context.Context) (*AccountInfo, error) {
	account, err := o.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, err
	}

	return ShapeAccount(account)
}

//
// AssetBalance retrieves the balance of a single asset. An empty asset falls back to "USDT". The
// returned record's total is the computed sum of its free and locked holdings.
//
func (o *Service) AssetBalance(ctx context.Context, asset string) (*Balance, error) {
	if asset == "" {
		asset = "USDT"
	}

	asset = strings.ToUpper(asset)

	account, err := o.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, err
	}

	for _, raw := range account.Balances {
		if raw.Asset != asset {
			continue
		}

		balance, err := shapeBalance(raw)
		if err != nil {
			return nil, err
		}

		return &balance, nil
	}

	return nil, fmt.Errorf("the account holds no balance record for asset %s", asset)
}

//
// ShapeAccount coerces a raw account response into an account info record, retaining only
// balances where at least one of the free or locked holdings is non-zero.
//
func ShapeAccount(account *binance.Account) (*AccountInfo, error) {
	info := &AccountInfo{
		CanTrade:    account.CanTrade,
		CanWithdraw: account.CanWithdraw,
		CanDeposit:  account.CanDeposit,
		Balances:    make([]Balance, 0),
	}

	for _, raw := range account.Balances {
		balance, err := shapeBalance(raw)
		if err != nil {
			return nil, err
		}

		if balance.Free.IsZero() && balance.Locked.IsZero() {
			continue
		}

		info.Balances = append(info.Balances, balance)
	}

	return info, nil
}

func shapeBalance(raw binance.Balance) (Balance, error) {
	free, err := decimal.NewFromString(raw.Free)
	if err != nil {
		return Balance{}, fmt.Errorf("failed to coerce free balance of asset %s (%w)", raw.Asset, err)
	}

	locked, err := decimal.NewFromString(raw.Locked)
	if err != nil {
		return Balance{}, fmt.Errorf("failed to coerce locked balance of asset %s (%w)", raw.Asset, err)
	}

	return Balance{
		Asset:  raw.Asset,
		Free:   free,
		Locked: locked,
		Total:  free.Add(locked),
	}, nil
}
