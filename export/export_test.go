package export

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/adshao/go-binance/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oscarcortez/binance-api/market"
)

//
// fakeSource substitutes the exchange with a canned snapshot.
//
type fakeSource struct {
	table *market.TickerTable
	err   error
}

func (o *fakeSource) AllTickersComplete(ctx context.Context) (*market.TickerTable, error) {
	return o.table, o.err
}

func rawStats(symbol string) *binance.PriceChangeStats {
	return &binance.PriceChangeStats{
		Symbol:             symbol,
		PriceChange:        "1.5",
		PriceChangePercent: "0.5",
		WeightedAvgPrice:   "300.25",
		PrevClosePrice:     "299.0",
		LastPrice:          "300.5",
		LastQty:            "10",
		BidPrice:           "300.4",
		BidQty:             "5",
		AskPrice:           "300.6",
		AskQty:             "5",
		OpenPrice:          "299.0",
		HighPrice:          "301.0",
		LowPrice:           "298.5",
		Volume:             "12345.6",
		QuoteVolume:        "3700000.1",
		OpenTime:           1_499_783_499_040,
		CloseTime:          1_499_869_899_040,
		FristID:            1,
		LastID:             100,
		Count:              100,
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	return rows
}

func TestRunExportsFullAndFilteredSnapshots(t *testing.T) {
	source := &fakeSource{
		table: market.ShapeTickerTable([]*binance.PriceChangeStats{
			rawStats("AAABTC"),
			rawStats("XYZUSDT"),
			rawStats("ABCUSDT"),
		}),
	}

	driver := NewDriver(source, t.TempDir(), "USDT")

	result, err := driver.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.FullRows)
	assert.Equal(t, 2, result.FilteredRows)
	assert.LessOrEqual(t, result.FilteredRows, result.FullRows)

	//
	// The full export holds every row plus a header, in fetch order.
	//
	fullRows := readCSV(t, result.FullPath)

	require.Len(t, fullRows, 4)
	assert.Equal(t, market.TableHeader(), fullRows[0])
	assert.Equal(t, "AAABTC", fullRows[1][0])

	//
	// The filtered export holds exactly the quote-suffixed rows, sorted by symbol ascending, and
	// every row carries the capture timestamp in its final column.
	//
	filteredRows := readCSV(t, result.FilteredPath)

	require.Len(t, filteredRows, 3)
	assert.Equal(t, "ABCUSDT", filteredRows[1][0])
	assert.Equal(t, "XYZUSDT", filteredRows[2][0])

	for _, row := range filteredRows[1:] {
		assert.True(t, strings.HasSuffix(row[0], "USDT"))
		assert.NotEmpty(t, row[len(row)-1])
	}

	//
	// Both file names carry the capture time to second precision.
	//
	assert.Regexp(t, `all_tickers_complete_\d{8}_\d{6}\.csv$`, result.FullPath)
	assert.Regexp(t, `usdt_tickers_complete_\d{8}_\d{6}\.csv$`, result.FilteredPath)
}

func TestRunPropagatesSourceErrors(t *testing.T) {
	wantErr := errors.New("exchange unavailable")

	driver := NewDriver(&fakeSource{err: wantErr}, t.TempDir(), "USDT")

	_, err := driver.Run(context.Background())

	assert.ErrorIs(t, err, wantErr)
}
