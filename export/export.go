package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/logrusorgru/aurora"

	"github.com/oscarcortez/binance-api/constants"
	"github.com/oscarcortez/binance-api/market"
)

const (
	Name = "≪export-service≫"
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
// Source provides the full ticker snapshot that a driver exports. The market data service
// implements it against the real exchange; tests substitute their own.
//
type Source interface {
	AllTickersComplete(ctx context.Context) (*market.TickerTable, error)
}

//
// Driver orchestrates one export pass: fetch the full ticker snapshot, stamp it with the capture
// time, and persist both the complete set and the quote-asset-filtered, symbol-sorted subset to
// timestamped CSV files.
//
type Driver struct {
	source      Source
	outputDir   string
	quoteSuffix string
}

//
// NewDriver instantiates an export driver that writes into the provided directory and filters by
// the provided quote asset suffix.
//
func NewDriver(source Source, outputDir string, quoteSuffix string) *Driver {
	return &Driver{
		source:      source,
		outputDir:   outputDir,
		quoteSuffix: quoteSuffix,
	}
}

//
// Result reports where an export pass wrote its files and how many rows each one holds.
//
type Result struct {
	FullPath     string
	FullRows     int
	FilteredPath string
	FilteredRows int
}

//
// Run executes a single export pass.
//
func (o *Driver) Run(ctx context.Context) (*Result, error) {
	table, err := o.source.AllTickersComplete(ctx)
	if err != nil {
		return nil, err
	}

	if n := len(table.Warnings); n > 0 {
		logger.Printf("%s", aurora.Yellow(fmt.Sprintf("The snapshot carries %d coercion warnings.", n)))
	}

	//
	// Stamp the snapshot with the capture time. The same instant names the output files (to
	// second precision) and fills every row's timestamp column.
	//
	capturedAt := time.Now()
	stamp := capturedAt.Format("2006-01-02 15:04:05")
	fileStamp := capturedAt.Format("20060102_150405")

	//
	// Write out the complete snapshot.
	//
	fullPath := filepath.Join(o.outputDir, fmt.Sprintf("all_tickers_complete_%s.csv", fileStamp))

	if err := writeCSV(fullPath, table.Rows, stamp); err != nil {
		return nil, err
	}

	logger.Printf(
		"Saved %s complete ticker rows to %s.",
		aurora.Bold(aurora.Green(fmt.Sprintf("%d", len(table.Rows)))), fullPath,
	)

	//
	// Write out the filtered, symbol-sorted subset.
	//
	filtered := table.FilterQuote(o.quoteSuffix)
	filteredPath := filepath.Join(
		o.outputDir,
		fmt.Sprintf("%s_tickers_complete_%s.csv", strings.ToLower(o.quoteSuffix), fileStamp),
	)

	if err := writeCSV(filteredPath, filtered, stamp); err != nil {
		return nil, err
	}

	logger.Printf(
		"Saved %s %s ticker rows to %s.",
		aurora.Bold(aurora.Green(fmt.Sprintf("%d", len(filtered)))), o.quoteSuffix, filteredPath,
	)

	return &Result{
		FullPath:     fullPath,
		FullRows:     len(table.Rows),
		FilteredPath: filteredPath,
		FilteredRows: len(filtered),
	}, nil
}

//
// writeCSV persists the provided rows to a CSV file with a header row and no index column.
//
func writeCSV(path string, rows []market.FullTicker, capturedAt string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(market.TableHeader()); err != nil {
		return err
	}

	for _, row := range rows {
		if err := writer.Write(row.Record(capturedAt)); err != nil {
			return err
		}
	}

	writer.Flush()

	return writer.Error()
}
