package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/oscarcortez/binance-api/constants"
	"github.com/oscarcortez/binance-api/exchange"
	"github.com/oscarcortez/binance-api/export"
	"github.com/oscarcortez/binance-api/market"
)

func main() {
	//
	// Determine the current working directory. If that cannot be done for some reason, we are in a
	// critical failure state.
	//
	workingDir, err := os.Getwd()
	if err != nil {
		log.Fatalf("Failed to determine the current working directory. (Error: %s)", err)
	}

	//
	// Register and parse configuration flags.
	//
	cfgOutputDir := flag.String(
		"output-dir",
		workingDir,
		"The directory that ticker export CSV files should be written to.",
	)

	cfgQuoteSuffix := flag.String(
		"quote-suffix",
		constants.DefaultQuoteSuffix,
		"The quote asset suffix that the filtered ticker export should keep.",
	)

	flag.Parse()

	//
	// Build the shared exchange client from the process environment and hand it to the market
	// data service.
	//
	cfg := exchange.LoadConfig()
	client := exchange.NewClient(cfg)

	marketData := market.NewService(client)

	//
	// Run a single export pass.
	//
	driver := export.NewDriver(marketData, *cfgOutputDir, *cfgQuoteSuffix)

	if _, err := driver.Run(context.Background()); err != nil {
		log.Fatalf("Failed to export the ticker snapshot. (Error: %s)", err)
	}
}
