package exchange

import (
	"fmt"
	"log"

	"github.com/adshao/go-binance/v2"
	"github.com/logrusorgru/aurora"

	"github.com/oscarcortez/binance-api/constants"
)

const (
	Name = "≪exchange-client≫"
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
// NewClient constructs the shared Binance spot client from the provided configuration. It should
// be called once, early, from the process's initialization path – the returned client is then
// handed to each service that needs it. Credentials are not validated here; invalid keys only
// surface as errors once an authenticated operation is attempted.
//
func NewClient(cfg Config) *binance.Client {
	binance.UseTestnet = cfg.Testnet

	client := binance.NewClient(cfg.APIKey, cfg.APISecret)

	//
	// Announce which endpoint mode was selected so that an operator can never be surprised about
	// whether real funds are in play.
	//
	if cfg.Testnet {
		logger.Printf("Connected to Binance %s.", aurora.Bold(aurora.Yellow("TESTNET")))
	} else {
		logger.Printf("Connected to Binance %s.", aurora.Bold(aurora.Green("PRODUCTION")))
	}

	return client
}
