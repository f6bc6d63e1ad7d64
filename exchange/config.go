package exchange

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

//
// Config holds the process-level settings needed to talk to the Binance API. Credentials may be
// empty – construction of a client will still succeed, but authenticated operations against it
// will fail.
//
type Config struct {
	APIKey    string
	APISecret string
	Testnet   bool
}

//
// LoadConfig reads the exchange configuration from the process environment. A .env file in the
// working directory is loaded first if one exists. The testnet flag defaults to true so that an
// unconfigured process can never accidentally touch real funds.
//
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		APIKey:    os.Getenv("BINANCE_API_KEY"),
		APISecret: os.Getenv("BINANCE_API_SECRET"),
		Testnet:   parseTestnet(os.Getenv("TESTNET")),
	}
}

//
// parseTestnet interprets the TESTNET environment variable. An unset variable means testnet;
// anything other than "true" (case-insensitive) means production.
//
func parseTestnet(raw string) bool {
	if raw == "" {
		return true
	}

	return strings.EqualFold(raw, "true")
}
