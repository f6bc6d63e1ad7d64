package exchange

import "fmt"

//
// Interval is an enum that represents the various kline/candlestick intervals that can be
// requested from the exchange's historical data endpoints and streaming channels.
//
type Interval int

const (
	OneMinute Interval = iota
	ThreeMinute
	FiveMinute
	FifteenMinute
	ThirtyMinute
	OneHour
	TwoHour
	FourHour
	SixHour
	EightHour
	TwelveHour
	OneDay
	ThreeDay
	OneWeek
	OneMonth
)

var intervalNames = [...]string{
	"1m", "3m", "5m", "15m", "30m", "1h", "2h", "4h", "6h", "8h", "12h", "1d", "3d", "1w", "1M",
}

func (o Interval) String() string {
	return intervalNames[o]
}

//
// ParseInterval resolves an interval from its wire form (e.g. "15m", "1h", "1M"). This is the
// inverse of String() and is what flag and script inputs should be run through.
//
func ParseInterval(raw string) (Interval, error) {
	for i, name := range intervalNames {
		if name == raw {
			return Interval(i), nil
		}
	}

	return 0, fmt.Errorf("unknown kline interval %q", raw)
}
