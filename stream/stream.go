package stream

import (
	"fmt"
	"log"
	"strings"
	"sync"

	ws "github.com/gorilla/websocket"

	"github.com/oscarcortez/binance-api/constants"
	"github.com/oscarcortez/binance-api/exchange"
)

const (
	Name = "≪stream-service≫"

	prodStreamURL    = "wss://stream.binance.com:9443/ws"
	testnetStreamURL = "wss://testnet.binance.vision/ws"

	// Inbound records queue here while the consumer catches up. Beyond this the read loop blocks,
	// deferring backpressure to the websocket transport.
	channelDepth = 64
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
// Subscriber manages push-data subscriptions against the exchange's streaming endpoint. Each
// subscription opens its own socket and delivers normalized records on a channel that the
// consumer drains at its own pace; the channel is closed when the socket goes away. No
// reconnection, backoff, or ordering guarantee is provided beyond what the transport itself
// gives.
//
// Subscribe and Stop calls are expected to come from a single owning goroutine. Record delivery,
// in contrast, always happens on a background goroutine per stream.
//
type Subscriber struct {
	mu      *sync.Mutex
	baseURL string
	conns   []*ws.Conn
	stopped bool
}

//
// NewSubscriber instantiates a subscriber against the streaming endpoint matching the provided
// configuration's testnet/production mode.
//
func NewSubscriber(cfg exchange.Config) *Subscriber {
	baseURL := prodStreamURL

	if cfg.Testnet {
		baseURL = testnetStreamURL
	}

	return &Subscriber{
		mu:      &sync.Mutex{},
		baseURL: baseURL,
	}
}

//
// Klines subscribes to the kline channel of the provided trading pair and interval. Events whose
// type tag is not "kline" are dropped silently.
//
func (o *Subscriber) Klines(symbol string, interval exchange.Interval) (<-chan Kline, error) {
	conn, err := o.dial(fmt.Sprintf("%s@kline_%s", strings.ToLower(symbol), interval))
	if err != nil {
		return nil, err
	}

	ch := make(chan Kline, channelDepth)

	go readLoop(conn, ch, parseKlineEvent)

	logger.Printf("Subscribed to the %s kline channel for %s.", interval, symbol)

	return ch, nil
}

//
// Trades subscribes to the trade channel of the provided trading pair. Events whose type tag is
// not "trade" are dropped silently.
//
func (o *Subscriber) Trades(symbol string) (<-chan Trade, error) {
	conn, err := o.dial(fmt.Sprintf("%s@trade", strings.ToLower(symbol)))
	if err != nil {
		return nil, err
	}

	ch := make(chan Trade, channelDepth)

	go readLoop(conn, ch, parseTradeEvent)

	logger.Printf("Subscribed to the trade channel for %s.", symbol)

	return ch, nil
}

//
// Stop tears down every open subscription. Each subscription's record channel is closed once its
// read loop observes the closed socket.
//
func (o *Subscriber) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.stopped = true

	for _, conn := range o.conns {
		if err := conn.Close(); err != nil {
			logger.Printf("Failed to close a streaming connection. (Error: %s)", err)
		}
	}

	o.conns = nil

	logger.Printf("Stopped.")
}

//
// dial opens a socket for the provided stream name and registers it for teardown.
//
func (o *Subscriber) dial(stream string) (*ws.Conn, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.stopped {
		return nil, fmt.Errorf("the subscriber has been stopped")
	}

	conn, _, err := ws.DefaultDialer.Dial(fmt.Sprintf("%s/%s", o.baseURL, stream), nil)
	if err != nil {
		return nil, err
	}

	o.conns = append(o.conns, conn)

	return conn, nil
}

//
// readLoop pumps inbound messages from the socket through the provided parser and onto the
// record channel until the socket dies – whether from Stop() or from the transport. It then
// closes the channel so that consumers ranging over it terminate cleanly.
//
func readLoop[T any](conn *ws.Conn, ch chan<- T, parse func([]byte) (T, bool)) {
	defer close(ch)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		record, ok := parse(payload)
		if !ok {
			continue
		}

		ch <- record
	}
}
