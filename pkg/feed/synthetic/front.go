package synthetic

import (
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/shi0rik0/ctp-api-md-demo/pkg/feed"
)

var errReleased = errors.New("synthetic front released")

// Front is an in-process stand-in for the vendor market-data SDK. It accepts
// any credential, confirms every subscription, and generates random-walk
// ticks for the subscribed instruments. All callbacks are delivered from one
// internal goroutine, preserving the vendor contract that callbacks are
// strictly serialized on a single thread.
type Front struct {
	handler  feed.Handler
	interval time.Duration
	rng      *rand.Rand

	cmds    chan func()
	done    chan struct{}
	release sync.Once

	tradingDay string

	// Delivery-goroutine state.
	loggedIn bool
	active   []string
	prices   map[string]float64
	volumes  map[string]int64
}

func NewFront(interval time.Duration, seed int64) *Front {
	return &Front{
		interval:   interval,
		rng:        rand.New(rand.NewSource(seed)),
		cmds:       make(chan func(), 64),
		done:       make(chan struct{}),
		tradingDay: time.Now().Format("20060102"),
		prices:     make(map[string]float64),
		volumes:    make(map[string]int64),
	}
}

// RegisterHandler must be called before Connect.
func (f *Front) RegisterHandler(h feed.Handler) {
	f.handler = h
}

func (f *Front) Connect(frontAddr string) {
	slog.Debug("synthetic front connecting", "front", frontAddr)
	go f.run()
	f.enqueue(func() {
		f.handler.OnConnected()
	})
}

func (f *Front) Login(cred feed.Credential, requestID int) error {
	return f.submit(func() {
		f.loggedIn = true
		f.handler.OnLoginResult(feed.Result{}, requestID, true)
	})
}

func (f *Front) Logout(cred feed.Credential, requestID int) error {
	return f.submit(func() {
		f.loggedIn = false
		f.handler.OnLogoutResult(feed.Result{}, requestID, true)
	})
}

func (f *Front) Subscribe(instruments []string) error {
	ids := append([]string(nil), instruments...)
	return f.submit(func() {
		for i, id := range ids {
			if _, ok := f.prices[id]; !ok {
				f.active = append(f.active, id)
				f.prices[id] = 3000 + f.rng.Float64()*2000
			}
			f.handler.OnSubscribeResult(id, feed.Result{}, i == len(ids)-1)
		}
	})
}

func (f *Front) Unsubscribe(instruments []string) error {
	ids := append([]string(nil), instruments...)
	return f.submit(func() {
		for i, id := range ids {
			for j, a := range f.active {
				if a == id {
					f.active = append(f.active[:j], f.active[j+1:]...)
					break
				}
			}
			f.handler.OnUnsubscribeResult(id, feed.Result{}, i == len(ids)-1)
		}
	})
}

func (f *Front) TradingDay() string { return f.tradingDay }

func (f *Front) Release() {
	f.release.Do(func() {
		close(f.done)
	})
}

// Done is closed when the delivery loop has been released.
func (f *Front) Done() <-chan struct{} { return f.done }

func (f *Front) run() {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-f.done:
			return
		case fn := <-f.cmds:
			fn()
		case <-ticker.C:
			f.deliverTicks()
		}
	}
}

func (f *Front) deliverTicks() {
	if !f.loggedIn {
		return
	}
	now := time.Now()
	for _, id := range f.active {
		f.handler.OnTick(f.nextTick(id, now))
	}
}

// nextTick advances a simple random walk with a jittered spread, quantized to
// one decimal like exchange-listed futures.
func (f *Front) nextTick(instrument string, now time.Time) *feed.DepthMarketData {
	price := f.prices[instrument] + f.rng.NormFloat64()*2
	price = math.Round(price*10) / 10
	f.prices[instrument] = price

	f.volumes[instrument] += int64(f.rng.Intn(200))
	spread := 0.5 + f.rng.Float64()

	return &feed.DepthMarketData{
		InstrumentID:   instrument,
		LastPrice:      price,
		Volume:         f.volumes[instrument],
		BidPrice1:      math.Round((price-spread)*10) / 10,
		BidVolume1:     int64(1 + f.rng.Intn(1000)),
		AskPrice1:      math.Round((price+spread)*10) / 10,
		AskVolume1:     int64(1 + f.rng.Intn(1000)),
		UpdateTime:     now.Format("15:04:05"),
		UpdateMillisec: int32(now.Nanosecond() / int(time.Millisecond)),
	}
}

func (f *Front) submit(fn func()) error {
	select {
	case <-f.done:
		return errReleased
	default:
	}
	select {
	case <-f.done:
		return errReleased
	case f.cmds <- fn:
		return nil
	}
}

func (f *Front) enqueue(fn func()) {
	select {
	case <-f.done:
	case f.cmds <- fn:
	}
}
