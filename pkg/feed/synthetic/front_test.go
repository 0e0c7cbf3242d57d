package synthetic

import (
	"testing"
	"time"

	"github.com/shi0rik0/ctp-api-md-demo/pkg/feed"
)

type recordingHandler struct {
	connected   chan struct{}
	loginRes    chan int
	logoutRes   chan int
	subRes      chan string
	unsubRes    chan string
	ticks       chan *feed.DepthMarketData
	disconnects chan int
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{
		connected:   make(chan struct{}, 1),
		loginRes:    make(chan int, 4),
		logoutRes:   make(chan int, 4),
		subRes:      make(chan string, 16),
		unsubRes:    make(chan string, 16),
		ticks:       make(chan *feed.DepthMarketData, 256),
		disconnects: make(chan int, 4),
	}
}

func (h *recordingHandler) OnConnected()             { h.connected <- struct{}{} }
func (h *recordingHandler) OnDisconnected(reason int) { h.disconnects <- reason }
func (h *recordingHandler) OnHeartBeatWarning(int)   {}
func (h *recordingHandler) OnLoginResult(res feed.Result, requestID int, isLast bool) {
	h.loginRes <- requestID
}
func (h *recordingHandler) OnLogoutResult(res feed.Result, requestID int, isLast bool) {
	h.logoutRes <- requestID
}
func (h *recordingHandler) OnSubscribeResult(instrument string, res feed.Result, isLast bool) {
	h.subRes <- instrument
}
func (h *recordingHandler) OnUnsubscribeResult(instrument string, res feed.Result, isLast bool) {
	h.unsubRes <- instrument
}
func (h *recordingHandler) OnError(res feed.Result, isLast bool) {}
func (h *recordingHandler) OnTick(tick *feed.DepthMarketData)    { h.ticks <- tick }

func waitFor[T any](t *testing.T, ch <-chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("Timed out waiting for %s", what)
		panic("unreachable")
	}
}

func TestSyntheticFront_Lifecycle(t *testing.T) {
	handler := newRecordingHandler()
	front := NewFront(5*time.Millisecond, 1)
	front.RegisterHandler(handler)
	defer front.Release()

	front.Connect("sim://local")
	waitFor(t, handler.connected, "OnConnected")

	if err := front.Login(feed.Credential{UserID: "anon"}, 1); err != nil {
		t.Fatalf("Login submission failed: %v", err)
	}
	if id := waitFor(t, handler.loginRes, "login result"); id != 1 {
		t.Errorf("Login result request id = %d, want 1", id)
	}

	if err := front.Subscribe([]string{"rb2405", "au2601"}); err != nil {
		t.Fatalf("Subscribe submission failed: %v", err)
	}
	got := map[string]bool{}
	got[waitFor(t, handler.subRes, "first subscribe result")] = true
	got[waitFor(t, handler.subRes, "second subscribe result")] = true
	if !got["rb2405"] || !got["au2601"] {
		t.Errorf("Subscribe results = %v, want both instruments", got)
	}

	tick := waitFor(t, handler.ticks, "first tick")
	if tick == nil {
		t.Fatal("Received nil tick")
	}
	if tick.InstrumentID != "rb2405" && tick.InstrumentID != "au2601" {
		t.Errorf("Tick for unexpected instrument %q", tick.InstrumentID)
	}
	if tick.BidPrice1 >= tick.AskPrice1 {
		t.Errorf("Crossed book: bid %v >= ask %v", tick.BidPrice1, tick.AskPrice1)
	}
	if tick.UpdateMillisec < 0 || tick.UpdateMillisec > 999 {
		t.Errorf("UpdateMillisec out of range: %d", tick.UpdateMillisec)
	}
	if tick.UpdateTime == "" {
		t.Error("Empty UpdateTime")
	}

	if err := front.Unsubscribe([]string{"rb2405"}); err != nil {
		t.Fatalf("Unsubscribe submission failed: %v", err)
	}
	if id := waitFor(t, handler.unsubRes, "unsubscribe result"); id != "rb2405" {
		t.Errorf("Unsubscribe result = %q, want rb2405", id)
	}

	if err := front.Logout(feed.Credential{UserID: "anon"}, 2); err != nil {
		t.Fatalf("Logout submission failed: %v", err)
	}
	waitFor(t, handler.logoutRes, "logout result")
}

func TestSyntheticFront_SubmitAfterRelease(t *testing.T) {
	handler := newRecordingHandler()
	front := NewFront(time.Millisecond, 1)
	front.RegisterHandler(handler)
	front.Connect("sim://local")
	waitFor(t, handler.connected, "OnConnected")

	front.Release()
	<-front.Done()

	if err := front.Login(feed.Credential{}, 1); err == nil {
		t.Error("Expected submission error after release")
	}
}

func TestSyntheticFront_TradingDayFormat(t *testing.T) {
	front := NewFront(time.Millisecond, 1)
	day := front.TradingDay()
	if len(day) != 8 {
		t.Errorf("TradingDay %q is not YYYYMMDD", day)
	}
}
