package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shi0rik0/ctp-api-md-demo/pkg/bus"
	"github.com/shi0rik0/ctp-api-md-demo/pkg/common"
	"github.com/shi0rik0/ctp-api-md-demo/pkg/utility"
)

const sessionComponentName = "feed.session"

// Session owns the connection/auth/subscription state of one front session.
// It implements Handler: the transport drives it through callbacks on the
// transport's delivery thread, which the vendor serializes, so the state
// fields below are mutated from one goroutine only. The connected and
// authenticated flags and the confirmed set are additionally safe to read
// from the shutdown path, which may run on another goroutine.
type Session struct {
	transport Transport
	cred      Credential
	emitter   *Emitter
	router    *bus.Router

	desired []string

	state         common.SessionState
	connected     atomic.Bool
	authenticated atomic.Bool
	requestID     int

	confirmedMu sync.Mutex
	confirmed   map[string]struct{}
}

func NewSession(transport Transport, cred Credential, instruments []string, emitter *Emitter, router *bus.Router) *Session {
	desired := make([]string, len(instruments))
	copy(desired, instruments)

	return &Session{
		transport: transport,
		cred:      cred,
		emitter:   emitter,
		router:    router,
		desired:   desired,
		state:     common.StateDisconnected,
		confirmed: make(map[string]struct{}),
	}
}

// Start registers the front address with the transport. The connection result
// arrives later via OnConnected.
func (s *Session) Start(frontAddr string) {
	s.setState(common.StateConnecting, "registering front "+frontAddr)
	s.transport.Connect(frontAddr)
}

func (s *Session) State() common.SessionState { return s.state }
func (s *Session) Connected() bool            { return s.connected.Load() }
func (s *Session) Authenticated() bool        { return s.authenticated.Load() }

// ConfirmedInstruments returns the confirmed subset in desired order.
func (s *Session) ConfirmedInstruments() []string {
	s.confirmedMu.Lock()
	defer s.confirmedMu.Unlock()

	out := make([]string, 0, len(s.confirmed))
	for _, id := range s.desired {
		if _, ok := s.confirmed[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func (s *Session) OnConnected() {
	s.connected.Store(true)
	s.setState(common.StateConnected, "front connected")

	id := s.nextRequestID()
	if err := s.transport.Login(s.cred, id); err != nil {
		s.report(common.SeverityError, 0, fmt.Sprintf("login submission failed: %v", err))
		return
	}
	s.report(common.SeverityInfo, 0, fmt.Sprintf("login request %d submitted for user %s", id, s.cred.UserID))
}

func (s *Session) OnDisconnected(reason int) {
	s.connected.Store(false)
	s.authenticated.Store(false)
	s.clearConfirmed()
	s.setState(common.StateDisconnected, fmt.Sprintf("front disconnected, reason 0x%x", reason))
}

func (s *Session) OnHeartBeatWarning(lapse int) {
	s.report(common.SeverityWarn, 0, fmt.Sprintf("heartbeat warning, %ds since last message", lapse))
}

func (s *Session) OnLoginResult(res Result, requestID int, isLast bool) {
	if !res.OK() {
		s.authenticated.Store(false)
		s.report(common.SeverityError, res.ErrorID, "login failed: "+s.decodeError(res))
		s.setState(common.StateDisconnected, fmt.Sprintf("login rejected with code %d", res.ErrorID))
		return
	}

	s.authenticated.Store(true)
	s.setState(common.StateReady, "login succeeded, trading day "+s.transport.TradingDay())

	// One batched subscribe for the full desired list. Confirmation arrives
	// per instrument via OnSubscribeResult.
	instruments := make([]string, len(s.desired))
	copy(instruments, s.desired)
	if err := s.transport.Subscribe(instruments); err != nil {
		s.report(common.SeverityError, 0, fmt.Sprintf("subscribe submission failed: %v", err))
		return
	}
	s.report(common.SeverityInfo, 0, fmt.Sprintf("subscribe request submitted for %d instruments", len(instruments)))
}

func (s *Session) OnLogoutResult(res Result, requestID int, isLast bool) {
	if !res.OK() {
		s.report(common.SeverityError, res.ErrorID, "logout failed: "+s.decodeError(res))
		return
	}
	s.authenticated.Store(false)
	s.report(common.SeverityInfo, 0, "logout succeeded")
}

func (s *Session) OnSubscribeResult(instrument string, res Result, isLast bool) {
	if !res.OK() {
		// No automatic retry. The instrument stays unconfirmed until the next
		// full reconnect cycle resubscribes everything.
		s.report(common.SeverityError, res.ErrorID,
			fmt.Sprintf("subscribe failed for %s: %s", instrument, s.decodeError(res)))
		return
	}
	if s.isDesired(instrument) {
		s.confirmedMu.Lock()
		s.confirmed[instrument] = struct{}{}
		s.confirmedMu.Unlock()
	}
	s.report(common.SeverityInfo, 0, "subscribed to "+instrument)
}

func (s *Session) OnUnsubscribeResult(instrument string, res Result, isLast bool) {
	if !res.OK() {
		s.report(common.SeverityError, res.ErrorID,
			fmt.Sprintf("unsubscribe failed for %s: %s", instrument, s.decodeError(res)))
		return
	}
	s.confirmedMu.Lock()
	delete(s.confirmed, instrument)
	s.confirmedMu.Unlock()
	s.report(common.SeverityInfo, 0, "unsubscribed from "+instrument)
}

func (s *Session) OnError(res Result, isLast bool) {
	s.report(common.SeverityError, res.ErrorID, "front error: "+s.decodeError(res))
}

// OnTick is the latency-sensitive path. It runs regardless of formal session
// state, takes no session locks, and never blocks on request issuance.
func (s *Session) OnTick(raw *DepthMarketData) {
	tick, ok := Normalize(raw)
	if !ok {
		return
	}
	if err := s.emitter.Emit(tick); err != nil {
		s.report(common.SeverityError, 0, fmt.Sprintf("emit failed for %s: %v", tick.InstrumentID, err))
	}
	// Observability only; a full queue just drops the copy.
	_ = s.router.Post(bus.TickEvent, tick)
}

// Shutdown performs the best-effort graceful teardown: unsubscribe the
// confirmed instruments, wait for the submission to reach the wire, then log
// out and wait again. The grace periods approximate a flush, since the
// transport exposes no drain primitive. A canceled ctx skips remaining steps;
// releasing the transport stays the caller's job.
func (s *Session) Shutdown(ctx context.Context, grace time.Duration) {
	if !s.authenticated.Load() {
		return
	}

	if confirmed := s.ConfirmedInstruments(); len(confirmed) > 0 {
		if err := s.transport.Unsubscribe(confirmed); err != nil {
			s.report(common.SeverityError, 0, fmt.Sprintf("unsubscribe submission failed: %v", err))
		}
		if !wait(ctx, grace) {
			return
		}
	}

	if err := s.transport.Logout(s.cred, s.nextRequestID()); err != nil {
		s.report(common.SeverityError, 0, fmt.Sprintf("logout submission failed: %v", err))
	}
	wait(ctx, grace)
}

func (s *Session) nextRequestID() int {
	s.requestID++
	return s.requestID
}

func (s *Session) isDesired(instrument string) bool {
	for _, id := range s.desired {
		if id == instrument {
			return true
		}
	}
	return false
}

func (s *Session) clearConfirmed() {
	s.confirmedMu.Lock()
	clear(s.confirmed)
	s.confirmedMu.Unlock()
}

// decodeError turns a raw vendor result into display text, synthesizing a
// message when the payload is absent.
func (s *Session) decodeError(res Result) string {
	msg := utility.GBKToUTF8(res.ErrorMsg)
	if msg == "" {
		return "unknown error"
	}
	return msg
}

func (s *Session) setState(to common.SessionState, reason string) {
	from := s.state
	s.state = to
	slog.Info("session state", "from", from, "to", to, "reason", reason)
	if err := s.router.Post(bus.StateChangeEvent, common.StateChange{
		From:        from,
		To:          to,
		Reason:      reason,
		Source:      sessionComponentName,
		ExecutionId: utility.GetExecutionID(),
		TimeStamp:   time.Now(),
	}); err != nil {
		slog.Warn("unable to post state change event", "error", err)
	}
}

func (s *Session) report(severity common.Severity, code int, message string) {
	switch severity {
	case common.SeverityError:
		slog.Error(message, "code", code)
	case common.SeverityWarn:
		slog.Warn(message, "code", code)
	default:
		slog.Info(message, "code", code)
	}
	if err := s.router.Post(bus.DiagnosticEvent, common.Diagnostic{
		Severity:    severity,
		Code:        code,
		Message:     message,
		Source:      sessionComponentName,
		ExecutionId: utility.GetExecutionID(),
		TimeStamp:   time.Now(),
	}); err != nil {
		slog.Warn("unable to post diagnostic event", "error", err)
	}
}

func wait(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
