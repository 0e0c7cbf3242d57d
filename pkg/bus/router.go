package bus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/shi0rik0/ctp-api-md-demo/pkg/common"
)

type event struct {
	id   EventId
	data interface{}
}

// Router dispatches feed events to registered handlers. Posting is
// non-blocking: when the event queue is full the post fails and the caller
// decides whether that matters. Dispatch runs on a single goroutine, so
// handlers never execute concurrently with each other.
type Router struct {
	events chan event

	OnTick        TickEventHandler
	OnStateChange StateChangeEventHandler
	OnDiagnostic  DiagnosticEventHandler

	startTime     time.Time
	postCount     atomic.Uint64
	postFails     atomic.Uint64
	dispatchCount atomic.Uint64
	dispatchFails atomic.Uint64
}

func NewRouter(eventCapacity int) *Router {
	return &Router{
		events: make(chan event, eventCapacity),
	}
}

func (r *Router) Post(id EventId, data interface{}) error {
	select {
	case r.events <- event{id, data}:
		r.postCount.Add(1)
		return nil
	default:
		r.postFails.Add(1)
		return errors.New("event capacity reached")
	}
}

// Exec drains the event queue until ctx is canceled. The returned channel
// yields the terminal error exactly once.
func (r *Router) Exec(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	r.startTime = time.Now()

	go func() {
		for {
			select {
			case <-ctx.Done():
				done <- ctx.Err()
				return
			case ev := <-r.events:
				r.dispatchCount.Add(1)
				if err := r.dispatch(ctx, ev); err != nil {
					r.dispatchFails.Add(1)
					slog.Warn("dispatch failed", "error", err, "event", ev.id.String())
				}
			}
		}
	}()

	return done
}

func (r *Router) PrintStatistics() {
	runTime := time.Since(r.startTime)
	slog.Info("router statistics",
		"run_time", fmt.Sprintf("%.2fs", runTime.Seconds()),
		"post_count", r.postCount.Load(),
		"post_fails", r.postFails.Load(),
		"dispatch_count", r.dispatchCount.Load(),
		"dispatch_fails", r.dispatchFails.Load(),
		"throughput", fmt.Sprintf("%.2f", float64(r.postCount.Load())/runTime.Seconds()))
}

func (r *Router) dispatch(ctx context.Context, ev event) error {
	switch ev.id {
	case TickEvent:
		tick, ok := ev.data.(common.MarketTick)
		if !ok {
			return errors.New("invalid type assertion for tick event")
		}
		if r.OnTick != nil {
			r.OnTick(ctx, tick)
		}
	case StateChangeEvent:
		sc, ok := ev.data.(common.StateChange)
		if !ok {
			return errors.New("invalid type assertion for state change event")
		}
		if r.OnStateChange != nil {
			r.OnStateChange(ctx, sc)
		}
	case DiagnosticEvent:
		diag, ok := ev.data.(common.Diagnostic)
		if !ok {
			return errors.New("invalid type assertion for diagnostic event")
		}
		if r.OnDiagnostic != nil {
			r.OnDiagnostic(ctx, diag)
		}
	default:
		return fmt.Errorf("unsupported event id: %v", ev.id)
	}
	return nil
}
