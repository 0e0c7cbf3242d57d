package middleware

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/shi0rik0/ctp-api-md-demo/pkg/bus"
	"github.com/shi0rik0/ctp-api-md-demo/pkg/common"
)

type Telemetry struct {
	tickEventCounter        atomic.Int64
	stateChangeEventCounter atomic.Int64
	diagnosticEventCounter  atomic.Int64
	errorDiagnosticCounter  atomic.Int64
}

func NewTelemetry() *Telemetry {
	return &Telemetry{}
}

func (t *Telemetry) WithTick(handler bus.TickEventHandler) bus.TickEventHandler {
	return func(ctx context.Context, tick common.MarketTick) {
		t.tickEventCounter.Add(1)
		handler(ctx, tick)
	}
}

func (t *Telemetry) WithStateChange(handler bus.StateChangeEventHandler) bus.StateChangeEventHandler {
	return func(ctx context.Context, sc common.StateChange) {
		t.stateChangeEventCounter.Add(1)
		handler(ctx, sc)
	}
}

func (t *Telemetry) WithDiagnostic(handler bus.DiagnosticEventHandler) bus.DiagnosticEventHandler {
	return func(ctx context.Context, diag common.Diagnostic) {
		t.diagnosticEventCounter.Add(1)
		if diag.Severity == common.SeverityError {
			t.errorDiagnosticCounter.Add(1)
		}
		handler(ctx, diag)
	}
}

func (t *Telemetry) PrintStatistics() {
	slog.Info("event statistics",
		"tick_events", t.tickEventCounter.Load(),
		"state_change_events", t.stateChangeEventCounter.Load(),
		"diagnostic_events", t.diagnosticEventCounter.Load(),
		"error_diagnostics", t.errorDiagnosticCounter.Load())
}
