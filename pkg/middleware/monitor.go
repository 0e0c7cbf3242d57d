package middleware

import (
	"context"
	"log/slog"

	"github.com/shi0rik0/ctp-api-md-demo/pkg/bus"
	"github.com/shi0rik0/ctp-api-md-demo/pkg/common"
)

type MonitorFlags uint8

const (
	MonitorNone MonitorFlags = 1 << iota
	MonitorAll
	MonitorTicks
	MonitorStateChanges
	MonitorDiagnostics
)

type Monitor struct {
	flags MonitorFlags
}

func NewMonitor(flags MonitorFlags) *Monitor {
	return &Monitor{
		flags: flags,
	}
}

func (m *Monitor) WithTick(handler bus.TickEventHandler) bus.TickEventHandler {
	return func(ctx context.Context, tick common.MarketTick) {
		if m.flags&MonitorTicks != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "tick", tick)
		}
		handler(ctx, tick)
	}
}

func (m *Monitor) WithStateChange(handler bus.StateChangeEventHandler) bus.StateChangeEventHandler {
	return func(ctx context.Context, sc common.StateChange) {
		if m.flags&MonitorStateChanges != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "state_change", sc)
		}
		handler(ctx, sc)
	}
}

func (m *Monitor) WithDiagnostic(handler bus.DiagnosticEventHandler) bus.DiagnosticEventHandler {
	return func(ctx context.Context, diag common.Diagnostic) {
		if m.flags&MonitorDiagnostics != 0 || m.flags&MonitorAll != 0 {
			switch diag.Severity {
			case common.SeverityError:
				slog.Error("event", "diagnostic", diag)
			case common.SeverityWarn:
				slog.Warn("event", "diagnostic", diag)
			default:
				slog.Info("event", "diagnostic", diag)
			}
		}
		handler(ctx, diag)
	}
}
