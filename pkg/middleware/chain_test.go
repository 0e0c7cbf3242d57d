package middleware

import (
	"context"
	"testing"

	"github.com/shi0rik0/ctp-api-md-demo/pkg/bus"
	"github.com/shi0rik0/ctp-api-md-demo/pkg/common"
)

func TestMiddlewareChain_Order(t *testing.T) {
	var order []string

	wrap := func(name string) func(bus.TickEventHandler) bus.TickEventHandler {
		return func(next bus.TickEventHandler) bus.TickEventHandler {
			return func(ctx context.Context, tick common.MarketTick) {
				order = append(order, name)
				next(ctx, tick)
			}
		}
	}

	handler := Chain(wrap("outer"), wrap("inner"))(func(ctx context.Context, tick common.MarketTick) {
		order = append(order, "terminal")
	})
	handler(context.Background(), common.MarketTick{})

	want := []string{"outer", "inner", "terminal"}
	if len(order) != len(want) {
		t.Fatalf("Expected %d calls, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Call %d = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestMiddlewareTelemetry_Counters(t *testing.T) {
	telemetry := NewTelemetry()

	tickHdl := telemetry.WithTick(NoopTickHdl)
	diagHdl := telemetry.WithDiagnostic(NoopDiagnosticHdl)

	ctx := context.Background()
	tickHdl(ctx, common.MarketTick{})
	tickHdl(ctx, common.MarketTick{})
	diagHdl(ctx, common.Diagnostic{Severity: common.SeverityError})
	diagHdl(ctx, common.Diagnostic{Severity: common.SeverityInfo})

	if got := telemetry.tickEventCounter.Load(); got != 2 {
		t.Errorf("Expected 2 tick events, got %d", got)
	}
	if got := telemetry.diagnosticEventCounter.Load(); got != 2 {
		t.Errorf("Expected 2 diagnostic events, got %d", got)
	}
	if got := telemetry.errorDiagnosticCounter.Load(); got != 1 {
		t.Errorf("Expected 1 error diagnostic, got %d", got)
	}
}
