package middleware

import (
	"context"

	"github.com/shi0rik0/ctp-api-md-demo/pkg/common"
)

var (
	NoopTickHdl        = func(context.Context, common.MarketTick) {}
	NoopStateChangeHdl = func(context.Context, common.StateChange) {}
	NoopDiagnosticHdl  = func(context.Context, common.Diagnostic) {}
)
