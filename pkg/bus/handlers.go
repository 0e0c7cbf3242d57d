package bus

import (
	"context"

	"github.com/shi0rik0/ctp-api-md-demo/pkg/common"
)

type EventHandler[T any] = func(context.Context, T)

type TickEventHandler = EventHandler[common.MarketTick]
type StateChangeEventHandler = EventHandler[common.StateChange]
type DiagnosticEventHandler = EventHandler[common.Diagnostic]

func MergeHandlers[T any](handlers ...EventHandler[T]) EventHandler[T] {
	return func(ctx context.Context, event T) {
		for _, handler := range handlers {
			handler(ctx, event)
		}
	}
}
