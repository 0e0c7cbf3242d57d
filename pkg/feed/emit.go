package feed

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/shi0rik0/ctp-api-md-demo/pkg/common"
)

// Emitter serializes canonical ticks into wire frames and writes them to a
// shared sink. The mutex is scoped to one framed write plus flush, so two
// frames can never interleave their bytes.
type Emitter struct {
	mu   sync.Mutex
	sink OutputSink
	buf  []byte
}

func NewEmitter(sink OutputSink) *Emitter {
	return &Emitter{sink: sink}
}

// Emit writes one frame for tick. Emission is best-effort: a failed write is
// reported to the caller and must not stop ingestion of subsequent ticks.
func (e *Emitter) Emit(tick common.MarketTick) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.buf = AppendFrame(e.buf[:0], tick)
	if _, err := e.sink.Write(e.buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	if err := e.sink.Flush(); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}
	return nil
}

// AppendFrame appends the wire representation of tick to b:
// "data: " + JSON object + "\n\n", with the nine fields in fixed order.
func AppendFrame(b []byte, t common.MarketTick) []byte {
	b = append(b, "data: {"...)
	b = append(b, `"InstrumentID":`...)
	b = appendJSONString(b, t.InstrumentID)
	b = append(b, `,"LastPrice":`...)
	b = appendPrice(b, t.LastPrice)
	b = append(b, `,"Volume":`...)
	b = strconv.AppendInt(b, t.Volume, 10)
	b = append(b, `,"BidPrice1":`...)
	b = appendPrice(b, t.BidPrice1)
	b = append(b, `,"BidVolume1":`...)
	b = strconv.AppendInt(b, t.BidVolume1, 10)
	b = append(b, `,"AskPrice1":`...)
	b = appendPrice(b, t.AskPrice1)
	b = append(b, `,"AskVolume1":`...)
	b = strconv.AppendInt(b, t.AskVolume1, 10)
	b = append(b, `,"UpdateTime":`...)
	b = appendJSONString(b, t.UpdateTime)
	b = append(b, `,"UpdateMillisec":`...)
	b = strconv.AppendInt(b, int64(t.UpdateMillisec), 10)
	b = append(b, "}\n\n"...)
	return b
}

// appendPrice renders a price with the shortest round-trip representation,
// keeping a decimal point for integral values so the field stays a float on
// the wire (3800 renders as 3800.0).
func appendPrice(b []byte, f float64) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, f, 'f', -1, 64)
	if !strings.ContainsAny(string(b[start:]), ".eE") {
		b = append(b, ".0"...)
	}
	return b
}

func appendJSONString(b []byte, s string) []byte {
	b = append(b, '"')
	for _, r := range []byte(s) {
		switch {
		case r == '"' || r == '\\':
			b = append(b, '\\', r)
		case r < 0x20:
			b = append(b, fmt.Sprintf(`\u%04x`, r)...)
		default:
			b = append(b, r)
		}
	}
	return append(b, '"')
}
