package feed

import (
	"github.com/shi0rik0/ctp-api-md-demo/pkg/common"
)

// Normalize maps a vendor depth record onto the canonical tick. The front is
// known to occasionally deliver nil payloads; those report ok=false and the
// caller must skip emission.
func Normalize(raw *DepthMarketData) (common.MarketTick, bool) {
	if raw == nil {
		return common.MarketTick{}, false
	}
	return common.MarketTick{
		InstrumentID:   raw.InstrumentID,
		LastPrice:      raw.LastPrice,
		Volume:         raw.Volume,
		BidPrice1:      raw.BidPrice1,
		BidVolume1:     raw.BidVolume1,
		AskPrice1:      raw.AskPrice1,
		AskVolume1:     raw.AskVolume1,
		UpdateTime:     raw.UpdateTime,
		UpdateMillisec: raw.UpdateMillisec,
	}, true
}
