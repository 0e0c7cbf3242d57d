package common

// MarketTick is the canonical market snapshot for one instrument at one
// instant. Field names match the outbound wire frame exactly, so a frame body
// unmarshals back into the value that produced it.
type MarketTick struct {
	InstrumentID   string  `json:"InstrumentID"`
	LastPrice      float64 `json:"LastPrice"`
	Volume         int64   `json:"Volume"`
	BidPrice1      float64 `json:"BidPrice1"`
	BidVolume1     int64   `json:"BidVolume1"`
	AskPrice1      float64 `json:"AskPrice1"`
	AskVolume1     int64   `json:"AskVolume1"`
	UpdateTime     string  `json:"UpdateTime"`
	UpdateMillisec int32   `json:"UpdateMillisec"`
}
