package feed

// Credential is the static login material for one front session. It is
// supplied once at construction and never mutated.
type Credential struct {
	BrokerID string
	UserID   string
	Password string
}

// Result carries the vendor's status for one request. ErrorMsg holds the raw
// legacy-encoded bytes as delivered; decoding happens at the point of display.
type Result struct {
	ErrorID  int
	ErrorMsg []byte
}

func (r Result) OK() bool { return r.ErrorID == 0 }

// DepthMarketData is the vendor-shaped tick record as it arrives from the
// front. A nil record may be delivered on occasion and must be dropped.
type DepthMarketData struct {
	InstrumentID   string
	LastPrice      float64
	Volume         int64
	BidPrice1      float64
	BidVolume1     int64
	AskPrice1      float64
	AskVolume1     int64
	UpdateTime     string
	UpdateMillisec int32
}

// Transport is the request side of the vendor feed SDK. Every call is
// asynchronous: the returned error reports only whether the request was
// accepted for sending, and the outcome arrives later on the Handler surface.
type Transport interface {
	// Connect registers the front address and starts the transport's own
	// delivery thread. Connection results arrive via OnConnected.
	Connect(frontAddr string)
	Login(cred Credential, requestID int) error
	Logout(cred Credential, requestID int) error
	Subscribe(instruments []string) error
	Unsubscribe(instruments []string) error
	// TradingDay is only meaningful after a successful login.
	TradingDay() string
	// Release frees the transport. No callbacks are delivered afterwards.
	Release()
}

// Handler is the inbound callback surface. The transport invokes all
// callbacks on one dedicated thread, strictly serialized, so implementations
// need no locking between callbacks.
type Handler interface {
	OnConnected()
	OnDisconnected(reason int)
	OnHeartBeatWarning(lapse int)
	OnLoginResult(res Result, requestID int, isLast bool)
	OnLogoutResult(res Result, requestID int, isLast bool)
	OnSubscribeResult(instrument string, res Result, isLast bool)
	OnUnsubscribeResult(instrument string, res Result, isLast bool)
	OnError(res Result, isLast bool)
	OnTick(tick *DepthMarketData)
}
