package common

import (
	"time"

	"github.com/shi0rik0/ctp-api-md-demo/pkg/utility"
)

type SessionState string

const (
	StateDisconnected   SessionState = "disconnected"
	StateConnecting     SessionState = "connecting"
	StateConnected      SessionState = "connected"
	StateAuthenticating SessionState = "authenticating"
	StateReady          SessionState = "ready"
)

// StateChange records one session state transition.
type StateChange struct {
	From   SessionState `json:"from"`
	To     SessionState `json:"to"`
	Reason string       `json:"reason,omitempty"`

	Source      string              `json:"src,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}
