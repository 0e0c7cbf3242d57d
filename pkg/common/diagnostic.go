package common

import (
	"time"

	"github.com/shi0rik0/ctp-api-md-demo/pkg/utility"
)

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Diagnostic is a structured observability event. Diagnostics travel on the
// bus, never on the streaming output channel.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     int      `json:"code,omitempty"`
	Message  string   `json:"message"`

	Source      string              `json:"src,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}
