package utility

import (
	"sync"

	"github.com/google/uuid"
)

// ExecutionID identifies one process run. Every diagnostic and state-change
// event of a run carries the same id.
type ExecutionID = uuid.UUID

var (
	executionID     ExecutionID
	executionIDOnce sync.Once
)

func GetExecutionID() ExecutionID {
	executionIDOnce.Do(func() {
		executionID = uuid.Must(uuid.NewV7())
	})
	return executionID
}
