package recorder

import "MarketFetch/internal/model"

// Recorder persists run history for later inspection.
type Recorder interface {
	RecordRun(sum *model.Summary) error
	Close() error
}
