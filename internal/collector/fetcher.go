package collector

import (
	"context"
	"encoding/json"
)

// Fetcher defines the interface for retrieving a symbol's daily time series.
// The returned payload is the raw series object as delivered by the provider.
type Fetcher interface {
	FetchDailySeries(ctx context.Context, symbol string) (json.RawMessage, error)
	Name() string
}
