package collector

import (
	"context"
	"encoding/json"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series map[string]json.RawMessage
	Err    error
	Calls  int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailySeries(_ context.Context, symbol string) (json.RawMessage, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if s, ok := m.Series[symbol]; ok {
		return s, nil
	}
	return nil, &MissingSeriesError{Key: keyDailySeries}
}
