package collector

import "fmt"

// APIError is an explicit error message reported by the data provider.
type APIError struct {
	Message string
}

func (e *APIError) Error() string { return "provider error: " + e.Message }

// RateLimitError indicates the provider rejected the call for exceeding its
// call-frequency ceiling. The run skips the symbol; no retry is attempted.
type RateLimitError struct {
	Note string
}

func (e *RateLimitError) Error() string { return "rate limited: " + e.Note }

// InfoError carries an informational message returned in place of data.
// It is treated like an error: the symbol is skipped.
type InfoError struct {
	Message string
}

func (e *InfoError) Error() string { return "provider info: " + e.Message }

// MissingSeriesError indicates a well-formed response without the expected
// series key.
type MissingSeriesError struct {
	Key string
}

func (e *MissingSeriesError) Error() string {
	return fmt.Sprintf("missing expected key %q in response", e.Key)
}

// ParseError wraps a JSON decode failure and keeps a truncated body excerpt
// for diagnosis.
type ParseError struct {
	Err     error
	Excerpt string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse response: %v (body: %s)", e.Err, e.Excerpt)
}

func (e *ParseError) Unwrap() error { return e.Err }
