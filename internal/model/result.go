package model

import "time"

// Outcome classifies the result of fetching and persisting one symbol.
type Outcome string

const (
	OutcomeSaved          Outcome = "SAVED"
	OutcomeAPIError       Outcome = "API_ERROR"
	OutcomeRateLimited    Outcome = "RATE_LIMITED"
	OutcomeInfo           Outcome = "INFO"
	OutcomeMissingSeries  Outcome = "MISSING_SERIES"
	OutcomeTransportError Outcome = "TRANSPORT_ERROR"
	OutcomeParseError     Outcome = "PARSE_ERROR"
	OutcomeWriteError     Outcome = "WRITE_ERROR"
)

// Result is the per-symbol outcome of one run iteration.
type Result struct {
	Symbol  string
	Label   string
	Outcome Outcome
	Message string
	Path    string // set only when Outcome is OutcomeSaved
}

// Summary aggregates the results of one run.
type Summary struct {
	Results    []Result
	Total      int // registry size, even if the run was cut short
	StartedAt  time.Time
	FinishedAt time.Time
}

// Succeeded returns how many symbols were fetched and persisted.
func (s *Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == OutcomeSaved {
			n++
		}
	}
	return n
}
