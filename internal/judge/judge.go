// Package judge provides the external judgment-service boundary for
// duplicate detection: a narrow classify-batch interface, the
// structured verdicts it returns, and an Anthropic-backed
// implementation. Any backing model can be substituted; callers treat
// the service as optional and degrade to rule-based grouping when it
// is unavailable.
package judge

import "context"

// RecordSummary is the compact per-record payload sent to the
// judgment service. Index identifies the record within the batch and
// is how verdicts refer back to records.
type RecordSummary struct {
	Index    int    `json:"index"`
	ID       string `json:"id"`
	Title    string `json:"title"`
	Authors  string `json:"authors,omitempty"`
	Journal  string `json:"journal,omitempty"`
	Year     int    `json:"year,omitempty"`
	DOI      string `json:"doi,omitempty"`
	Abstract string `json:"abstract,omitempty"`
}

// Verdict is one duplicate group in the service's structured response.
// Indexes refer to RecordSummary.Index values from the request batch.
type Verdict struct {
	PrimaryIndex     int     `json:"primary_index"`
	DuplicateIndexes []int   `json:"duplicate_indexes"`
	Confidence       float64 `json:"confidence"`
	Reasoning        string  `json:"reasoning,omitempty"`
}

// Status tags a classification outcome.
type Status int

const (
	// StatusOK means the service returned parseable verdicts.
	StatusOK Status = iota
	// StatusUnavailable means the service could not be reached
	// (network, timeout, auth).
	StatusUnavailable
	// StatusMalformed means the service responded but the response
	// could not be parsed into verdicts.
	StatusMalformed
)

// String returns the status name for logging.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnavailable:
		return "unavailable"
	case StatusMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of a classification call. Verdicts is
// populated only when Status is StatusOK; Err carries the underlying
// cause for the other statuses.
type Outcome struct {
	Status   Status
	Verdicts []Verdict
	Err      error
}

// Classifier sends a batch of record summaries to a judgment service
// and returns its verdicts. Implementations must not panic on service
// failure; they report it through the Outcome status.
type Classifier interface {
	Classify(ctx context.Context, batch []RecordSummary) Outcome
}
