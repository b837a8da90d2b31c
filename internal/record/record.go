// Package record defines the core domain types for literature records
// under review.
package record

import (
	"strings"
	"time"
)

// Record represents a bibliographic entry harvested from a literature
// source. A record with a non-empty DuplicateOf has been folded into
// another record and is excluded from further comparison.
type Record struct {
	// Identity
	ID        string `json:"id"`
	ProjectID string `json:"project_id,omitempty"`

	// Metadata
	Title    string   `json:"title"`
	Authors  []string `json:"authors,omitempty"`
	Journal  string   `json:"journal,omitempty"`
	Year     int      `json:"year,omitempty"`
	DOI      string   `json:"doi,omitempty"`
	PMID     string   `json:"pmid,omitempty"`
	Abstract string   `json:"abstract,omitempty"`

	// Deduplication state. DuplicateOf is a weak reference to the
	// primary record's ID; the target of a DuplicateOf pointer is
	// always itself unmarked (pointer depth is at most one).
	DuplicateOf     string    `json:"duplicate_of,omitempty"`
	SimilarityScore float64   `json:"similarity_score,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

// IsPrimary reports whether the record has not been marked as a
// duplicate of another record.
func (r Record) IsPrimary() bool {
	return r.DuplicateOf == ""
}

// Summary is the compact record representation used in detection
// results and judgment-service requests.
type Summary struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Authors []string `json:"authors,omitempty"`
	Journal string   `json:"journal,omitempty"`
	Year    int      `json:"year,omitempty"`
	DOI     string   `json:"doi,omitempty"`
}

// Summary returns the compact representation of the record.
func (r Record) Summary() Summary {
	return Summary{
		ID:      r.ID,
		Title:   r.Title,
		Authors: r.Authors,
		Journal: r.Journal,
		Year:    r.Year,
		DOI:     r.DOI,
	}
}

// TruncateAbstract returns the abstract cut to at most n runes.
func (r Record) TruncateAbstract(n int) string {
	runes := []rune(strings.TrimSpace(r.Abstract))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n]) + "..."
}
