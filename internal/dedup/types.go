// Package dedup implements the duplicate detection engine: pairwise
// record comparison, greedy grouping, judgment-assisted grouping with
// rule-based fallback, strategy merging, and idempotent application of
// detected groups to the record store.
package dedup

import (
	"github.com/refdex/refdex/internal/record"
)

// Group is a detected set of duplicate records: a primary (the
// canonical representative) plus the records judged to describe the
// same work. Groups are computed fresh on every detection run and are
// not persisted; only the executor's per-record marks survive.
type Group struct {
	Primary        record.Record
	Duplicates     []record.Record
	Score          float64
	MatchingFields []string
}

// Comparison is the result of comparing two records: the aggregate
// weighted score and the fields whose similarity cleared their
// per-field reporting threshold.
type Comparison struct {
	Score          float64
	MatchingFields []string
}
