package dedup

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/refdex/refdex/internal/record"
)

// Store is the subset of the record store the merge executor writes
// through: one lookup and one update per duplicate record.
type Store interface {
	// Get returns the record with the given ID, if present.
	Get(id string) (record.Record, bool)

	// MarkDuplicate points the record at its primary with the recorded
	// score. Marking is a set operation: repeating it with the same
	// arguments leaves the same state. Implementations must re-point
	// any records already marked as duplicates of id at primaryID, so
	// a duplicateOf chain never exceeds depth one across runs.
	MarkDuplicate(id, primaryID string, score float64, at time.Time) error
}

// ApplyMerges marks every duplicate in every group as a duplicate of
// its group's primary and returns the number of records marked.
//
// Before writing, each group's primary is re-checked against the
// store: if it was itself marked a duplicate by a concurrent run, the
// group's duplicates are pointed at that record's own primary instead,
// so a duplicate never points at another duplicate.
func ApplyMerges(store Store, groups []Group) (int, error) {
	merged := 0
	now := time.Now().UTC()

	for _, g := range groups {
		primaryID := g.Primary.ID

		if p, ok := store.Get(primaryID); ok && !p.IsPrimary() {
			slog.Warn("group primary was marked duplicate mid-run, re-pointing group",
				"primary", primaryID, "resolved", p.DuplicateOf)
			// One hop suffices: the stored pointer always targets a
			// genuine primary.
			primaryID = p.DuplicateOf
		}

		for _, d := range g.Duplicates {
			if d.ID == primaryID {
				continue
			}
			if err := store.MarkDuplicate(d.ID, primaryID, g.Score, now); err != nil {
				return merged, fmt.Errorf("marking %s as duplicate of %s: %w", d.ID, primaryID, err)
			}
			merged++
		}
	}

	return merged, nil
}
