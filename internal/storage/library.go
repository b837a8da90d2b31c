package storage

import (
	"fmt"
	"time"

	"github.com/refdex/refdex/internal/record"
)

// Library is the persistent record collection: an in-memory view of
// records.jsonl with write-through to both the JSONL file and the
// SQLite cache. It implements the merge executor's store contract.
type Library struct {
	path    string
	db      *DB // may be nil when no cache is open
	records []record.Record
	byID    map[string]int
}

// OpenLibrary loads records.jsonl into memory. db may be nil; updates
// then only touch the JSONL file.
func OpenLibrary(jsonlPath string, db *DB) (*Library, error) {
	records, err := ReadAll(jsonlPath)
	if err != nil {
		return nil, err
	}

	l := &Library{
		path:    jsonlPath,
		db:      db,
		records: records,
		byID:    make(map[string]int, len(records)),
	}
	for i, rec := range records {
		l.byID[rec.ID] = i
	}
	return l, nil
}

// DB returns the SQLite cache, or nil when none is open.
func (l *Library) DB() *DB {
	return l.db
}

// Close closes the SQLite cache if one is open.
func (l *Library) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// Get returns the record with the given ID.
func (l *Library) Get(id string) (record.Record, bool) {
	i, ok := l.byID[id]
	if !ok {
		return record.Record{}, false
	}
	return l.records[i], true
}

// All returns every record in the library.
func (l *Library) All() []record.Record {
	return l.records
}

// Unmarked returns the records eligible for duplicate detection:
// those not already marked as a duplicate of another record.
func (l *Library) Unmarked() []record.Record {
	var out []record.Record
	for _, rec := range l.records {
		if rec.IsPrimary() {
			out = append(out, rec)
		}
	}
	return out
}

// Add appends a new record to the library and persists it.
func (l *Library) Add(rec record.Record) error {
	if _, exists := l.byID[rec.ID]; exists {
		return fmt.Errorf("record %q already exists", rec.ID)
	}

	if err := Append(l.path, rec); err != nil {
		return err
	}
	if l.db != nil {
		if err := l.db.Upsert(rec); err != nil {
			return err
		}
	}

	l.byID[rec.ID] = len(l.records)
	l.records = append(l.records, rec)
	return nil
}

// Update replaces an existing record and persists the full JSONL file.
func (l *Library) Update(rec record.Record) error {
	i, ok := l.byID[rec.ID]
	if !ok {
		return fmt.Errorf("record %q not found", rec.ID)
	}

	l.records[i] = rec
	if err := WriteAll(l.path, l.records); err != nil {
		return err
	}
	if l.db != nil {
		return l.db.Upsert(rec)
	}
	return nil
}

// MarkDuplicate points a record at its primary with the recorded
// score. The operation is a set, not an append: re-marking with the
// same arguments leaves the same state.
//
// Records already pointing at id are re-pointed at primaryID in the
// same call, so a duplicateOf chain never exceeds depth one. Updated
// records are appended to the JSONL journal; ReadAll keeps the last
// line per id.
func (l *Library) MarkDuplicate(id, primaryID string, score float64, at time.Time) error {
	i, ok := l.byID[id]
	if !ok {
		return fmt.Errorf("record %q not found", id)
	}
	p, ok := l.byID[primaryID]
	if !ok {
		return fmt.Errorf("primary record %q not found", primaryID)
	}
	if id == primaryID {
		return fmt.Errorf("record %q cannot be a duplicate of itself", id)
	}
	if !l.records[p].IsPrimary() {
		return fmt.Errorf("primary record %q is itself marked as a duplicate of %q",
			primaryID, l.records[p].DuplicateOf)
	}

	l.records[i].DuplicateOf = primaryID
	l.records[i].SimilarityScore = score
	l.records[i].UpdatedAt = at
	changed := []record.Record{l.records[i]}

	for j := range l.records {
		if l.records[j].DuplicateOf == id {
			l.records[j].DuplicateOf = primaryID
			l.records[j].UpdatedAt = at
			changed = append(changed, l.records[j])
		}
	}

	for _, rec := range changed {
		if err := Append(l.path, rec); err != nil {
			return err
		}
	}
	if l.db != nil {
		return l.db.MarkDuplicate(id, primaryID, score, at)
	}
	return nil
}

// ClearDuplicate reverses a mark, restoring the record to primary
// status.
func (l *Library) ClearDuplicate(id string, at time.Time) error {
	i, ok := l.byID[id]
	if !ok {
		return fmt.Errorf("record %q not found", id)
	}

	l.records[i].DuplicateOf = ""
	l.records[i].SimilarityScore = 0
	l.records[i].UpdatedAt = at

	if err := Append(l.path, l.records[i]); err != nil {
		return err
	}
	if l.db != nil {
		return l.db.ClearDuplicate(id, at)
	}
	return nil
}
