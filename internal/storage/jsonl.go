// Package storage handles record persistence: records.jsonl as the
// git-versionable source of truth with an ephemeral SQLite cache for
// queries.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/refdex/refdex/internal/record"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL
// lines (1MB per line); abstracts can get long.
const MaxJSONLLineCapacity = 1024 * 1024

// ReadAll reads all records from a JSONL file. A missing file returns
// an empty slice. The file is a journal: a later line with an
// already-seen id replaces the earlier record in place, which lets
// update operations append deltas instead of rewriting the file.
func ReadAll(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening records file: %w", err)
	}
	defer f.Close()

	var records []record.Record
	byID := make(map[string]int)
	scanner := bufio.NewScanner(f)
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec record.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		if i, seen := byID[rec.ID]; seen {
			records[i] = rec
			continue
		}
		byID[rec.ID] = len(records)
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading records file: %w", err)
	}

	return records, nil
}

// WriteAll writes all records to a JSONL file, replacing existing
// content and compacting the journal to one line per record.
func WriteAll(path string, records []record.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating records file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing records file: %w", err)
	}

	return nil
}

// Append adds a record to the end of a JSONL file.
func Append(path string, rec record.Record) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening records file for append: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}

	return nil
}

// FindByID searches for a record by ID.
func FindByID(records []record.Record, id string) (int, bool) {
	for i, rec := range records {
		if rec.ID == id {
			return i, true
		}
	}
	return -1, false
}

// FindByDOI searches for a record by DOI.
func FindByDOI(records []record.Record, doi string) (int, bool) {
	if doi == "" {
		return -1, false
	}
	for i, rec := range records {
		if rec.DOI == doi {
			return i, true
		}
	}
	return -1, false
}

// FindByPMID searches for a record by external PMID.
func FindByPMID(records []record.Record, pmid string) (int, bool) {
	if pmid == "" {
		return -1, false
	}
	for i, rec := range records {
		if rec.PMID == pmid {
			return i, true
		}
	}
	return -1, false
}
