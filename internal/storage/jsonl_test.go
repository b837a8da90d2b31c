package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/refdex/refdex/internal/record"
)

func sampleRecords() []record.Record {
	return []record.Record{
		{
			ID:        "r1",
			ProjectID: "proj-1",
			Title:     "Effects of Exercise on Cognition",
			Authors:   []string{"Smith J", "Jones A"},
			Journal:   "Nature Medicine",
			Year:      2021,
			DOI:       "10.1/ex",
			PMID:      "34000001",
			Abstract:  "A randomized trial of aerobic exercise.",
			UpdatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:              "r2",
			Title:           "Effects of Exercise on Cognition (preprint)",
			Authors:         []string{"Smith J"},
			DuplicateOf:     "r1",
			SimilarityScore: 0.93,
		},
	}
}

func TestWriteAllReadAll_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	want := sampleRecords()

	if err := WriteAll(path, want); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("roundtrip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestReadAll_MissingFile(t *testing.T) {
	records, err := ReadAll(filepath.Join(t.TempDir(), "absent.jsonl"))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if records != nil {
		t.Errorf("records = %v, want nil for missing file", records)
	}
}

func TestReadAll_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	content := `{"id":"r1","title":"A"}

{"id":"r2","title":"B"}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2", len(records))
	}
}

func TestReadAll_LastLineWinsPerID(t *testing.T) {
	// The file is a journal: marking operations append an updated line
	// for a record instead of rewriting the whole file.
	path := filepath.Join(t.TempDir(), "records.jsonl")
	content := `{"id":"r1","title":"A"}
{"id":"r2","title":"B"}
{"id":"r1","title":"A","duplicate_of":"r2","similarity_score":0.9}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 after compaction", len(records))
	}
	// The later line replaces the earlier one in place.
	if records[0].ID != "r1" || records[0].DuplicateOf != "r2" {
		t.Errorf("records[0] = %+v, want r1 with the journaled mark", records[0])
	}
	if records[0].SimilarityScore != 0.9 {
		t.Errorf("SimilarityScore = %v, want 0.9", records[0].SimilarityScore)
	}
}

func TestReadAll_ReportsLineNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	content := `{"id":"r1","title":"A"}
{broken
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadAll(path)
	if err == nil {
		t.Fatal("expected error for malformed line")
	}
	if got := err.Error(); !strings.Contains(got, "line 2") {
		t.Errorf("err = %q, want mention of line 2", got)
	}
}

func TestAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	recs := sampleRecords()

	if err := Append(path, recs[0]); err != nil {
		t.Fatalf("Append (creating): %v", err)
	}
	if err := Append(path, recs[1]); err != nil {
		t.Fatalf("Append (existing): %v", err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !reflect.DeepEqual(got, recs) {
		t.Errorf("appended records mismatch:\ngot  %+v\nwant %+v", got, recs)
	}
}

func TestFindHelpers(t *testing.T) {
	recs := sampleRecords()

	if i, ok := FindByID(recs, "r2"); !ok || i != 1 {
		t.Errorf("FindByID(r2) = %d, %v; want 1, true", i, ok)
	}
	if _, ok := FindByID(recs, "nope"); ok {
		t.Error("FindByID(nope) found a record")
	}

	if i, ok := FindByDOI(recs, "10.1/ex"); !ok || i != 0 {
		t.Errorf("FindByDOI = %d, %v; want 0, true", i, ok)
	}
	// Empty DOI must not match records that also have no DOI.
	if _, ok := FindByDOI(recs, ""); ok {
		t.Error("FindByDOI(\"\") matched")
	}

	if i, ok := FindByPMID(recs, "34000001"); !ok || i != 0 {
		t.Errorf("FindByPMID = %d, %v; want 0, true", i, ok)
	}
	if _, ok := FindByPMID(recs, ""); ok {
		t.Error("FindByPMID(\"\") matched")
	}
}
