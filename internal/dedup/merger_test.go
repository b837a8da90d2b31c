package dedup

import (
	"testing"

	"github.com/refdex/refdex/internal/record"
)

func rec(id string) record.Record {
	return record.Record{ID: id, Title: "title " + id}
}

func TestMergeStrategies_DisjointPrimaries(t *testing.T) {
	a := []Group{{Primary: rec("p1"), Duplicates: []record.Record{rec("d1")}, Score: 0.9}}
	b := []Group{{Primary: rec("p2"), Duplicates: []record.Record{rec("d2")}, Score: 0.95}}

	merged := MergeStrategies(a, b)
	if len(merged) != 2 {
		t.Fatalf("got %d groups, want 2", len(merged))
	}
	if merged[0].Primary.ID != "p1" || merged[1].Primary.ID != "p2" {
		t.Errorf("primaries = %s, %s; want p1, p2", merged[0].Primary.ID, merged[1].Primary.ID)
	}
}

func TestMergeStrategies_UnionsSharedPrimary(t *testing.T) {
	a := []Group{{
		Primary:        rec("p1"),
		Duplicates:     []record.Record{rec("d1"), rec("d2")},
		Score:          0.9,
		MatchingFields: []string{"title"},
	}}
	b := []Group{{
		Primary:        rec("p1"),
		Duplicates:     []record.Record{rec("d2"), rec("d3")},
		Score:          0.95,
		MatchingFields: []string{"judgment"},
	}}

	merged := MergeStrategies(a, b)
	if len(merged) != 1 {
		t.Fatalf("got %d groups, want 1", len(merged))
	}

	g := merged[0]
	ids := make(map[string]bool)
	for _, d := range g.Duplicates {
		if ids[d.ID] {
			t.Errorf("duplicate %s appears twice", d.ID)
		}
		ids[d.ID] = true
	}
	for _, id := range []string{"d1", "d2", "d3"} {
		if !ids[id] {
			t.Errorf("missing duplicate %s", id)
		}
	}

	// First strategy wins on score and fields.
	if g.Score != 0.9 {
		t.Errorf("score = %v, want 0.9", g.Score)
	}
	if len(g.MatchingFields) != 1 || g.MatchingFields[0] != "title" {
		t.Errorf("MatchingFields = %v, want [title]", g.MatchingFields)
	}
}

func TestMergeStrategies_EmptyInputs(t *testing.T) {
	a := []Group{{Primary: rec("p1"), Duplicates: []record.Record{rec("d1")}}}

	if got := MergeStrategies(nil, a); len(got) != 1 {
		t.Errorf("MergeStrategies(nil, a) = %d groups, want 1", len(got))
	}
	if got := MergeStrategies(a, nil); len(got) != 1 {
		t.Errorf("MergeStrategies(a, nil) = %d groups, want 1", len(got))
	}
	if got := MergeStrategies(nil, nil); len(got) != 0 {
		t.Errorf("MergeStrategies(nil, nil) = %d groups, want 0", len(got))
	}
}

func TestTotalDuplicates(t *testing.T) {
	groups := []Group{
		{Primary: rec("p1"), Duplicates: []record.Record{rec("d1"), rec("d2")}},
		{Primary: rec("p2"), Duplicates: []record.Record{rec("d3")}},
	}
	if got := totalDuplicates(groups); got != 3 {
		t.Errorf("totalDuplicates = %d, want 3", got)
	}
}

func TestSummarize_NilFieldsBecomeEmpty(t *testing.T) {
	groups := []Group{{Primary: rec("p1"), Duplicates: []record.Record{rec("d1")}, Score: 0.9}}

	out := summarize(groups)
	if len(out) != 1 {
		t.Fatalf("got %d results, want 1", len(out))
	}
	if out[0].MatchingFields == nil {
		t.Error("MatchingFields is nil, want empty slice for JSON output")
	}
	if out[0].Primary.ID != "p1" {
		t.Errorf("primary = %s, want p1", out[0].Primary.ID)
	}
}
