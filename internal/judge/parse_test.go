package judge

import (
	"testing"
)

func TestParseVerdicts_PlainJSON(t *testing.T) {
	text := `{"groups":[{"primary_index":0,"duplicate_indexes":[2,3],"confidence":0.95,"reasoning":"same DOI"}]}`

	verdicts, err := parseVerdicts(text, 5)
	if err != nil {
		t.Fatalf("parseVerdicts: %v", err)
	}
	if len(verdicts) != 1 {
		t.Fatalf("got %d verdicts, want 1", len(verdicts))
	}

	v := verdicts[0]
	if v.PrimaryIndex != 0 {
		t.Errorf("PrimaryIndex = %d, want 0", v.PrimaryIndex)
	}
	if len(v.DuplicateIndexes) != 2 || v.DuplicateIndexes[0] != 2 || v.DuplicateIndexes[1] != 3 {
		t.Errorf("DuplicateIndexes = %v, want [2 3]", v.DuplicateIndexes)
	}
	if v.Confidence != 0.95 {
		t.Errorf("Confidence = %v, want 0.95", v.Confidence)
	}
	if v.Reasoning != "same DOI" {
		t.Errorf("Reasoning = %q, want %q", v.Reasoning, "same DOI")
	}
}

func TestParseVerdicts_CodeFenced(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"json fence", "```json\n{\"groups\":[{\"primary_index\":1,\"duplicate_indexes\":[0],\"confidence\":0.9}]}\n```"},
		{"bare fence", "```\n{\"groups\":[{\"primary_index\":1,\"duplicate_indexes\":[0],\"confidence\":0.9}]}\n```"},
		{"prose wrapped", "Here are the duplicate groups I found:\n\n{\"groups\":[{\"primary_index\":1,\"duplicate_indexes\":[0],\"confidence\":0.9}]}\n\nLet me know if you need anything else."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdicts, err := parseVerdicts(tt.text, 3)
			if err != nil {
				t.Fatalf("parseVerdicts: %v", err)
			}
			if len(verdicts) != 1 || verdicts[0].PrimaryIndex != 1 {
				t.Errorf("verdicts = %+v, want one with primary 1", verdicts)
			}
		})
	}
}

func TestParseVerdicts_EmptyGroups(t *testing.T) {
	verdicts, err := parseVerdicts(`{"groups": []}`, 5)
	if err != nil {
		t.Fatalf("parseVerdicts: %v", err)
	}
	if len(verdicts) != 0 {
		t.Errorf("got %d verdicts, want 0", len(verdicts))
	}
}

func TestParseVerdicts_Invalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no json", "I could not find any duplicate records in this batch."},
		{"truncated json", `{"groups":[{"primary_index":0,"duplic`},
		{"confidence above one", `{"groups":[{"primary_index":0,"duplicate_indexes":[1],"confidence":1.5}]}`},
		{"negative confidence", `{"groups":[{"primary_index":0,"duplicate_indexes":[1],"confidence":-0.2}]}`},
		{"primary out of range", `{"groups":[{"primary_index":9,"duplicate_indexes":[1],"confidence":0.9}]}`},
		{"duplicate out of range", `{"groups":[{"primary_index":0,"duplicate_indexes":[9],"confidence":0.9}]}`},
		{"no duplicates listed", `{"groups":[{"primary_index":0,"duplicate_indexes":[],"confidence":0.9}]}`},
		{"self primary", `{"groups":[{"primary_index":0,"duplicate_indexes":[0],"confidence":0.9}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseVerdicts(tt.text, 3); err == nil {
				t.Errorf("parseVerdicts(%q) succeeded, want error", tt.text)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"leading whitespace", "  \n {\"a\":1}", `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"embedded in prose", `The answer is {"a":1} as shown.`, `{"a":1}`},
		{"no object", "nothing here", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.text); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
