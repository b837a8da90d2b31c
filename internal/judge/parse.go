package judge

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Models wrap JSON in code fences or prose despite instructions not
// to; these patterns recover the payload. Pre-compiled because parsing
// happens on every classification call.
var (
	codeFenceRegex = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?([\\s\\S]*?)\\n?```")
	objectRegex    = regexp.MustCompile(`(?s)\{[\s\S]*\}`)
)

// verdictResponse is the expected top-level response shape.
type verdictResponse struct {
	Groups []Verdict `json:"groups"`
}

// parseVerdicts extracts and validates verdicts from raw response
// text. batchSize bounds the record indexes a verdict may reference.
// Any structural or semantic violation is an error; the caller maps it
// to StatusMalformed and falls back.
func parseVerdicts(text string, batchSize int) ([]Verdict, error) {
	payload := extractJSON(text)
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var resp verdictResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, fmt.Errorf("decoding verdicts: %w", err)
	}

	for i, v := range resp.Groups {
		if v.Confidence < 0 || v.Confidence > 1 {
			return nil, fmt.Errorf("verdict %d: confidence %.2f outside [0,1]", i, v.Confidence)
		}
		if v.PrimaryIndex < 0 || v.PrimaryIndex >= batchSize {
			return nil, fmt.Errorf("verdict %d: primary index %d outside batch of %d", i, v.PrimaryIndex, batchSize)
		}
		if len(v.DuplicateIndexes) == 0 {
			return nil, fmt.Errorf("verdict %d: no duplicate indexes", i)
		}
		for _, d := range v.DuplicateIndexes {
			if d < 0 || d >= batchSize {
				return nil, fmt.Errorf("verdict %d: duplicate index %d outside batch of %d", i, d, batchSize)
			}
			if d == v.PrimaryIndex {
				return nil, fmt.Errorf("verdict %d: record %d is its own primary", i, d)
			}
		}
	}

	return resp.Groups, nil
}

// extractJSON returns the JSON object embedded in text, unwrapping a
// markdown code fence if present.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	if m := codeFenceRegex.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	if strings.HasPrefix(text, "{") {
		return text
	}
	return objectRegex.FindString(text)
}
