// Package similarity provides normalized similarity scoring for
// bibliographic field values.
package similarity

import "strings"

// listMatchThreshold is the per-element score above which two list
// entries (author names) are counted as a match.
const listMatchThreshold = 0.8

// normalize trims surrounding whitespace and lowercases a value so
// that case and padding differences do not register as edits.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// StringSimilarity returns the normalized Levenshtein similarity of
// two strings in [0, 1]: (maxLen - editDistance) / maxLen after
// normalization. Two empty strings are vacuously identical (1.0); one
// empty string scores 0.
func StringSimilarity(a, b string) float64 {
	a = normalize(a)
	b = normalize(b)
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	ar := []rune(a)
	br := []rune(b)
	maxLen := len(ar)
	if len(br) > maxLen {
		maxLen = len(br)
	}
	dist := levenshtein(ar, br)
	return float64(maxLen-dist) / float64(maxLen)
}

// ListSimilarity scores two string lists (author lists) in [0, 1].
// Each element of a is matched against its best counterpart in b; the
// result is the fraction of matches over the longer list. Two empty
// lists score 1.0; one empty list scores 0.
func ListSimilarity(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	matched := 0
	for _, s := range a {
		best := 0.0
		for _, t := range b {
			if v := StringSimilarity(s, t); v > best {
				best = v
			}
		}
		if best > listMatchThreshold {
			matched++
		}
	}

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return float64(matched) / float64(maxLen)
}

// levenshtein computes the edit distance between two rune slices using
// the two-row dynamic programming formulation (unit-cost insert,
// delete, substitute).
func levenshtein(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i, ca := range a {
		curr[0] = i + 1
		for j, cb := range b {
			ins := curr[j] + 1
			del := prev[j+1] + 1
			sub := prev[j]
			if ca != cb {
				sub++
			}
			curr[j+1] = min3(ins, del, sub)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
