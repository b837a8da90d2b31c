package dedup

import "github.com/refdex/refdex/internal/record"

// MergeStrategies unions the group sets produced by two detection
// strategies. Groups from b whose primary is unknown in a are
// appended; groups sharing a primary have their duplicates unioned by
// record ID. The earlier group's score and matching fields win.
func MergeStrategies(a, b []Group) []Group {
	merged := make([]Group, len(a))
	byPrimary := make(map[string]int, len(a))
	for i, g := range a {
		merged[i] = g
		byPrimary[g.Primary.ID] = i
	}

	for _, g := range b {
		idx, ok := byPrimary[g.Primary.ID]
		if !ok {
			byPrimary[g.Primary.ID] = len(merged)
			merged = append(merged, g)
			continue
		}

		seen := make(map[string]bool, len(merged[idx].Duplicates))
		for _, d := range merged[idx].Duplicates {
			seen[d.ID] = true
		}
		for _, d := range g.Duplicates {
			if !seen[d.ID] {
				merged[idx].Duplicates = append(merged[idx].Duplicates, d)
				seen[d.ID] = true
			}
		}
	}

	return merged
}

// totalDuplicates counts the duplicate records across all groups.
func totalDuplicates(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Duplicates)
	}
	return n
}

// summarize converts groups to their serializable form.
func summarize(groups []Group) []GroupResult {
	out := make([]GroupResult, len(groups))
	for i, g := range groups {
		dups := make([]record.Summary, len(g.Duplicates))
		for j, d := range g.Duplicates {
			dups[j] = d.Summary()
		}
		fields := g.MatchingFields
		if fields == nil {
			fields = []string{}
		}
		out[i] = GroupResult{
			Primary:         g.Primary.Summary(),
			Duplicates:      dups,
			SimilarityScore: g.Score,
			MatchingFields:  fields,
		}
	}
	return out
}
