package dedup

import (
	"context"

	"github.com/refdex/refdex/internal/record"
)

// GroupRuleBased groups records whose pairwise score meets threshold
// using a single greedy pass in input order. Each unprocessed record
// becomes a candidate primary and claims every later unprocessed
// record scoring at or above the threshold.
//
// This is not a transitive closure: if A matches B and B matches C but
// A does not directly match C, C stays outside A's group. The trade is
// deliberate; results are deterministic for a given input order.
//
// The context is checked between comparisons so large runs can be
// cancelled; on cancellation the partial result is discarded.
func GroupRuleBased(ctx context.Context, records []record.Record, threshold float64) ([]Group, error) {
	var groups []Group
	processed := make([]bool, len(records))

	for i := range records {
		if processed[i] {
			continue
		}

		var duplicates []record.Record
		var matchingFields []string
		maxScore := 0.0

		for j := i + 1; j < len(records); j++ {
			if processed[j] {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			cmp := Compare(records[i], records[j])
			if cmp.Score >= threshold {
				if len(duplicates) == 0 {
					matchingFields = cmp.MatchingFields
				}
				duplicates = append(duplicates, records[j])
				processed[j] = true
				if cmp.Score > maxScore {
					maxScore = cmp.Score
				}
			}
		}

		if len(duplicates) > 0 {
			groups = append(groups, Group{
				Primary:        records[i],
				Duplicates:     duplicates,
				Score:          maxScore,
				MatchingFields: matchingFields,
			})
			processed[i] = true
		}
	}

	return groups, nil
}
