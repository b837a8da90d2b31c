package dedup

import (
	"context"
	"log/slog"
	"strings"

	"github.com/refdex/refdex/internal/judge"
	"github.com/refdex/refdex/internal/record"
)

const (
	// MaxJudgmentBatch caps how many records are sent to the judgment
	// service in one run. Larger sets only have their first
	// MaxJudgmentBatch records judged; hybrid mode covers the rest
	// through the rule-based pass.
	MaxJudgmentBatch = 20

	// judgmentAbstractLen truncates abstracts in record summaries.
	judgmentAbstractLen = 300
)

// GroupAssisted delegates grouping to the judgment service and
// converts its verdicts into groups, keeping only verdicts whose
// confidence meets threshold. On any service failure (unreachable,
// malformed response, nil classifier) it falls back to GroupRuleBased
// with the same threshold; the fallback is logged, never surfaced as
// an error.
func GroupAssisted(ctx context.Context, cls judge.Classifier, records []record.Record, threshold float64) ([]Group, error) {
	if cls == nil {
		slog.Warn("no judgment classifier configured, falling back to rule-based grouping",
			"records", len(records))
		return GroupRuleBased(ctx, records, threshold)
	}

	batch := records
	if len(batch) > MaxJudgmentBatch {
		slog.Info("judgment batch capped",
			"records", len(records), "batch", MaxJudgmentBatch)
		batch = batch[:MaxJudgmentBatch]
	}

	summaries := make([]judge.RecordSummary, len(batch))
	for i, r := range batch {
		summaries[i] = judge.RecordSummary{
			Index:    i,
			ID:       r.ID,
			Title:    r.Title,
			Authors:  strings.Join(r.Authors, "; "),
			Journal:  r.Journal,
			Year:     r.Year,
			DOI:      r.DOI,
			Abstract: r.TruncateAbstract(judgmentAbstractLen),
		}
	}

	outcome := cls.Classify(ctx, summaries)
	if outcome.Status != judge.StatusOK {
		slog.Warn("judgment service failed, falling back to rule-based grouping",
			"status", outcome.Status.String(), "error", outcome.Err, "records", len(records))
		return GroupRuleBased(ctx, records, threshold)
	}

	var groups []Group
	for _, v := range outcome.Verdicts {
		if v.Confidence < threshold {
			continue
		}
		if v.PrimaryIndex < 0 || v.PrimaryIndex >= len(batch) {
			slog.Warn("judgment verdict references record outside batch, skipping",
				"primary_index", v.PrimaryIndex, "batch", len(batch))
			continue
		}

		duplicates := make([]record.Record, 0, len(v.DuplicateIndexes))
		for _, idx := range v.DuplicateIndexes {
			if idx < 0 || idx >= len(batch) || idx == v.PrimaryIndex {
				slog.Warn("judgment verdict references record outside batch, skipping",
					"duplicate_index", idx, "batch", len(batch))
				continue
			}
			duplicates = append(duplicates, batch[idx])
		}
		if len(duplicates) == 0 {
			continue
		}
		groups = append(groups, Group{
			Primary:        batch[v.PrimaryIndex],
			Duplicates:     duplicates,
			Score:          v.Confidence,
			MatchingFields: []string{"judgment"},
		})
	}

	return groups, nil
}
