package dedup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/refdex/refdex/internal/judge"
	"github.com/refdex/refdex/internal/record"
)

// Detection methods.
const (
	MethodRuleBased = "rule_based"
	MethodJudgment  = "judgment_assisted"
	MethodHybrid    = "hybrid"
)

const (
	// DefaultThreshold is the grouping cutoff when the caller does not
	// choose one.
	DefaultThreshold = 0.85

	// hybridJudgmentThreshold is the stricter cutoff applied to the
	// judgment leg of a hybrid run.
	hybridJudgmentThreshold = 0.9
)

// ErrInvalidThreshold is returned for thresholds outside [0, 1]. This
// is the one caller error the detector rejects up front; every service
// failure during a run is recovered locally.
var ErrInvalidThreshold = errors.New("threshold must be between 0 and 1")

// Options configures a detection run.
type Options struct {
	Threshold  float64
	Method     string
	AutoMerge  bool
	Classifier judge.Classifier // required for judgment methods; nil falls back to rule-based
	Store      Store            // required when AutoMerge is set
}

// DefaultOptions returns the standard detection configuration.
func DefaultOptions() Options {
	return Options{
		Threshold: DefaultThreshold,
		Method:    MethodHybrid,
	}
}

// Result is the JSON-serializable outcome of a detection run.
type Result struct {
	Success         bool          `json:"success"`
	Groups          []GroupResult `json:"duplicate_groups"`
	TotalDuplicates int           `json:"total_duplicates"`
	Method          string        `json:"method"`
	Threshold       float64       `json:"threshold"`
	Timestamp       string        `json:"timestamp"`
	Message         string        `json:"message,omitempty"`
	AutoMerged      bool          `json:"auto_merged,omitempty"`
	MergedCount     int           `json:"merged_count,omitempty"`
}

// GroupResult is the serialized form of one duplicate group.
type GroupResult struct {
	Primary         record.Summary   `json:"primary"`
	Duplicates      []record.Summary `json:"duplicates"`
	SimilarityScore float64          `json:"similarity_score"`
	MatchingFields  []string         `json:"matching_fields"`
}

// Detect runs duplicate detection over the given records, which must
// all be unmarked (DuplicateOf empty); already-flagged duplicates are
// excluded from re-comparison by the caller's query. Hybrid runs merge
// the rule-based groups with judgment groups computed at the stricter
// hybrid threshold. With AutoMerge set, detected groups are applied to
// the store and the marked count reported.
func Detect(ctx context.Context, records []record.Record, opts Options) (*Result, error) {
	if opts.Threshold < 0 || opts.Threshold > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, opts.Threshold)
	}
	method := opts.Method
	if method == "" {
		method = MethodHybrid
	}

	result := &Result{
		Success:   true,
		Groups:    []GroupResult{},
		Method:    method,
		Threshold: opts.Threshold,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if len(records) < 2 {
		result.Message = "fewer than 2 records, nothing to compare"
		return result, nil
	}

	var groups []Group
	var err error
	switch method {
	case MethodRuleBased:
		groups, err = GroupRuleBased(ctx, records, opts.Threshold)
	case MethodJudgment:
		groups, err = GroupAssisted(ctx, opts.Classifier, records, opts.Threshold)
	case MethodHybrid:
		var ruleGroups, judgeGroups []Group
		ruleGroups, err = GroupRuleBased(ctx, records, opts.Threshold)
		if err == nil {
			strict := opts.Threshold
			if strict < hybridJudgmentThreshold {
				strict = hybridJudgmentThreshold
			}
			judgeGroups, err = GroupAssisted(ctx, opts.Classifier, records, strict)
		}
		groups = MergeStrategies(ruleGroups, judgeGroups)
	default:
		return nil, fmt.Errorf("unknown detection method %q", method)
	}
	if err != nil {
		return nil, err
	}

	result.Groups = summarize(groups)
	result.TotalDuplicates = totalDuplicates(groups)

	if opts.AutoMerge {
		if opts.Store == nil {
			return nil, fmt.Errorf("auto-merge requires a record store")
		}
		merged, err := ApplyMerges(opts.Store, groups)
		if err != nil {
			return nil, err
		}
		result.AutoMerged = true
		result.MergedCount = merged
	}

	return result, nil
}
