package dedup

import (
	"github.com/refdex/refdex/internal/record"
	"github.com/refdex/refdex/internal/similarity"
)

// Field weights for the aggregate score. Title dominates; DOI and the
// author list carry medium weight; journal and year break ties.
const (
	weightTitle   = 3.0
	weightAuthors = 2.0
	weightDOI     = 2.0
	weightJournal = 1.0
	weightYear    = 1.0
)

// Per-field thresholds above which a field is reported in
// MatchingFields. Every field present in both records contributes to
// the aggregate score whether or not it clears its threshold.
const (
	matchTitle   = 0.8
	matchAuthors = 0.7
	matchJournal = 0.9
)

// Compare computes the weighted aggregate similarity of two records.
// Only fields present in both records enter the weighted average;
// records sharing no populated fields score 0. DOI and year are scored
// as exact matches (1 or 0) while title, authors, and journal are
// continuous.
func Compare(a, b record.Record) Comparison {
	var weightedSum, totalWeight float64
	var matching []string

	if a.Title != "" && b.Title != "" {
		sim := similarity.StringSimilarity(a.Title, b.Title)
		weightedSum += weightTitle * sim
		totalWeight += weightTitle
		if sim > matchTitle {
			matching = append(matching, "title")
		}
	}

	if len(a.Authors) > 0 && len(b.Authors) > 0 {
		sim := similarity.ListSimilarity(a.Authors, b.Authors)
		weightedSum += weightAuthors * sim
		totalWeight += weightAuthors
		if sim > matchAuthors {
			matching = append(matching, "authors")
		}
	}

	if a.DOI != "" && b.DOI != "" {
		var sim float64
		if a.DOI == b.DOI {
			sim = 1
			matching = append(matching, "doi")
		}
		weightedSum += weightDOI * sim
		totalWeight += weightDOI
	}

	if a.Journal != "" && b.Journal != "" {
		sim := similarity.StringSimilarity(a.Journal, b.Journal)
		weightedSum += weightJournal * sim
		totalWeight += weightJournal
		if sim > matchJournal {
			matching = append(matching, "journal")
		}
	}

	if a.Year != 0 && b.Year != 0 {
		var sim float64
		if a.Year == b.Year {
			sim = 1
			matching = append(matching, "year")
		}
		weightedSum += weightYear * sim
		totalWeight += weightYear
	}

	if totalWeight == 0 {
		return Comparison{Score: 0}
	}
	return Comparison{
		Score:          weightedSum / totalWeight,
		MatchingFields: matching,
	}
}
