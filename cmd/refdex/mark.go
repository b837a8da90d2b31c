package main

import (
	"fmt"
	"time"

	"github.com/refdex/refdex/internal/dedup"
	"github.com/refdex/refdex/internal/record"
	"github.com/spf13/cobra"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

var markScore float64

func init() {
	markCmd.Flags().Float64Var(&markScore, "score", 1.0, "Similarity score to record")
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(unmarkCmd)
}

var markCmd = &cobra.Command{
	Use:   "mark <duplicate-id> <primary-id>",
	Short: "Manually mark a record as a duplicate of another",
	Long: `Manually mark a record as a duplicate of a primary record.

Goes through the same merge path as detection: if the chosen primary
has itself been marked a duplicate, the mark is re-pointed at that
record's own primary.`,
	Args: cobra.ExactArgs(2),
	RunE: runMark,
}

var unmarkCmd = &cobra.Command{
	Use:   "unmark <id>",
	Short: "Reverse a duplicate mark",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnmark,
}

// MarkResponse reports the outcome of a mark operation.
type MarkResponse struct {
	Status      string  `json:"status"`
	ID          string  `json:"id"`
	DuplicateOf string  `json:"duplicate_of,omitempty"`
	Score       float64 `json:"score,omitempty"`
}

func runMark(cmd *cobra.Command, args []string) error {
	dupID, primaryID := args[0], args[1]
	if markScore < 0 || markScore > 1 {
		exitWithError(ExitError, "score must be between 0 and 1")
	}

	root := mustFindRepository()
	lib := mustOpenLibrary(root)
	defer lib.Close()

	dup, found := lib.Get(dupID)
	if !found {
		exitWithError(ExitDataError, "record %q not found", dupID)
	}
	primary, found := lib.Get(primaryID)
	if !found {
		exitWithError(ExitDataError, "record %q not found", primaryID)
	}

	group := dedup.Group{
		Primary:        primary,
		Duplicates:     []record.Record{dup},
		Score:          markScore,
		MatchingFields: []string{"manual"},
	}
	if _, err := dedup.ApplyMerges(lib, []dedup.Group{group}); err != nil {
		exitWithError(ExitDataError, "marking duplicate: %v", err)
	}

	marked, _ := lib.Get(dupID)
	if humanOutput {
		fmt.Printf("Marked %s as duplicate of %s\n", dupID, marked.DuplicateOf)
	} else {
		outputJSON(MarkResponse{Status: "marked", ID: dupID, DuplicateOf: marked.DuplicateOf, Score: markScore})
	}
	return nil
}

func runUnmark(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	lib := mustOpenLibrary(root)
	defer lib.Close()

	rec, found := lib.Get(args[0])
	if !found {
		exitWithError(ExitDataError, "record %q not found", args[0])
	}
	if rec.IsPrimary() {
		exitWithError(ExitError, "record %q is not marked as a duplicate", args[0])
	}

	if err := lib.ClearDuplicate(rec.ID, nowUTC()); err != nil {
		exitWithError(ExitDataError, "clearing duplicate mark: %v", err)
	}

	if humanOutput {
		fmt.Printf("Cleared duplicate mark on %s\n", rec.ID)
	} else {
		outputJSON(MarkResponse{Status: "unmarked", ID: rec.ID})
	}
	return nil
}
