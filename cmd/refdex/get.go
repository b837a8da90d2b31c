package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single record",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	lib := mustOpenLibrary(root)
	defer lib.Close()

	rec, found := lib.Get(args[0])
	if !found {
		exitWithError(ExitDataError, "record %q not found", args[0])
	}

	if humanOutput {
		fmt.Printf("ID:      %s\n", rec.ID)
		fmt.Printf("Title:   %s\n", rec.Title)
		if len(rec.Authors) > 0 {
			fmt.Printf("Authors: %s\n", strings.Join(rec.Authors, "; "))
		}
		if rec.Journal != "" {
			fmt.Printf("Journal: %s\n", rec.Journal)
		}
		if rec.Year != 0 {
			fmt.Printf("Year:    %d\n", rec.Year)
		}
		if rec.DOI != "" {
			fmt.Printf("DOI:     %s\n", rec.DOI)
		}
		if !rec.IsPrimary() {
			fmt.Printf("Duplicate of: %s (score %.3f)\n", rec.DuplicateOf, rec.SimilarityScore)
		}
		return nil
	}
	return outputJSON(rec)
}
