package main

import (
	"fmt"

	"github.com/refdex/refdex/internal/record"
	"github.com/spf13/cobra"
)

var (
	listLimit      int
	listDuplicates bool
	listPrimaries  bool
)

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = all)")
	listCmd.Flags().BoolVar(&listDuplicates, "duplicates", false, "Only records marked as duplicates")
	listCmd.Flags().BoolVar(&listPrimaries, "primaries", false, "Only records not marked as duplicates")
	listCmd.MarkFlagsMutuallyExclusive("duplicates", "primaries")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List records",
	Long: `List records in the repository.

Examples:
  refdex list
  refdex list --duplicates
  refdex list --primaries --limit 100`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	lib := mustOpenLibrary(root)
	defer lib.Close()

	var records []record.Record
	var err error
	switch {
	case listDuplicates:
		records, err = lib.DB().ListDuplicates(listLimit)
	case listPrimaries:
		records, err = lib.DB().ListPrimaries(listLimit)
	default:
		records, err = lib.DB().ListAll(listLimit)
	}
	if err != nil {
		exitWithError(ExitDataError, "listing records: %v", err)
	}

	if humanOutput {
		if len(records) == 0 {
			fmt.Println("No records found")
			return nil
		}
		fmt.Printf("%d records:\n\n", len(records))
		for _, rec := range records {
			marker := " "
			if !rec.IsPrimary() {
				marker = "*"
			}
			fmt.Printf("%s %-36s %s\n", marker, rec.ID, truncateString(rec.Title, listTitleMaxLen))
		}
		return nil
	}

	if records == nil {
		records = []record.Record{}
	}
	return outputJSON(records)
}
