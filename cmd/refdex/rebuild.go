package main

import (
	"fmt"

	"github.com/refdex/refdex/internal/config"
	"github.com/refdex/refdex/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the SQLite cache from records.jsonl",
	Long: `Rebuild the SQLite cache from records.jsonl.

The JSONL file is the source of truth; the cache can always be
regenerated after manual edits or merge conflicts.`,
	RunE: runRebuild,
}

// RebuildResponse reports the outcome of a cache rebuild.
type RebuildResponse struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()

	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitDataError, "opening database: %v", err)
	}
	defer db.Close()

	n, err := db.RebuildFromJSONL(config.RecordsPath(root))
	if err != nil {
		exitWithError(ExitDataError, "rebuilding cache: %v", err)
	}

	if humanOutput {
		fmt.Printf("Rebuilt cache with %d records\n", n)
	} else {
		outputJSON(RebuildResponse{Status: "rebuilt", Records: n})
	}
	return nil
}
