package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/refdex/refdex/internal/config"
	"github.com/refdex/refdex/internal/record"
	"github.com/refdex/refdex/internal/storage"
	"github.com/spf13/cobra"
)

var importDryRun bool

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be imported without writing")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file.jsonl>",
	Short: "Import records from a JSONL file",
	Long: `Import bibliographic records from a JSONL file, one record per line.

Records without an id are assigned one. Records matching an existing
record by id, DOI, or PMID are skipped.

Examples:
  refdex import harvest.jsonl
  refdex import harvest.jsonl --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// ImportResult represents the result of an import operation.
type ImportResult struct {
	DryRun   bool `json:"dry_run,omitempty"`
	Imported int  `json:"imported"`
	Skipped  int  `json:"skipped"`
}

func runImport(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	lib := mustOpenLibrary(root)
	defer lib.Close()

	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	incoming, err := storage.ReadAll(args[0])
	if err != nil {
		exitWithError(ExitDataError, "reading import file: %v", err)
	}

	existing := lib.All()
	result := ImportResult{DryRun: importDryRun}

	for _, rec := range incoming {
		if isKnown(existing, rec) {
			result.Skipped++
			continue
		}

		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		if rec.ProjectID == "" {
			rec.ProjectID = cfg.ProjectID
		}

		if !importDryRun {
			if err := lib.Add(rec); err != nil {
				exitWithError(ExitDataError, "adding record %s: %v", rec.ID, err)
			}
		}
		existing = append(existing, rec)
		result.Imported++
	}

	if humanOutput {
		verb := "Imported"
		if importDryRun {
			verb = "Would import"
		}
		fmt.Printf("%s %d records (%d skipped)\n", verb, result.Imported, result.Skipped)
	} else {
		outputJSON(result)
	}
	return nil
}

// isKnown reports whether the record collides with an existing one by
// id, DOI, or PMID.
func isKnown(existing []record.Record, rec record.Record) bool {
	if rec.ID != "" {
		if _, found := storage.FindByID(existing, rec.ID); found {
			return true
		}
	}
	if _, found := storage.FindByDOI(existing, rec.DOI); found {
		return true
	}
	if _, found := storage.FindByPMID(existing, rec.PMID); found {
		return true
	}
	return false
}
