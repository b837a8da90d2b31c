// Package main provides the refdex CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/refdex/refdex/internal/config"
	"github.com/refdex/refdex/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "refdex",
	Short: "Literature-review record manager with duplicate detection",
	Long: `refdex manages bibliographic records for literature reviews.

Core features:
  - Record store in git-versionable JSONL with ephemeral SQLite for queries
  - Multi-field fuzzy duplicate detection (title, authors, DOI, journal, year)
  - Optional LLM-assisted duplicate judgment with rule-based fallback
  - Idempotent duplicate marking: each duplicate points at one primary record

All commands output JSON by default for scripting and agent integration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// mustFindRepository finds and validates the repository, exits on
// error. Returns the repository root path.
func mustFindRepository() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	root, err := config.FindRepository(cwd)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return root
}

// mustOpenLibrary opens the record library with its SQLite cache,
// exits on error.
func mustOpenLibrary(root string) *storage.Library {
	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitDataError, "opening database: %v", err)
	}

	lib, err := storage.OpenLibrary(config.RecordsPath(root), db)
	if err != nil {
		db.Close()
		exitWithError(ExitDataError, "loading records: %v", err)
	}
	return lib
}
