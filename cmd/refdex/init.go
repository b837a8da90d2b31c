package main

import (
	"fmt"
	"os"

	"github.com/refdex/refdex/internal/config"
	"github.com/refdex/refdex/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new refdex repository",
	Long: `Initialize a new refdex repository in the current directory.

Creates:
  .refdex/
  ├── records.jsonl   # Empty file
  ├── config.json     # Default config
  ├── detection.yml   # Default detection settings
  └── cache/          # SQLite cache (gitignored)`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if config.IsRepository(root) {
		exitWithError(ExitError, "directory already contains a refdex repository")
	}

	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating repository directories: %v", err)
	}

	recordsFile, err := os.Create(config.RecordsPath(root))
	if err != nil {
		exitWithError(ExitError, "creating records.jsonl: %v", err)
	}
	recordsFile.Close()

	if err := config.Save(root, &config.Config{}); err != nil {
		exitWithError(ExitError, "writing config: %v", err)
	}

	if err := config.SaveSettings(config.SettingsPath(root), config.DefaultSettings()); err != nil {
		exitWithError(ExitError, "writing detection settings: %v", err)
	}

	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "creating database: %v", err)
	}
	db.Close()

	if humanOutput {
		fmt.Printf("Initialized refdex repository in %s\n", config.RefdexPath(root))
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: config.RefdexPath(root)})
	}
	return nil
}
