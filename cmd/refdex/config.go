package main

import (
	"fmt"

	"github.com/refdex/refdex/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get or set repository configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show repository configuration",
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Keys:
  project_id      - owning review project for newly imported records
  judgment_model  - override for the judgment service model`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()

	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	if humanOutput {
		fmt.Printf("project_id:     %s\n", cfg.ProjectID)
		fmt.Printf("judgment_model: %s\n", cfg.JudgmentModel)
		return nil
	}
	return outputJSON(cfg)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	root := mustFindRepository()

	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	switch key {
	case "project_id":
		cfg.ProjectID = value
	case "judgment_model":
		cfg.JudgmentModel = value
	default:
		exitWithError(ExitError, "unknown config key: %s", key)
	}

	if err := config.Save(root, cfg); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Set %s = %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	return nil
}
