package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/refdex/refdex/internal/config"
	"github.com/refdex/refdex/internal/dedup"
	"github.com/refdex/refdex/internal/judge"
	"github.com/spf13/cobra"
)

var (
	detectThreshold float64
	detectMethod    string
	detectAutoMerge bool
	detectLimit     int
)

func init() {
	detectCmd.Flags().Float64Var(&detectThreshold, "threshold", -1, "Similarity threshold in [0,1] (default from detection.yml)")
	detectCmd.Flags().StringVar(&detectMethod, "method", "", "Detection method: rule_based, judgment_assisted, hybrid (default from detection.yml)")
	detectCmd.Flags().BoolVar(&detectAutoMerge, "auto-merge", false, "Mark detected duplicates in the record store")
	detectCmd.Flags().IntVar(&detectLimit, "limit", 0, "Compare at most this many records (0 = all)")
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect duplicate records",
	Long: `Detect duplicate records among those not already marked as duplicates.

Methods:
  rule_based         - weighted multi-field fuzzy matching
  judgment_assisted  - LLM judgment over a capped batch, rule-based fallback
  hybrid             - union of both (judgment at a stricter threshold)

The judgment_assisted and hybrid methods use the Anthropic API when
ANTHROPIC_API_KEY is set (also read from .env); without a key they
fall back to rule-based grouping.

Examples:
  refdex detect
  refdex detect --threshold 0.9 --method rule_based
  refdex detect --auto-merge`,
	RunE: runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()

	settings, err := config.LoadSettings(config.SettingsPath(root))
	if err != nil {
		exitWithError(ExitConfigError, "loading detection settings: %v", err)
	}
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	threshold := settings.Threshold
	if cmd.Flags().Changed("threshold") {
		threshold = detectThreshold
	}
	method := settings.Method
	if detectMethod != "" {
		method = detectMethod
	}
	autoMerge := settings.AutoMerge || detectAutoMerge

	lib := mustOpenLibrary(root)
	defer lib.Close()

	opts := dedup.Options{
		Threshold:  threshold,
		Method:     method,
		AutoMerge:  autoMerge,
		Classifier: buildClassifier(method, cfg.JudgmentModel),
		Store:      lib,
	}

	records := lib.Unmarked()
	if detectLimit > 0 && len(records) > detectLimit {
		records = records[:detectLimit]
	}

	result, err := dedup.Detect(cmd.Context(), records, opts)
	if err != nil {
		exitWithError(ExitError, "detection failed: %v", err)
	}

	if humanOutput {
		printDetectResult(result)
		return nil
	}
	return outputJSON(result)
}

// buildClassifier returns the judgment classifier for methods that use
// one, or nil when the method is rule-based or no API key is
// available. A nil classifier degrades to rule-based grouping inside
// the engine.
func buildClassifier(method, model string) judge.Classifier {
	if method == dedup.MethodRuleBased {
		return nil
	}

	// .env is optional; ignore a missing file
	_ = godotenv.Load()
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		return nil
	}
	return judge.NewAnthropicClassifier("", judge.WithModel(model))
}

func printDetectResult(result *dedup.Result) {
	if result.Message != "" {
		fmt.Println(result.Message)
		return
	}
	if len(result.Groups) == 0 {
		fmt.Println("No duplicates found.")
		return
	}

	fmt.Printf("Found %d duplicate groups (%d duplicates, method %s, threshold %.2f):\n\n",
		len(result.Groups), result.TotalDuplicates, result.Method, result.Threshold)
	for _, g := range result.Groups {
		fmt.Printf("Primary: %s  %s\n", g.Primary.ID, truncateString(g.Primary.Title, listTitleMaxLen))
		for _, d := range g.Duplicates {
			fmt.Printf("  Dup:   %s  %s\n", d.ID, truncateString(d.Title, listTitleMaxLen))
		}
		fmt.Printf("  Score: %.3f  Fields: %s\n\n", g.SimilarityScore, strings.Join(g.MatchingFields, ", "))
	}
	if result.AutoMerged {
		fmt.Printf("Marked %d records as duplicates.\n", result.MergedCount)
	}
}
