package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qihuang/bianzheng/internal/config"
	"github.com/qihuang/bianzheng/internal/dataset"
	"github.com/qihuang/bianzheng/internal/question"
	"github.com/qihuang/bianzheng/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "bianzheng",
	Short: "TCM pattern-differentiation drill app",
	Long:  "bianzheng — terminal drill app for 中医辨证 exam prep: randomized multiple-choice items, free-form case vignettes and SM-2 spaced repetition.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false, 0, nil)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BIANZHENG_DB env var)")
	rootCmd.PersistentFlags().String("data", "", "Directory holding diseases.json and syndromes.json (default: embedded dataset)")

	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(caseCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then the config file, then BIANZHENG_DB / the default XDG
// path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// resolveDataset loads the dataset from --data, then the config file,
// falling back to the embedded starter set.
func resolveDataset(cmd *cobra.Command, cfg *config.Config) (*dataset.Dataset, error) {
	dir, _ := cmd.Flags().GetString("data")
	if dir == "" {
		dir = cfg.DataDir
	}
	if dir == "" {
		return dataset.LoadEmbedded()
	}
	ds, err := dataset.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load dataset from %s: %w", dir, err)
	}
	return ds, nil
}

// parseTypes converts archetype tag strings to question types.
func parseTypes(tags []string) ([]question.Type, error) {
	types := make([]question.Type, 0, len(tags))
	for _, tag := range tags {
		t, err := question.ParseType(tag)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}
