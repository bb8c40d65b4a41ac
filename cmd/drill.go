package cmd

import (
	"github.com/spf13/cobra"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Start an interactive multiple-choice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		tags, _ := cmd.Flags().GetStringSlice("types")

		types, err := parseTypes(tags)
		if err != nil {
			return err
		}
		if len(types) == 0 {
			types = nil // fall back to config
		}
		return runApp(cmd, true, count, types)
	},
}

func init() {
	drillCmd.Flags().Int("count", 0, "Questions per session (default from config)")
	drillCmd.Flags().StringSlice("types", nil, "Restrict archetypes, e.g. syndrome,prescription")
}
