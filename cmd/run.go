package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qihuang/bianzheng/internal/app"
	"github.com/qihuang/bianzheng/internal/config"
	"github.com/qihuang/bianzheng/internal/question"
	"github.com/qihuang/bianzheng/internal/randutil"
	"github.com/qihuang/bianzheng/internal/store"
)

// runApp loads config and dataset, opens the store and launches the
// TUI. count and types override the config when non-zero / non-nil.
func runApp(cmd *cobra.Command, autoStart bool, count int, types []question.Type) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ds, err := resolveDataset(cmd, cfg)
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if count == 0 {
		count = cfg.DrillCount
	}
	if types == nil {
		if types, err = parseTypes(cfg.Types); err != nil {
			return err
		}
	}

	return app.Run(app.Options{
		Dataset:      ds,
		Rand:         randutil.NewRandom(),
		EventRepo:    st.EventRepo(),
		SnapshotRepo: st.SnapshotRepo(),
		DrillCount:   count,
		Types:        types,
		SnapshotKeep: cfg.SnapshotKeep,
		AutoStart:    autoStart,
	})
}
