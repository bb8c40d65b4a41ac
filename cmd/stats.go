package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/qihuang/bianzheng/internal/config"
	"github.com/qihuang/bianzheng/internal/spacedrep"
	"github.com/qihuang/bianzheng/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show accuracy per disease and due reviews",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
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

	ctx := context.Background()

	byDisease, err := st.EventRepo().AccuracyByDisease(ctx)
	if err != nil {
		return fmt.Errorf("query accuracy: %w", err)
	}

	if len(byDisease) == 0 {
		fmt.Println("还没有答题记录。")
	} else {
		ids := make([]string, 0, len(byDisease))
		for id := range byDisease {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		fmt.Println("按病种统计：")
		for _, id := range ids {
			acc := byDisease[id]
			name := id
			if d, err := ds.Disease(id); err == nil {
				name = fmt.Sprintf("%s %s", id, d.Name)
			}
			fmt.Printf("  %-14s %3d/%-3d  %5.1f%%\n", name, acc.Correct, acc.Total, acc.Accuracy()*100)
		}
	}

	var snapData *store.SnapshotData
	if snap, err := st.SnapshotRepo().Latest(ctx); err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	} else if snap != nil {
		snapData = &snap.Data
	}
	scheduler := spacedrep.NewScheduler(snapData)
	due := scheduler.Due(time.Now())

	fmt.Printf("\n复习状态：共 %d 项，%d 项到期\n", scheduler.Tracked(), len(due))
	for i, rev := range due {
		if i >= 10 {
			fmt.Printf("  ……另有 %d 项\n", len(due)-10)
			break
		}
		name := rev.SyndromeID
		if syn, err := ds.Syndrome(rev.SyndromeID); err == nil {
			name = syn.Name
		}
		fmt.Printf("  %s（%s）到期于 %s\n", name, rev.QuestionType, rev.State.NextReview.Format("2006-01-02"))
	}
	return nil
}
