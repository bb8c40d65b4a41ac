package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/qihuang/bianzheng/internal/casegen"
	"github.com/qihuang/bianzheng/internal/config"
	"github.com/qihuang/bianzheng/internal/randutil"
	"github.com/qihuang/bianzheng/internal/spacedrep"
	"github.com/qihuang/bianzheng/internal/store"
)

var caseCmd = &cobra.Command{
	Use:   "case",
	Short: "Run a free-form case session on stdin/stdout",
	Long: `Generate case vignettes, read your diagnosis from stdin and reveal the
standard answer. You grade yourself [y/n]; the result feeds the same
review scheduler and event log as the multiple-choice drill.`,
	RunE: runCase,
}

func init() {
	caseCmd.Flags().Int("count", 0, "Cases per session (default from config)")
	caseCmd.Flags().String("disease", "", "Restrict to one disease ID, e.g. D001")
}

func runCase(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ds, err := resolveDataset(cmd, cfg)
	if err != nil {
		return err
	}

	count, _ := cmd.Flags().GetInt("count")
	if count == 0 {
		count = cfg.CaseCount
	}
	diseaseID, _ := cmd.Flags().GetString("disease")

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	eventRepo := st.EventRepo()
	snapRepo := st.SnapshotRepo()

	ctx := context.Background()

	// Hydrate review state so case answers extend existing schedules.
	var snapData *store.SnapshotData
	if snap, err := snapRepo.Latest(ctx); err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	} else if snap != nil {
		snapData = &snap.Data
	}
	scheduler := spacedrep.NewScheduler(snapData)

	gen := casegen.NewGenerator(ds, randutil.NewRandom())
	var cases []*casegen.CaseQuestion
	if diseaseID != "" {
		if cases, err = gen.GenerateByDisease(diseaseID); err != nil {
			return err
		}
		if len(cases) > count {
			cases = cases[:count]
		}
	} else {
		if cases, err = gen.GenerateRandom(count); err != nil {
			return err
		}
	}

	sessionID := uuid.NewString()
	_ = eventRepo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: sessionID,
		Action:    "start",
		Mode:      "case",
	})
	sessionStart := time.Now()

	scanner := bufio.NewScanner(os.Stdin)
	var answered, correct int

	for i, c := range cases {
		fmt.Printf("── 病案 %d/%d ──\n", i+1, len(cases))
		fmt.Println(c.Narrative)

		fmt.Print("\n辨病辨证诊断：")
		questionStart := time.Now()
		if !scanner.Scan() {
			fmt.Println("\n(输入已关闭)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		duration := time.Since(questionStart)

		printStandardAnswer(&c.Answer)

		fmt.Print("\n你的诊断是否正确？[y/n]：")
		if !scanner.Scan() {
			fmt.Println("\n(输入已关闭)")
			break
		}
		selfGrade := strings.EqualFold(strings.TrimSpace(scanner.Text()), "y")

		answered++
		if selfGrade {
			correct++
			fmt.Println("\033[32m✓ 记为正确\033[0m")
		} else {
			fmt.Println("\033[31m✗ 记为错误\033[0m")
		}

		state := scheduler.Record(c.SyndromeID, "case", selfGrade, duration, time.Now())
		fmt.Printf("下次复习：%s（间隔 %d 天）\n\n", state.NextReview.Format("2006-01-02"), state.IntervalDays)

		_ = eventRepo.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:     sessionID,
			SyndromeID:    c.SyndromeID,
			DiseaseID:     c.DiseaseID,
			QuestionType:  "case",
			QuestionText:  c.Narrative,
			CorrectAnswer: c.Answer.Diagnosis,
			LearnerAnswer: answer,
			Correct:       selfGrade,
			TimeMs:        int(duration.Milliseconds()),
			Quality:       spacedrep.Quality(selfGrade, duration),
		})
	}

	_ = eventRepo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       sessionID,
		Action:          "end",
		Mode:            "case",
		QuestionsServed: answered,
		CorrectAnswers:  correct,
		DurationSecs:    int(time.Since(sessionStart).Seconds()),
	})

	snap := &store.Snapshot{
		Timestamp: time.Now(),
		Data: store.SnapshotData{
			Version:   store.CurrentSnapshotVersion,
			SpacedRep: scheduler.SnapshotData(),
		},
	}
	if err := snapRepo.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	_ = snapRepo.Prune(ctx, cfg.SnapshotKeep)

	fmt.Printf("── 小结：%d/%d 正确 ──\n", correct, answered)
	return nil
}

// printStandardAnswer writes the reveal block for one case.
func printStandardAnswer(a *casegen.StandardAnswer) {
	fmt.Println("\n── 标准答案 ──")
	fmt.Printf("诊断：%s\n", a.Diagnosis)
	fmt.Printf("证机概要：%s\n", a.Pathogenesis)
	fmt.Printf("治法：%s\n", a.TreatmentMethod)
	rx := a.Prescription
	if a.AltPrescription != "" {
		rx += "，或" + a.AltPrescription
	}
	fmt.Printf("方剂：%s\n", rx)
	if len(a.KeySymptomAnalysis) > 0 {
		fmt.Printf("辨证要点：%s\n", strings.Join(a.KeySymptomAnalysis, "；"))
	}
}
