package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qihuang/bianzheng/internal/casegen"
	"github.com/qihuang/bianzheng/internal/config"
	"github.com/qihuang/bianzheng/internal/dataset"
	"github.com/qihuang/bianzheng/internal/question"
	"github.com/qihuang/bianzheng/internal/randutil"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print generated items to stdout (no database)",
	Long: `Generate questions or cases and print them with their answers.

This is a stateless developer tool — no database, no review tracking, no
events. Useful for inspecting item quality and checking a dataset.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("disease", "", "Disease ID to draw from, e.g. D001")
	previewCmd.Flags().String("syndrome", "", "Exact syndrome ID, e.g. D001_S01")
	previewCmd.Flags().String("type", "", "Archetype tag (syndrome, treatment, prescription, pathogenesis, syndrome_from_rx, rx_from_treatment)")
	previewCmd.Flags().Int("count", 5, "Number of items to generate")
	previewCmd.Flags().Bool("cases", false, "Generate free-form cases instead of multiple-choice items")
	previewCmd.Flags().Uint64("seed", 0, "Fixed RNG seed for reproducible output (0 = random)")
	previewCmd.Flags().Bool("validate", false, "Only load and validate the dataset, then report")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ds, err := resolveDataset(cmd, cfg)
	if err != nil {
		return err
	}

	if validate, _ := cmd.Flags().GetBool("validate"); validate {
		// Load already runs schema + structural validation; getting here
		// means the dataset is sound.
		fmt.Printf("dataset ok: %d diseases, %d syndromes\n",
			len(ds.DiseaseIDs()), len(ds.SyndromeIDs()))
		return nil
	}

	diseaseID, _ := cmd.Flags().GetString("disease")
	syndromeID, _ := cmd.Flags().GetString("syndrome")
	typeTag, _ := cmd.Flags().GetString("type")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetUint64("seed")

	r := randutil.NewRandom()
	if seed != 0 {
		r = randutil.New(seed, seed)
	}

	if cases, _ := cmd.Flags().GetBool("cases"); cases {
		return previewCases(ds, r, diseaseID, syndromeID, count)
	}
	return previewQuestions(ds, r, diseaseID, syndromeID, typeTag, count)
}

func previewQuestions(ds *dataset.Dataset, r *randutil.Rand, diseaseID, syndromeID, typeTag string, count int) error {
	engine := question.NewEngine(ds, r)

	var qt question.Type
	if typeTag != "" {
		var err error
		if qt, err = question.ParseType(typeTag); err != nil {
			return err
		}
	}
	var types []question.Type
	if qt != "" {
		types = []question.Type{qt}
	}

	var questions []*question.Question
	var err error
	switch {
	case syndromeID != "":
		for i := 0; i < count; i++ {
			q, genErr := engine.Generate(syndromeID, qt)
			if genErr != nil {
				return genErr
			}
			questions = append(questions, q)
		}
	case diseaseID != "":
		questions, err = engine.GenerateByDisease(diseaseID, count, types)
	default:
		questions, err = engine.GenerateRandom(count, types)
	}
	if err != nil {
		return err
	}

	labels := []string{"A", "B", "C", "D", "E"}
	for i, q := range questions {
		fmt.Printf("── 第 %d/%d 题（%s，%s）──\n", i+1, len(questions), q.Type.DisplayName(), q.SyndromeID)
		fmt.Println(q.Stem)
		for j, o := range q.Options {
			mark := " "
			if j == q.CorrectIndex {
				mark = "*"
			}
			fmt.Printf(" %s %s. %s\n", mark, labels[j%len(labels)], o.Text)
		}
		fmt.Printf("解析：%s；%s\n\n", q.Explanation.Pathogenesis,
			strings.Join(q.Explanation.KeySymptomAnalysis, "；"))
	}
	return nil
}

func previewCases(ds *dataset.Dataset, r *randutil.Rand, diseaseID, syndromeID string, count int) error {
	gen := casegen.NewGenerator(ds, r)

	var cases []*casegen.CaseQuestion
	var err error
	switch {
	case syndromeID != "":
		var c *casegen.CaseQuestion
		for i := 0; i < count; i++ {
			if c, err = gen.GenerateByID(syndromeID); err != nil {
				return err
			}
			cases = append(cases, c)
		}
	case diseaseID != "":
		cases, err = gen.GenerateByDisease(diseaseID)
	default:
		cases, err = gen.GenerateRandom(count)
	}
	if err != nil {
		return err
	}

	for i, c := range cases {
		fmt.Printf("── 病案 %d/%d（%s）──\n", i+1, len(cases), c.SyndromeID)
		fmt.Println(c.Narrative)
		printStandardAnswer(&c.Answer)
		fmt.Println()
	}
	return nil
}
