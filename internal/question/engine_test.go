package question

import (
	"errors"
	"strings"
	"testing"

	"github.com/qihuang/bianzheng/internal/dataset"
	"github.com/qihuang/bianzheng/internal/randutil"
)

func syn(id, diseaseID, name string, keys, fillers []string) dataset.Syndrome {
	var items []dataset.SymptomItem
	for _, k := range keys {
		items = append(items, dataset.SymptomItem{Text: k, IsKey: true})
	}
	for _, f := range fillers {
		items = append(items, dataset.SymptomItem{Text: f, IsKey: false})
	}
	var texts []string
	for _, it := range items {
		texts = append(texts, it.Text)
	}
	alt := "备选方" + id
	return dataset.Syndrome{
		ID:        id,
		DiseaseID: diseaseID,
		Name:      name,
		Symptoms: dataset.SymptomBundle{
			FullText: strings.Join(texts, "，"),
			Items:    items,
		},
		Pathogenesis:       "病机" + id,
		TreatmentMethod:    "治法" + id,
		Prescription:       dataset.Prescription{Primary: "方剂" + id, Alternative: &alt},
		KeySymptomAnalysis: []string{"辨析" + id},
	}
}

func testDataset() *dataset.Dataset {
	diseases := []dataset.Disease{
		{ID: "D1", Name: "感冒", Category: dataset.CategoryInternal,
			RelatedDiseases: []string{"D2"},
			Syndromes:       []string{"S1", "S2"}},
		{ID: "D2", Name: "咳嗽", Category: dataset.CategoryInternal,
			RelatedDiseases: []string{"D1"},
			Syndromes:       []string{"S3", "S4"}},
		{ID: "D3", Name: "胃痛", Category: dataset.CategoryInternal,
			Syndromes: []string{"S5"}},
	}
	syndromes := []dataset.Syndrome{
		syn("S1", "D1", "风寒束表证", []string{"发热", "恶寒"}, []string{"头痛"}),
		syn("S2", "D1", "风热犯表证", []string{"身热"}, []string{"咽痛"}),
		syn("S3", "D2", "风寒袭肺证", []string{"咳嗽声重"}, []string{"咽痒"}),
		syn("S4", "D2", "风热犯肺证", []string{"咳嗽频剧"}, []string{"口渴"}),
		syn("S5", "D3", "寒邪客胃证", []string{"胃痛暴作"}, []string{"恶寒喜暖"}),
	}
	return dataset.New(diseases, syndromes)
}

func TestGenerateSyndromeQuestion(t *testing.T) {
	e := NewEngine(testDataset(), randutil.NewRandom())
	q, err := e.Generate("S1", TypeSyndrome)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if q.ID == "" {
		t.Error("missing question id")
	}
	if q.SyndromeID != "S1" || q.DiseaseID != "D1" {
		t.Errorf("refs = %s/%s, want S1/D1", q.SyndromeID, q.DiseaseID)
	}
	if !strings.Contains(q.Stem, "患者") {
		t.Errorf("stem lacks vignette prefix: %q", q.Stem)
	}
	if !strings.Contains(q.Stem, "发热") || !strings.Contains(q.Stem, "恶寒") {
		t.Errorf("stem lacks key symptoms: %q", q.Stem)
	}
	if len(q.Options) == 0 || len(q.Options) > 5 {
		t.Fatalf("got %d options", len(q.Options))
	}
	for i, opt := range q.Options {
		if opt.Label != []string{"A", "B", "C", "D", "E"}[i] {
			t.Errorf("option %d label = %q", i, opt.Label)
		}
	}
	if q.Explanation.CorrectAnswer != "风寒束表证" {
		t.Errorf("explanation answer = %q", q.Explanation.CorrectAnswer)
	}
}

func TestGenerateOptionCorrectness(t *testing.T) {
	ds := testDataset()
	e := NewEngine(ds, randutil.NewRandom())

	want := map[Type]string{
		TypeSyndrome:        "风寒束表证",
		TypeTreatment:       "治法S1",
		TypePrescription:    "方剂S1",
		TypePathogenesis:    "病机S1",
		TypeSyndromeFromRx:  "风寒束表证",
		TypeRxFromTreatment: "方剂S1",
	}
	for qt, answer := range want {
		for i := 0; i < 50; i++ {
			q, err := e.Generate("S1", qt)
			if err != nil {
				t.Fatalf("%s: %v", qt, err)
			}
			if got := q.Options[q.CorrectIndex].Text; got != answer {
				t.Fatalf("%s iteration %d: options[correct] = %q, want %q", qt, i, got, answer)
			}
		}
	}
}

func TestGenerateRandomTypeWhenOmitted(t *testing.T) {
	e := NewEngine(testDataset(), randutil.NewRandom())
	seen := map[Type]bool{}
	for i := 0; i < 300; i++ {
		q, err := e.Generate("S1", "")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		seen[q.Type] = true
	}
	if len(seen) != len(AllTypes()) {
		t.Errorf("saw %d of %d archetypes over 300 draws", len(seen), len(AllTypes()))
	}
}

func TestGenerateUnknownSyndrome(t *testing.T) {
	e := NewEngine(testDataset(), randutil.NewRandom())
	_, err := e.Generate("S99", TypeSyndrome)
	if !errors.Is(err, dataset.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGenerateExplanationUniform(t *testing.T) {
	e := NewEngine(testDataset(), randutil.NewRandom())
	q, err := e.Generate("S1", TypePathogenesis)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	ex := q.Explanation
	if ex.Pathogenesis != "病机S1" || ex.TreatmentMethod != "治法S1" ||
		ex.Prescription != "方剂S1" || ex.AltPrescription != "备选方S1" {
		t.Errorf("explanation incomplete: %+v", ex)
	}
	if ex.SymptomText == "" || len(ex.KeySymptomAnalysis) == 0 {
		t.Errorf("explanation missing symptom context: %+v", ex)
	}
}

func TestGenerateByDiseaseCoverageFirst(t *testing.T) {
	e := NewEngine(testDataset(), randutil.NewRandom())

	for i := 0; i < 50; i++ {
		qs, err := e.GenerateByDisease("D1", 2, nil)
		if err != nil {
			t.Fatalf("GenerateByDisease: %v", err)
		}
		if len(qs) != 2 {
			t.Fatalf("got %d questions, want 2", len(qs))
		}
		seen := map[string]bool{}
		for _, q := range qs {
			seen[q.SyndromeID] = true
		}
		if !seen["S1"] || !seen["S2"] {
			t.Fatalf("iteration %d repeated a syndrome before covering all: %v", i, seen)
		}
	}
}

func TestGenerateByDiseasePadsWithReplacement(t *testing.T) {
	e := NewEngine(testDataset(), randutil.NewRandom())
	qs, err := e.GenerateByDisease("D1", 5, nil)
	if err != nil {
		t.Fatalf("GenerateByDisease: %v", err)
	}
	if len(qs) != 5 {
		t.Fatalf("got %d questions, want 5", len(qs))
	}
	for _, q := range qs {
		if q.DiseaseID != "D1" {
			t.Errorf("question strayed to disease %s", q.DiseaseID)
		}
	}
}

func TestGenerateByDiseaseTypeFilter(t *testing.T) {
	e := NewEngine(testDataset(), randutil.NewRandom())
	qs, err := e.GenerateByDisease("D1", 6, []Type{TypeTreatment})
	if err != nil {
		t.Fatalf("GenerateByDisease: %v", err)
	}
	for _, q := range qs {
		if q.Type != TypeTreatment {
			t.Errorf("type filter ignored, got %s", q.Type)
		}
	}
}

func TestGenerateByDiseaseUnknown(t *testing.T) {
	e := NewEngine(testDataset(), randutil.NewRandom())
	_, err := e.GenerateByDisease("D99", 3, nil)
	if !errors.Is(err, dataset.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGenerateRandomDistinctSyndromes(t *testing.T) {
	e := NewEngine(testDataset(), randutil.NewRandom())

	for i := 0; i < 50; i++ {
		qs, err := e.GenerateRandom(5, nil)
		if err != nil {
			t.Fatalf("GenerateRandom: %v", err)
		}
		if len(qs) != 5 {
			t.Fatalf("got %d questions, want 5", len(qs))
		}
		seen := map[string]bool{}
		for _, q := range qs {
			if seen[q.SyndromeID] {
				t.Fatalf("iteration %d repeated syndrome %s with spare capacity", i, q.SyndromeID)
			}
			seen[q.SyndromeID] = true
		}
	}
}

func TestGenerateRandomPadsBeyondPool(t *testing.T) {
	e := NewEngine(testDataset(), randutil.NewRandom())
	qs, err := e.GenerateRandom(8, nil)
	if err != nil {
		t.Fatalf("GenerateRandom: %v", err)
	}
	if len(qs) != 8 {
		t.Errorf("got %d questions, want 8", len(qs))
	}
}

func TestSeasonForcedForSummerDamp(t *testing.T) {
	diseases := []dataset.Disease{
		{ID: "D1", Name: "感冒", Category: dataset.CategoryInternal, Syndromes: []string{"S1"}},
	}
	syndromes := []dataset.Syndrome{
		syn("S1", "D1", "暑湿伤表证", []string{"身热"}, nil),
	}
	e := NewEngine(dataset.New(diseases, syndromes), randutil.NewRandom())

	for i := 0; i < 50; i++ {
		q, err := e.Generate("S1", TypeSyndrome)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if !strings.Contains(q.Stem, "夏季") {
			t.Fatalf("iteration %d: summer-damp vignette picked %q", i, q.Stem)
		}
	}
}

func TestReviewKey(t *testing.T) {
	if got := ReviewKey("S1", TypeSyndrome); got != "S1|syndrome" {
		t.Errorf("ReviewKey = %q", got)
	}
}

func TestParseType(t *testing.T) {
	for _, qt := range AllTypes() {
		got, err := ParseType(string(qt))
		if err != nil || got != qt {
			t.Errorf("ParseType(%q) = %v, %v", qt, got, err)
		}
	}
	if _, err := ParseType("bogus"); err == nil {
		t.Error("ParseType accepted bogus tag")
	}
}
