package distractor

import (
	"errors"
	"testing"

	"github.com/qihuang/bianzheng/internal/dataset"
	"github.com/qihuang/bianzheng/internal/randutil"
)

func syn(id, diseaseID, name, treatment, prescription string) dataset.Syndrome {
	return dataset.Syndrome{
		ID:        id,
		DiseaseID: diseaseID,
		Name:      name,
		Symptoms: dataset.SymptomBundle{
			Items: []dataset.SymptomItem{{Text: "发热", IsKey: true}},
		},
		Pathogenesis:    "病机" + id,
		TreatmentMethod: treatment,
		Prescription:    dataset.Prescription{Primary: prescription},
	}
}

// Three diseases: D001 and D002 are related, D003 is unrelated.
func testDataset() *dataset.Dataset {
	diseases := []dataset.Disease{
		{ID: "D001", Name: "感冒", Category: dataset.CategoryInternal,
			RelatedDiseases: []string{"D002"},
			Syndromes:       []string{"D001_S01", "D001_S02", "D001_S03"}},
		{ID: "D002", Name: "咳嗽", Category: dataset.CategoryInternal,
			RelatedDiseases: []string{"D001"},
			Syndromes:       []string{"D002_S01", "D002_S02"}},
		{ID: "D003", Name: "胃痛", Category: dataset.CategoryInternal,
			Syndromes: []string{"D003_S01", "D003_S02"}},
	}
	syndromes := []dataset.Syndrome{
		syn("D001_S01", "D001", "风寒束表证", "辛温解表", "荆防达表汤"),
		syn("D001_S02", "D001", "风热犯表证", "辛凉解表", "银翘散"),
		syn("D001_S03", "D001", "暑湿伤表证", "清暑祛湿解表", "新加香薷饮"),
		syn("D002_S01", "D002", "风寒袭肺证", "疏风散寒", "三拗汤"),
		syn("D002_S02", "D002", "风热犯肺证", "疏风清热", "桑菊饮"),
		syn("D003_S01", "D003", "寒邪客胃证", "温胃散寒", "良附丸"),
		syn("D003_S02", "D003", "肝气犯胃证", "疏肝理气", "柴胡疏肝散"),
	}
	return dataset.New(diseases, syndromes)
}

func TestGenerateNeverIncludesCorrectAnswer(t *testing.T) {
	ds := testDataset()
	r := randutil.NewRandom()

	for i := 0; i < 100; i++ {
		got, err := Generate(r, ds, "D001_S01", FieldSyndromeName, 4)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		for _, v := range got {
			if v == "风寒束表证" {
				t.Fatalf("iteration %d included the correct answer", i)
			}
		}
	}
}

func TestGenerateNoDuplicates(t *testing.T) {
	ds := testDataset()
	r := randutil.NewRandom()

	for i := 0; i < 100; i++ {
		got, err := Generate(r, ds, "D001_S01", FieldPrescription, 6)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		seen := map[string]bool{}
		for _, v := range got {
			if seen[v] {
				t.Fatalf("iteration %d returned duplicate %q in %v", i, v, got)
			}
			seen[v] = true
		}
	}
}

func TestGeneratePrefersSameDisease(t *testing.T) {
	ds := testDataset()
	r := randutil.NewRandom()

	// D001 has two sibling syndromes; asking for exactly two must stay
	// inside the disease.
	siblingNames := map[string]bool{"风热犯表证": true, "暑湿伤表证": true}
	for i := 0; i < 100; i++ {
		got, err := Generate(r, ds, "D001_S01", FieldSyndromeName, 2)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d distractors, want 2", len(got))
		}
		for _, v := range got {
			if !siblingNames[v] {
				t.Fatalf("iteration %d left the disease early: %v", i, got)
			}
		}
	}
}

func TestGenerateFallsThroughTiers(t *testing.T) {
	ds := testDataset()
	got, err := Generate(randutil.NewRandom(), ds, "D001_S01", FieldSyndromeName, 6)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// 2 siblings + 2 related + 2 global are available.
	if len(got) != 6 {
		t.Fatalf("got %d distractors, want 6", len(got))
	}
	var hasGlobal bool
	for _, v := range got {
		if v == "寒邪客胃证" || v == "肝气犯胃证" {
			hasGlobal = true
		}
	}
	if !hasGlobal {
		t.Errorf("expected global-tier values in %v", got)
	}
}

func TestGenerateShortWhenExhausted(t *testing.T) {
	ds := testDataset()
	got, err := Generate(randutil.NewRandom(), ds, "D001_S01", FieldSyndromeName, 20)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(got) != 6 {
		t.Errorf("got %d distractors, want all 6 available", len(got))
	}
}

func TestGenerateDedupesEqualValues(t *testing.T) {
	// Two syndromes share a treatment method; it may appear once only.
	diseases := []dataset.Disease{
		{ID: "D001", Name: "感冒", Category: dataset.CategoryInternal,
			Syndromes: []string{"D001_S01", "D001_S02", "D001_S03"}},
	}
	syndromes := []dataset.Syndrome{
		syn("D001_S01", "D001", "a", "辛温解表", "p1"),
		syn("D001_S02", "D001", "b", "辛凉解表", "p2"),
		syn("D001_S03", "D001", "c", "辛凉解表 ", "p3"), // trailing space
	}
	ds := dataset.New(diseases, syndromes)

	got, err := Generate(randutil.NewRandom(), ds, "D001_S01", FieldTreatmentMethod, 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(got) != 1 || got[0] != "辛凉解表" {
		t.Errorf("got %v, want exactly [辛凉解表]", got)
	}
}

func TestGenerateUnknownSyndrome(t *testing.T) {
	_, err := Generate(randutil.NewRandom(), testDataset(), "D999_S01", FieldSyndromeName, 4)
	if !errors.Is(err, dataset.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
