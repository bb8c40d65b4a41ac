package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testSyndrome(id, diseaseID string) Syndrome {
	return Syndrome{
		ID:        id,
		DiseaseID: diseaseID,
		Name:      "测试证",
		Symptoms: SymptomBundle{
			FullText: "发热，恶寒，脉浮",
			Items: []SymptomItem{
				{Text: "发热", IsKey: true},
				{Text: "恶寒", IsKey: false},
				{Text: "脉浮", IsKey: true},
			},
		},
		Pathogenesis:    "外邪袭表",
		TreatmentMethod: "解表",
		Prescription:    Prescription{Primary: "测试方"},
	}
}

func testDisease(id string, syndromeIDs ...string) Disease {
	return Disease{
		ID:        id,
		Name:      "测试病",
		Category:  CategoryInternal,
		Syndromes: syndromeIDs,
	}
}

func TestDatasetLookups(t *testing.T) {
	ds := New(
		[]Disease{testDisease("D001", "D001_S01", "D001_S02"), testDisease("D002", "D002_S01")},
		[]Syndrome{
			testSyndrome("D001_S01", "D001"),
			testSyndrome("D001_S02", "D001"),
			testSyndrome("D002_S01", "D002"),
		},
	)

	d, err := ds.Disease("D001")
	require.NoError(t, err)
	assert.Equal(t, "D001", d.ID)

	s, err := ds.Syndrome("D002_S01")
	require.NoError(t, err)
	assert.Equal(t, "D002", s.DiseaseID)

	_, err = ds.Disease("D999")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = ds.Syndrome("D999_S01")
	assert.ErrorIs(t, err, ErrNotFound)

	got := ds.SyndromesOf("D001")
	require.Len(t, got, 2)
	assert.Equal(t, "D001_S01", got[0].ID)
	assert.Equal(t, "D001_S02", got[1].ID)

	assert.Equal(t, []string{"D001", "D002"}, ds.DiseaseIDs())
	assert.Equal(t, []string{"D001_S01", "D001_S02", "D002_S01"}, ds.SyndromeIDs())
}

func TestDatasetByCategory(t *testing.T) {
	d1 := testDisease("D001", "D001_S01")
	d2 := testDisease("D002", "D002_S01")
	d2.Category = CategoryPediatrics
	ds := New([]Disease{d1, d2}, []Syndrome{
		testSyndrome("D001_S01", "D001"),
		testSyndrome("D002_S01", "D002"),
	})

	internal := ds.ByCategory(CategoryInternal)
	require.Len(t, internal, 1)
	assert.Equal(t, "D001", internal[0].ID)

	assert.Empty(t, ds.ByCategory(CategorySurgery))
}

func TestValidateAcceptsWellFormed(t *testing.T) {
	d1 := testDisease("D001", "D001_S01")
	d1.RelatedDiseases = []string{"D002"}
	d2 := testDisease("D002", "D002_S01")
	d2.RelatedDiseases = []string{"D001"}
	ds := New([]Disease{d1, d2}, []Syndrome{
		testSyndrome("D001_S01", "D001"),
		testSyndrome("D002_S01", "D002"),
	})

	assert.NoError(t, ds.Validate())
}

func TestValidateReportsAllProblems(t *testing.T) {
	orphan := testSyndrome("D009_S01", "D009") // nonexistent disease
	noKey := testSyndrome("D001_S02", "D001")
	noKey.Symptoms.Items = []SymptomItem{{Text: "发热", IsKey: false}}
	emptyRx := testSyndrome("D001_S03", "D001")
	emptyRx.Prescription.Primary = "  "
	blankAlt := testSyndrome("D001_S04", "D001")
	blankAlt.Prescription.Alternative = strPtr("")

	d1 := testDisease("D001", "D001_S02", "D001_S03", "D001_S04", "D777_S01")
	d1.RelatedDiseases = []string{"D001", "D888"}

	ds := New([]Disease{d1}, []Syndrome{orphan, noKey, emptyRx, blankAlt})
	err := ds.Validate()
	require.Error(t, err)

	for _, want := range []string{
		`syndrome "D009_S01" references nonexistent disease`,
		`syndrome "D001_S02" has no key symptom item`,
		`syndrome "D001_S03" has empty primary prescription`,
		`syndrome "D001_S04" has empty alternative prescription`,
		`disease "D001" lists nonexistent syndrome "D777_S01"`,
		`disease "D001" relates to itself`,
		`disease "D001" relates to nonexistent disease "D888"`,
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidateMembershipMismatch(t *testing.T) {
	// D001 omits D001_S02; D002 claims D001's syndrome.
	d1 := testDisease("D001", "D001_S01")
	d2 := testDisease("D002", "D002_S01", "D001_S02")
	ds := New([]Disease{d1, d2}, []Syndrome{
		testSyndrome("D001_S01", "D001"),
		testSyndrome("D001_S02", "D001"),
		testSyndrome("D002_S01", "D002"),
	})

	err := ds.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `disease "D001" omits syndrome "D001_S02"`)
	assert.Contains(t, err.Error(), `disease "D002" lists syndrome "D001_S02" which belongs to "D001"`)
}

func TestValidateAsymmetricRelation(t *testing.T) {
	d1 := testDisease("D001", "D001_S01")
	d1.RelatedDiseases = []string{"D002"}
	d2 := testDisease("D002", "D002_S01")
	ds := New([]Disease{d1, d2}, []Syndrome{
		testSyndrome("D001_S01", "D001"),
		testSyndrome("D002_S01", "D002"),
	})

	err := ds.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "asymmetric relation")
}

func TestLoadEmbedded(t *testing.T) {
	ds, err := LoadEmbedded()
	require.NoError(t, err)

	assert.NotEmpty(t, ds.Diseases)
	assert.NotEmpty(t, ds.Syndromes)

	// Every category should be represented in the starter set.
	for _, c := range AllCategories() {
		assert.NotEmpty(t, ds.ByCategory(c), "category %s has no diseases", c)
	}

	// Spot-check one record end to end.
	s, err := ds.Syndrome("D001_S01")
	require.NoError(t, err)
	assert.Equal(t, "风寒束表证", s.Name)
	assert.Equal(t, "辛温解表", s.TreatmentMethod)
	require.NotNil(t, s.Prescription.Alternative)
	assert.Equal(t, "荆防败毒散", *s.Prescription.Alternative)
}

func TestLoadFromDirectory(t *testing.T) {
	diseasesRaw, err := embedded.ReadFile("data/diseases.json")
	require.NoError(t, err)
	syndromesRaw, err := embedded.ReadFile("data/syndromes.json")
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "diseases.json"), diseasesRaw, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "syndromes.json"), syndromesRaw, 0o644))

	ds, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, ds.Diseases, 17)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diseases.json")
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	cases := []struct {
		name      string
		diseases  string
		syndromes string
	}{
		{
			name:      "missing required field",
			diseases:  `[{"disease_id":"D001"}]`,
			syndromes: `[]`,
		},
		{
			name: "bad category",
			diseases: `[{"disease_id":"D001","disease_name":"感冒","category":"骨科",
				"key_symptoms":"","key_pulse":"","related_diseases":[],"syndromes":[]}]`,
			syndromes: `[]`,
		},
		{
			name:      "not an array",
			diseases:  `{"disease_id":"D001"}`,
			syndromes: `[]`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.diseases), []byte(tc.syndromes))
			require.Error(t, err)
			assert.True(t,
				strings.Contains(err.Error(), "schema validation failed") ||
					strings.Contains(err.Error(), "invalid JSON"),
				"unexpected error: %v", err)
		})
	}
}

func TestParseRejectsStructuralViolations(t *testing.T) {
	// Schema-valid but the syndrome points at a disease that is not there.
	diseases := `[{"disease_id":"D001","disease_name":"感冒","category":"内科",
		"key_symptoms":"x","key_pulse":"x","related_diseases":[],"syndromes":["D001_S01"]}]`
	syndromes := `[{"syndrome_id":"D001_S01","disease_id":"D999","syndrome_name":"风寒证",
		"symptoms":{"full_text":"发热","items":[{"text":"发热","is_key":true}]},
		"pathogenesis":"x","treatment_method":"x",
		"prescription":{"primary":"x","alternative":null},"key_symptom_analysis":[]}]`

	_, err := Parse([]byte(diseases), []byte(syndromes))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "nonexistent disease")
}
