// Package dataset defines the disease/syndrome knowledge base the
// generators consume: plain records loaded from JSON, an indexed in-memory
// view, and structural validation.
package dataset

// Category classifies a disease by clinical department.
type Category string

const (
	CategoryInternal   Category = "内科"
	CategorySurgery    Category = "外科"
	CategoryGynecology Category = "妇科"
	CategoryPediatrics Category = "儿科"
	CategoryOther      Category = "其他"
)

// AllCategories returns the categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryInternal,
		CategorySurgery,
		CategoryGynecology,
		CategoryPediatrics,
		CategoryOther,
	}
}

// SymptomItem is a single symptom description. Key items are clinically
// decisive and always appear in generated presentations; non-key items are
// optional filler subject to randomized inclusion.
type SymptomItem struct {
	Text  string `json:"text"`
	IsKey bool   `json:"is_key"`
}

// SymptomBundle holds a syndrome's symptoms as both running text and an
// ordered item list.
type SymptomBundle struct {
	FullText string        `json:"full_text"`
	Items    []SymptomItem `json:"items"`
}

// Prescription names the primary formula and an optional alternative.
// Alternative is nil when the syndrome has a single canonical formula.
type Prescription struct {
	Primary     string  `json:"primary"`
	Alternative *string `json:"alternative"`
}

// Syndrome is a differential-diagnosis pattern belonging to one disease.
type Syndrome struct {
	ID                 string        `json:"syndrome_id"`
	DiseaseID          string        `json:"disease_id"`
	Name               string        `json:"syndrome_name"`
	Symptoms           SymptomBundle `json:"symptoms"`
	Pathogenesis       string        `json:"pathogenesis"`
	TreatmentMethod    string        `json:"treatment_method"`
	Prescription       Prescription  `json:"prescription"`
	KeySymptomAnalysis []string      `json:"key_symptom_analysis"`
}

// Disease is a top-level condition owning one or more syndromes.
// RelatedDiseases is intended to be bidirectional; the validator reports
// asymmetric links, but readers must tolerate them.
type Disease struct {
	ID              string   `json:"disease_id"`
	Name            string   `json:"disease_name"`
	Category        Category `json:"category"`
	KeySymptoms     string   `json:"key_symptoms"`
	KeyPulse        string   `json:"key_pulse"`
	RelatedDiseases []string `json:"related_diseases"`
	Syndromes       []string `json:"syndromes"`
}
