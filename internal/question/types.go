// Package question synthesizes multiple-choice practice items from the
// dataset: a stem (usually prefixed by a generated clinical vignette),
// shuffled lettered options, and a uniform explanation payload.
package question

import (
	"fmt"

	"github.com/qihuang/bianzheng/internal/dataset"
	"github.com/qihuang/bianzheng/internal/distractor"
)

// Type tags the six question archetypes.
type Type string

const (
	// TypeSyndrome asks for the syndrome matching a case vignette.
	TypeSyndrome Type = "syndrome"
	// TypeTreatment asks for the treatment method matching a vignette.
	TypeTreatment Type = "treatment"
	// TypePrescription asks for the first-choice formula for a vignette.
	TypePrescription Type = "prescription"
	// TypePathogenesis asks for a named syndrome's pathogenesis.
	TypePathogenesis Type = "pathogenesis"
	// TypeSyndromeFromRx asks which syndrome a named formula treats.
	TypeSyndromeFromRx Type = "syndrome_from_rx"
	// TypeRxFromTreatment asks which formula realizes a named method.
	TypeRxFromTreatment Type = "rx_from_treatment"
)

// AllTypes returns the archetypes in canonical order.
func AllTypes() []Type {
	return []Type{
		TypeSyndrome,
		TypeTreatment,
		TypePrescription,
		TypePathogenesis,
		TypeSyndromeFromRx,
		TypeRxFromTreatment,
	}
}

// DisplayName returns the archetype's short Chinese label for UI output.
func (t Type) DisplayName() string {
	switch t {
	case TypeSyndrome:
		return "辨证型"
	case TypeTreatment:
		return "选治法"
	case TypePrescription:
		return "选方剂"
	case TypePathogenesis:
		return "证机概要"
	case TypeSyndromeFromRx:
		return "以方测证"
	case TypeRxFromTreatment:
		return "依法选方"
	}
	return string(t)
}

// ParseType converts a tag string back to a Type.
func ParseType(s string) (Type, error) {
	for _, t := range AllTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown question type %q", s)
}

// field maps the archetype to the option field distractors are drawn from.
func (t Type) field() distractor.Field {
	switch t {
	case TypeSyndrome, TypeSyndromeFromRx:
		return distractor.FieldSyndromeName
	case TypeTreatment:
		return distractor.FieldTreatmentMethod
	case TypePrescription, TypeRxFromTreatment:
		return distractor.FieldPrescription
	case TypePathogenesis:
		return distractor.FieldPathogenesis
	}
	return distractor.FieldSyndromeName
}

// hasVignette reports whether the archetype carries a clinical prefix.
func (t Type) hasVignette() bool {
	switch t {
	case TypeSyndrome, TypeTreatment, TypePrescription:
		return true
	}
	return false
}

// Option is one lettered answer choice.
type Option struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Explanation carries the full syndrome context. It is identical across
// archetypes so the UI can show the complete picture even for
// narrowly-scoped questions.
type Explanation struct {
	CorrectAnswer      string   `json:"correct_answer"`
	KeySymptomAnalysis []string `json:"key_symptom_analysis"`
	Pathogenesis       string   `json:"pathogenesis"`
	TreatmentMethod    string   `json:"treatment_method"`
	Prescription       string   `json:"prescription"`
	AltPrescription    string   `json:"alt_prescription,omitempty"`
	SymptomText        string   `json:"symptom_text"`
}

// Question is one generated practice item. It is never mutated after
// generation; the caller owns it outright.
type Question struct {
	ID           string      `json:"id"`
	Type         Type        `json:"type"`
	SyndromeID   string      `json:"syndrome_id"`
	DiseaseID    string      `json:"disease_id"`
	Stem         string      `json:"stem"`
	Options      []Option    `json:"options"`
	CorrectIndex int         `json:"correct_index"`
	Explanation  Explanation `json:"explanation"`
}

// ReviewKey identifies the (syndrome, archetype) pair used to key
// spaced-repetition state.
func ReviewKey(syndromeID string, t Type) string {
	return syndromeID + "|" + string(t)
}

func newExplanation(s *dataset.Syndrome, correct string) Explanation {
	e := Explanation{
		CorrectAnswer:      correct,
		KeySymptomAnalysis: s.KeySymptomAnalysis,
		Pathogenesis:       s.Pathogenesis,
		TreatmentMethod:    s.TreatmentMethod,
		Prescription:       s.Prescription.Primary,
		SymptomText:        s.Symptoms.FullText,
	}
	if s.Prescription.Alternative != nil {
		e.AltPrescription = *s.Prescription.Alternative
	}
	return e
}
