// Package casegen synthesizes free-form case questions: a multi-sentence
// clinical narrative the learner diagnoses unaided, plus the standard
// answer used for self-grading.
package casegen

import (
	"strings"

	"github.com/google/uuid"

	"github.com/qihuang/bianzheng/internal/dataset"
	"github.com/qihuang/bianzheng/internal/randutil"
	"github.com/qihuang/bianzheng/internal/sampler"
)

const chiefComplaintMaxRunes = 12

// StandardAnswer is the reveal shown after the learner commits a
// diagnosis. Diagnosis combines disease and syndrome with an interpunct.
type StandardAnswer struct {
	DiseaseName        string   `json:"disease_name"`
	SyndromeName       string   `json:"syndrome_name"`
	Diagnosis          string   `json:"diagnosis"`
	Pathogenesis       string   `json:"pathogenesis"`
	TreatmentMethod    string   `json:"treatment_method"`
	Prescription       string   `json:"prescription"`
	AltPrescription    string   `json:"alt_prescription,omitempty"`
	KeySymptomAnalysis []string `json:"key_symptom_analysis"`
	SymptomText        string   `json:"symptom_text"`
}

// CaseQuestion is one generated case. Never mutated after generation.
type CaseQuestion struct {
	ID         string         `json:"id"`
	SyndromeID string         `json:"syndrome_id"`
	DiseaseID  string         `json:"disease_id"`
	Narrative  string         `json:"narrative"`
	Answer     StandardAnswer `json:"answer"`
}

// Generator builds case questions from one dataset.
type Generator struct {
	ds *dataset.Dataset
	r  *randutil.Rand
}

// NewGenerator returns a generator drawing randomness from r.
func NewGenerator(ds *dataset.Dataset, r *randutil.Rand) *Generator {
	return &Generator{ds: ds, r: r}
}

// GenerateByID builds a case for the given syndrome id.
func (g *Generator) GenerateByID(syndromeID string) (*CaseQuestion, error) {
	s, err := g.ds.Syndrome(syndromeID)
	if err != nil {
		return nil, err
	}
	return g.Generate(s)
}

// Generate builds a case for an already-resolved syndrome.
func (g *Generator) Generate(s *dataset.Syndrome) (*CaseQuestion, error) {
	d, err := g.ds.Disease(s.DiseaseID)
	if err != nil {
		return nil, err
	}

	demo := resolveDemographics(g.r, d)
	sampled := sampler.Sample(g.r, s.Symptoms)
	main, tongue, pulse := splitFindings(sampled.Items)

	var b strings.Builder
	b.WriteString(demo.descriptor)
	b.WriteString("。")
	b.WriteString("主诉：")
	b.WriteString(demo.context)
	b.WriteString(chiefComplaint(d.KeySymptoms))
	b.WriteString(durationPhrase(g.r, d.ID))
	b.WriteString("。")
	if season := inferSeason(g.r, d.ID, s.Name); season != "" {
		b.WriteString("发病于")
		b.WriteString(season)
		b.WriteString("。")
	}
	if len(main) > 0 {
		b.WriteString("现症见：")
		b.WriteString(strings.Join(main, "，"))
		b.WriteString("。")
	}
	if len(tongue) > 0 {
		b.WriteString("舌象：")
		b.WriteString(strings.Join(tongue, "，"))
		b.WriteString("。")
	}
	if len(pulse) > 0 {
		b.WriteString("脉象：")
		b.WriteString(strings.Join(pulse, "，"))
		b.WriteString("。")
	}

	answer := StandardAnswer{
		DiseaseName:        d.Name,
		SyndromeName:       s.Name,
		Diagnosis:          d.Name + "·" + s.Name,
		Pathogenesis:       s.Pathogenesis,
		TreatmentMethod:    s.TreatmentMethod,
		Prescription:       s.Prescription.Primary,
		KeySymptomAnalysis: s.KeySymptomAnalysis,
		SymptomText:        s.Symptoms.FullText,
	}
	if s.Prescription.Alternative != nil {
		answer.AltPrescription = *s.Prescription.Alternative
	}

	return &CaseQuestion{
		ID:         uuid.NewString(),
		SyndromeID: s.ID,
		DiseaseID:  d.ID,
		Narrative:  b.String(),
		Answer:     answer,
	}, nil
}

// GenerateByDisease builds one case per syndrome of the disease, in
// dataset order.
func (g *Generator) GenerateByDisease(diseaseID string) ([]*CaseQuestion, error) {
	if _, err := g.ds.Disease(diseaseID); err != nil {
		return nil, err
	}
	syndromes := g.ds.SyndromesOf(diseaseID)
	cases := make([]*CaseQuestion, 0, len(syndromes))
	for _, s := range syndromes {
		c, err := g.Generate(s)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// GenerateRandom builds count cases, diversifying across diseases first:
// one random syndrome per shuffled disease, then uniform padding once
// every disease has contributed.
func (g *Generator) GenerateRandom(count int) ([]*CaseQuestion, error) {
	if count <= 0 || len(g.ds.Syndromes) == 0 {
		return []*CaseQuestion{}, nil
	}

	cases := make([]*CaseQuestion, 0, count)
	for _, id := range randutil.Shuffle(g.r, g.ds.DiseaseIDs()) {
		if len(cases) == count {
			return cases, nil
		}
		syndromes := g.ds.SyndromesOf(id)
		if len(syndromes) == 0 {
			continue
		}
		s, err := randutil.PickOne(g.r, syndromes)
		if err != nil {
			return nil, err
		}
		c, err := g.Generate(s)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}

	all := g.ds.SyndromeIDs()
	for len(cases) < count {
		id, err := randutil.PickOne(g.r, all)
		if err != nil {
			return nil, err
		}
		c, err := g.GenerateByID(id)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// GenerateAll builds one case per syndrome in the dataset.
func (g *Generator) GenerateAll() ([]*CaseQuestion, error) {
	cases := make([]*CaseQuestion, 0, len(g.ds.Syndromes))
	for i := range g.ds.Syndromes {
		c, err := g.Generate(&g.ds.Syndromes[i])
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// splitFindings partitions sampled items into main symptoms, tongue
// findings and pulse findings by text prefix.
func splitFindings(items []dataset.SymptomItem) (main, tongue, pulse []string) {
	for _, item := range items {
		switch {
		case strings.HasPrefix(item.Text, "舌") || strings.HasPrefix(item.Text, "苔"):
			tongue = append(tongue, item.Text)
		case strings.HasPrefix(item.Text, "脉"):
			pulse = append(pulse, item.Text)
		default:
			main = append(main, item.Text)
		}
	}
	return main, tongue, pulse
}

// chiefComplaint condenses the disease's key-symptoms field: separator
// punctuation stripped, truncated to a dozen characters.
func chiefComplaint(keySymptoms string) string {
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case '，', '、', '。', '；', ',', ';', ' ':
			return -1
		}
		return r
	}, keySymptoms)

	runes := []rune(stripped)
	if len(runes) > chiefComplaintMaxRunes {
		runes = runes[:chiefComplaintMaxRunes]
	}
	return string(runes)
}
