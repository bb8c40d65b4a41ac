package question

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/qihuang/bianzheng/internal/dataset"
	"github.com/qihuang/bianzheng/internal/distractor"
	"github.com/qihuang/bianzheng/internal/randutil"
	"github.com/qihuang/bianzheng/internal/sampler"
)

const distractorCount = 4

var optionLabels = []string{"A", "B", "C", "D", "E"}

// Engine generates practice questions from one dataset.
type Engine struct {
	ds *dataset.Dataset
	r  *randutil.Rand
}

// NewEngine returns an engine drawing randomness from r.
func NewEngine(ds *dataset.Dataset, r *randutil.Rand) *Engine {
	return &Engine{ds: ds, r: r}
}

// Generate builds one question for the syndrome. An empty qt picks an
// archetype uniformly at random.
func (e *Engine) Generate(syndromeID string, qt Type) (*Question, error) {
	s, err := e.ds.Syndrome(syndromeID)
	if err != nil {
		return nil, err
	}
	d, err := e.ds.Disease(s.DiseaseID)
	if err != nil {
		return nil, err
	}
	if qt == "" {
		picked, err := randutil.PickOne(e.r, AllTypes())
		if err != nil {
			return nil, err
		}
		qt = picked
	}

	correct := qt.field().Value(s)
	stem, err := e.stem(qt, d, s)
	if err != nil {
		return nil, err
	}

	wrong, err := distractor.Generate(e.r, e.ds, syndromeID, qt.field(), distractorCount)
	if err != nil {
		return nil, err
	}

	texts := randutil.Shuffle(e.r, append([]string{correct}, wrong...))
	if len(texts) > len(optionLabels) {
		texts = texts[:len(optionLabels)]
	}
	options := make([]Option, len(texts))
	correctIdx := -1
	for i, text := range texts {
		options[i] = Option{Label: optionLabels[i], Text: text}
		if text == correct {
			correctIdx = i
		}
	}
	if correctIdx < 0 {
		// Truncation can only drop distractors when the correct answer
		// survives the shuffle inside the first five slots; with 4
		// distractors it always does. Guard anyway.
		return nil, fmt.Errorf("correct answer lost assembling options for %s", syndromeID)
	}

	return &Question{
		ID:           uuid.NewString(),
		Type:         qt,
		SyndromeID:   s.ID,
		DiseaseID:    d.ID,
		Stem:         stem,
		Options:      options,
		CorrectIndex: correctIdx,
		Explanation:  newExplanation(s, correct),
	}, nil
}

func (e *Engine) stem(qt Type, d *dataset.Disease, s *dataset.Syndrome) (string, error) {
	if qt.hasVignette() {
		sampled := sampler.Sample(e.r, s.Symptoms)
		prefix := vignette(e.r, d, s, sampled.Text)
		switch qt {
		case TypeSyndrome:
			return prefix + "根据上述症状，最可能的证型是？", nil
		case TypeTreatment:
			return prefix + "针对上述病证，应采用的治法是？", nil
		case TypePrescription:
			return prefix + "治疗上述病证，应首选的方剂是？", nil
		}
	}
	switch qt {
	case TypePathogenesis:
		return fmt.Sprintf("%s%s的证机概要是？", d.Name, s.Name), nil
	case TypeSyndromeFromRx:
		return fmt.Sprintf("治疗%s时，首选「%s」的证型是？", d.Name, s.Prescription.Primary), nil
	case TypeRxFromTreatment:
		return fmt.Sprintf("%s某证治法为「%s」，应选用的方剂是？", d.Name, s.TreatmentMethod), nil
	}
	return "", fmt.Errorf("unknown question type %q", qt)
}

// GenerateByDisease builds count questions for one disease with
// coverage-first allocation: each syndrome gets a question before any
// syndrome repeats. An empty types slice allows all archetypes. Returns
// an empty slice when the disease has no syndromes.
func (e *Engine) GenerateByDisease(diseaseID string, count int, types []Type) ([]*Question, error) {
	if _, err := e.ds.Disease(diseaseID); err != nil {
		return nil, err
	}
	syndromes := e.ds.SyndromesOf(diseaseID)
	if len(syndromes) == 0 || count <= 0 {
		return []*Question{}, nil
	}

	pool := types
	if len(pool) == 0 {
		pool = AllTypes()
	}

	questions := make([]*Question, 0, count)
	for _, s := range randutil.Shuffle(e.r, syndromes) {
		if len(questions) == count {
			return questions, nil
		}
		qt, err := randutil.PickOne(e.r, pool)
		if err != nil {
			return nil, err
		}
		q, err := e.Generate(s.ID, qt)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	// All syndromes covered; fill the remainder with replacement.
	for len(questions) < count {
		s, err := randutil.PickOne(e.r, syndromes)
		if err != nil {
			return nil, err
		}
		qt, err := randutil.PickOne(e.r, pool)
		if err != nil {
			return nil, err
		}
		q, err := e.Generate(s.ID, qt)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// GenerateRandom builds count questions over distinct syndromes drawn
// from the whole dataset, padding with repeats only once every syndrome
// has been used.
func (e *Engine) GenerateRandom(count int, types []Type) ([]*Question, error) {
	if count <= 0 || len(e.ds.Syndromes) == 0 {
		return []*Question{}, nil
	}

	pool := types
	if len(pool) == 0 {
		pool = AllTypes()
	}

	ids := randutil.PickManyUnique(e.r, e.ds.SyndromeIDs(), count)
	questions := make([]*Question, 0, count)
	for _, id := range ids {
		qt, err := randutil.PickOne(e.r, pool)
		if err != nil {
			return nil, err
		}
		q, err := e.Generate(id, qt)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	all := e.ds.SyndromeIDs()
	for len(questions) < count {
		id, err := randutil.PickOne(e.r, all)
		if err != nil {
			return nil, err
		}
		qt, err := randutil.PickOne(e.r, pool)
		if err != nil {
			return nil, err
		}
		q, err := e.Generate(id, qt)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}
