// Package distractor selects wrong options for multiple-choice items.
// Candidates come in tiers of decreasing clinical confusability: other
// syndromes of the same disease first, then syndromes of related
// diseases, then the rest of the dataset.
package distractor

import (
	"fmt"
	"strings"

	"github.com/qihuang/bianzheng/internal/dataset"
	"github.com/qihuang/bianzheng/internal/randutil"
)

// Field selects which syndrome attribute the distractors are drawn from.
type Field int

const (
	FieldSyndromeName Field = iota
	FieldTreatmentMethod
	FieldPrescription
	FieldPathogenesis
)

func (f Field) String() string {
	switch f {
	case FieldSyndromeName:
		return "syndrome_name"
	case FieldTreatmentMethod:
		return "treatment_method"
	case FieldPrescription:
		return "prescription"
	case FieldPathogenesis:
		return "pathogenesis"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// Value extracts the field's text from a syndrome. Prescriptions use the
// primary formula only.
func (f Field) Value(s *dataset.Syndrome) string {
	switch f {
	case FieldSyndromeName:
		return s.Name
	case FieldTreatmentMethod:
		return s.TreatmentMethod
	case FieldPrescription:
		return s.Prescription.Primary
	case FieldPathogenesis:
		return s.Pathogenesis
	}
	return ""
}

// Generate picks up to count distractor values for the given syndrome
// and field. Values are trimmed and deduplicated, never equal to the
// correct answer. Lower tiers are merged into the candidate pool only
// while the pool is still short of count. Fewer than count values are
// returned when the whole dataset cannot supply enough distinct ones.
func Generate(r *randutil.Rand, ds *dataset.Dataset, syndromeID string, field Field, count int) ([]string, error) {
	target, err := ds.Syndrome(syndromeID)
	if err != nil {
		return nil, err
	}
	disease, err := ds.Disease(target.DiseaseID)
	if err != nil {
		return nil, err
	}

	correct := strings.TrimSpace(field.Value(target))
	seen := map[string]bool{correct: true}

	var candidates []string
	merge := func(pool []*dataset.Syndrome) {
		for _, s := range pool {
			v := strings.TrimSpace(field.Value(s))
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			candidates = append(candidates, v)
		}
	}

	// Tier 1: sibling syndromes of the same disease.
	merge(siblings(ds, target))

	// Tier 2: syndromes of related diseases, tolerating stale links.
	if len(candidates) < count {
		for _, rid := range disease.RelatedDiseases {
			merge(ds.SyndromesOf(rid))
		}
	}

	// Tier 3: everything else.
	if len(candidates) < count {
		var rest []*dataset.Syndrome
		for i := range ds.Syndromes {
			rest = append(rest, &ds.Syndromes[i])
		}
		merge(rest)
	}

	return randutil.PickManyUnique(r, candidates, count), nil
}

func siblings(ds *dataset.Dataset, target *dataset.Syndrome) []*dataset.Syndrome {
	var out []*dataset.Syndrome
	for _, s := range ds.SyndromesOf(target.DiseaseID) {
		if s.ID != target.ID {
			out = append(out, s)
		}
	}
	return out
}
