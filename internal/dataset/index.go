package dataset

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a disease or syndrome id does not resolve.
// A stale or corrupted id is a caller bug; it is surfaced immediately
// instead of silently defaulting.
var ErrNotFound = errors.New("not found")

// Dataset is the indexed in-memory view of the knowledge base. It is
// read-only after construction and safe for concurrent use.
type Dataset struct {
	Diseases  []Disease
	Syndromes []Syndrome

	diseaseByID        map[string]*Disease
	syndromeByID       map[string]*Syndrome
	syndromesByDisease map[string][]*Syndrome
}

// New builds the indexed dataset from raw records. It does not validate;
// call Validate separately when loading untrusted files.
func New(diseases []Disease, syndromes []Syndrome) *Dataset {
	ds := &Dataset{
		Diseases:           diseases,
		Syndromes:          syndromes,
		diseaseByID:        make(map[string]*Disease, len(diseases)),
		syndromeByID:       make(map[string]*Syndrome, len(syndromes)),
		syndromesByDisease: make(map[string][]*Syndrome),
	}

	for i := range ds.Diseases {
		ds.diseaseByID[ds.Diseases[i].ID] = &ds.Diseases[i]
	}
	for i := range ds.Syndromes {
		s := &ds.Syndromes[i]
		ds.syndromeByID[s.ID] = s
		ds.syndromesByDisease[s.DiseaseID] = append(ds.syndromesByDisease[s.DiseaseID], s)
	}

	return ds
}

// Disease returns a disease by id.
func (ds *Dataset) Disease(id string) (*Disease, error) {
	d, ok := ds.diseaseByID[id]
	if !ok {
		return nil, fmt.Errorf("disease %q: %w", id, ErrNotFound)
	}
	return d, nil
}

// Syndrome returns a syndrome by id.
func (ds *Dataset) Syndrome(id string) (*Syndrome, error) {
	s, ok := ds.syndromeByID[id]
	if !ok {
		return nil, fmt.Errorf("syndrome %q: %w", id, ErrNotFound)
	}
	return s, nil
}

// SyndromesOf returns the syndromes declaring membership in the given
// disease, in dataset order. Empty when the disease is unknown.
func (ds *Dataset) SyndromesOf(diseaseID string) []*Syndrome {
	return ds.syndromesByDisease[diseaseID]
}

// SyndromeIDs returns all syndrome ids in dataset order.
func (ds *Dataset) SyndromeIDs() []string {
	ids := make([]string, len(ds.Syndromes))
	for i := range ds.Syndromes {
		ids[i] = ds.Syndromes[i].ID
	}
	return ids
}

// DiseaseIDs returns all disease ids in dataset order.
func (ds *Dataset) DiseaseIDs() []string {
	ids := make([]string, len(ds.Diseases))
	for i := range ds.Diseases {
		ids[i] = ds.Diseases[i].ID
	}
	return ids
}

// ByCategory returns the diseases in a category, in dataset order.
func (ds *Dataset) ByCategory(c Category) []*Disease {
	var result []*Disease
	for i := range ds.Diseases {
		if ds.Diseases[i].Category == c {
			result = append(result, &ds.Diseases[i])
		}
	}
	return result
}
