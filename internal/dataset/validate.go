package dataset

import (
	"fmt"
	"strings"
)

// Validate performs all structural checks on the dataset.
// Returns a combined error describing every problem found, or nil if valid.
func (ds *Dataset) Validate() error {
	var errs []string

	diseaseIDs := make(map[string]bool, len(ds.Diseases))
	for _, d := range ds.Diseases {
		if diseaseIDs[d.ID] {
			errs = append(errs, fmt.Sprintf("duplicate disease id: %q", d.ID))
		}
		diseaseIDs[d.ID] = true
	}

	syndromeIDs := make(map[string]bool, len(ds.Syndromes))
	for _, s := range ds.Syndromes {
		if syndromeIDs[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate syndrome id: %q", s.ID))
		}
		syndromeIDs[s.ID] = true
	}

	// Syndrome-level checks.
	for _, s := range ds.Syndromes {
		if !diseaseIDs[s.DiseaseID] {
			errs = append(errs, fmt.Sprintf("syndrome %q references nonexistent disease %q", s.ID, s.DiseaseID))
		}
		if len(s.Symptoms.Items) == 0 {
			errs = append(errs, fmt.Sprintf("syndrome %q has no symptom items", s.ID))
		}
		hasKey := false
		for _, item := range s.Symptoms.Items {
			if item.IsKey {
				hasKey = true
				break
			}
		}
		if !hasKey && len(s.Symptoms.Items) > 0 {
			errs = append(errs, fmt.Sprintf("syndrome %q has no key symptom item", s.ID))
		}
		if strings.TrimSpace(s.Prescription.Primary) == "" {
			errs = append(errs, fmt.Sprintf("syndrome %q has empty primary prescription", s.ID))
		}
		if s.Prescription.Alternative != nil && strings.TrimSpace(*s.Prescription.Alternative) == "" {
			errs = append(errs, fmt.Sprintf("syndrome %q has empty alternative prescription (use null instead)", s.ID))
		}
	}

	// Disease membership must exactly match the syndromes that declare it.
	declared := make(map[string][]string)
	for _, s := range ds.Syndromes {
		declared[s.DiseaseID] = append(declared[s.DiseaseID], s.ID)
	}
	for _, d := range ds.Diseases {
		listed := make(map[string]bool, len(d.Syndromes))
		for _, sid := range d.Syndromes {
			if listed[sid] {
				errs = append(errs, fmt.Sprintf("disease %q lists syndrome %q twice", d.ID, sid))
			}
			listed[sid] = true
			if !syndromeIDs[sid] {
				errs = append(errs, fmt.Sprintf("disease %q lists nonexistent syndrome %q", d.ID, sid))
			}
		}
		for _, sid := range declared[d.ID] {
			if !listed[sid] {
				errs = append(errs, fmt.Sprintf("disease %q omits syndrome %q which declares membership", d.ID, sid))
			}
		}
		for _, sid := range d.Syndromes {
			if s, ok := ds.syndromeByID[sid]; ok && s.DiseaseID != d.ID {
				errs = append(errs, fmt.Sprintf("disease %q lists syndrome %q which belongs to %q", d.ID, sid, s.DiseaseID))
			}
		}
		if len(d.Syndromes) == 0 {
			errs = append(errs, fmt.Sprintf("disease %q has no syndromes", d.ID))
		}
	}

	// Related-disease links must resolve and be bidirectional.
	for _, d := range ds.Diseases {
		for _, rid := range d.RelatedDiseases {
			if rid == d.ID {
				errs = append(errs, fmt.Sprintf("disease %q relates to itself", d.ID))
				continue
			}
			other, ok := ds.diseaseByID[rid]
			if !ok {
				errs = append(errs, fmt.Sprintf("disease %q relates to nonexistent disease %q", d.ID, rid))
				continue
			}
			back := false
			for _, backID := range other.RelatedDiseases {
				if backID == d.ID {
					back = true
					break
				}
			}
			if !back {
				errs = append(errs, fmt.Sprintf("asymmetric relation: %q relates to %q but not vice versa", d.ID, rid))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("dataset validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
