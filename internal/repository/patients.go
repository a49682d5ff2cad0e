package repository

import (
	"sort"
	"sync"

	"careconnect/internal/models"
)

// PatientRepository read-only patient list, insertion ordered.
// Every view returns a fresh slice; callers may reorder or truncate it freely.
type PatientRepository struct {
	mu       sync.RWMutex
	patients []*models.Patient
}

func NewPatientRepository(patients []*models.Patient) *PatientRepository {
	return &PatientRepository{patients: append([]*models.Patient(nil), patients...)}
}

// All every patient in insertion order
func (r *PatientRepository) All() []*models.Patient {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(make([]*models.Patient, 0, len(r.patients)), r.patients...)
}

// FindByID nil when absent
func (r *PatientRepository) FindByID(id string) *models.Patient {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.patients {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *PatientRepository) ByCriticality(c models.Criticality) []*models.Patient {
	return filterPatients(r.All(), func(p *models.Patient) bool { return p.Criticality == c })
}

// NeedingAttentionSorted patients with a known criticality, most critical
// first. Patients without a criticality are not part of this view; ties keep
// insertion order.
func (r *PatientRepository) NeedingAttentionSorted() []*models.Patient {
	out := filterPatients(r.All(), func(p *models.Patient) bool {
		_, ok := p.Criticality.Rank()
		return ok
	})
	sort.SliceStable(out, func(i, j int) bool {
		ri, _ := out[i].Criticality.Rank()
		rj, _ := out[j].Criticality.Rank()
		return ri < rj
	})
	return out
}

// UpcomingVisitsSorted patients with a scheduled visit, soonest first.
// Patients without a visit are excluded.
func (r *PatientRepository) UpcomingVisitsSorted() []*models.Patient {
	out := filterPatients(r.All(), func(p *models.Patient) bool { return p.NextVisit != nil })
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NextVisit.Before(*out[j].NextVisit)
	})
	return out
}

func filterPatients(in []*models.Patient, keep func(*models.Patient) bool) []*models.Patient {
	out := make([]*models.Patient, 0, len(in))
	for _, p := range in {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
