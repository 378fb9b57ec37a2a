package memory

import (
	"context"
	"errors"
	"sync"

	"care-circle/internal/domain/grants"
)

type grantsRepo struct {
	mu    sync.RWMutex
	items []grants.Grant // orden de inserción = orden por created_at
}

func NewGrantsRepo() grants.Repository {
	return &grantsRepo{}
}

func pairKey(patientID, caregiverID string) string {
	return patientID + "|" + caregiverID
}

func (r *grantsRepo) Create(ctx context.Context, g grants.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g.ID == "" {
		return errors.New("grant id required")
	}
	for _, existing := range r.items {
		if pairKey(existing.PatientID, existing.CaregiverID) == pairKey(g.PatientID, g.CaregiverID) {
			return grants.ErrDuplicatePair
		}
	}
	r.items = append(r.items, g)
	return nil
}

func (r *grantsRepo) Update(ctx context.Context, g grants.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == g.ID {
			r.items[i] = g
			return nil
		}
	}
	return ErrNotFound
}

func (r *grantsRepo) GetByPair(ctx context.Context, patientID, caregiverID string) (grants.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.items {
		if g.PatientID == patientID && g.CaregiverID == caregiverID {
			return g, nil
		}
	}
	return grants.Grant{}, ErrNotFound
}

func (r *grantsRepo) GetAccepted(ctx context.Context, patientID, caregiverID string) (grants.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.items {
		if g.PatientID == patientID && g.CaregiverID == caregiverID && g.Status == grants.StatusAccepted {
			return g, nil
		}
	}
	return grants.Grant{}, ErrNotFound
}

func (r *grantsRepo) ListPendingByCaregiver(ctx context.Context, caregiverID string) ([]grants.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]grants.Grant, 0)
	for _, g := range r.items {
		if g.CaregiverID == caregiverID && g.Status == grants.StatusPending {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *grantsRepo) ListByPatient(ctx context.Context, patientID string) ([]grants.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]grants.Grant, 0)
	for _, g := range r.items {
		if g.PatientID == patientID {
			out = append(out, g)
		}
	}
	return out, nil
}
