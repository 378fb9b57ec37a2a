package memory

import (
	"context"
	"errors"
	"sync"

	"care-circle/internal/domain/records"
)

// Los tres repos de registros comparten la misma forma: slice con orden de
// inserción (equivale al ORDER BY created_at ASC del adapter de Postgres)
// protegido por RWMutex.

type appointmentsRepo struct {
	mu    sync.RWMutex
	items []records.Appointment
}

func NewAppointmentsRepo() records.AppointmentRepository {
	return &appointmentsRepo{}
}

func (r *appointmentsRepo) Create(ctx context.Context, a records.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		return errors.New("appointment id required")
	}
	r.items = append(r.items, a)
	return nil
}

func (r *appointmentsRepo) GetByID(ctx context.Context, id string) (records.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.items {
		if a.ID == id {
			return a, nil
		}
	}
	return records.Appointment{}, records.ErrNotFound
}

func (r *appointmentsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]records.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.Appointment, 0)
	for _, a := range r.items {
		if a.UserID == ownerUserID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *appointmentsRepo) Update(ctx context.Context, a records.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == a.ID {
			r.items[i] = a
			return nil
		}
	}
	return records.ErrNotFound
}

func (r *appointmentsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return records.ErrNotFound
}

type medicationsRepo struct {
	mu    sync.RWMutex
	items []records.Medication
}

func NewMedicationsRepo() records.MedicationRepository {
	return &medicationsRepo{}
}

func (r *medicationsRepo) Create(ctx context.Context, m records.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == "" {
		return errors.New("medication id required")
	}
	r.items = append(r.items, m)
	return nil
}

func (r *medicationsRepo) GetByID(ctx context.Context, id string) (records.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.items {
		if m.ID == id {
			return m, nil
		}
	}
	return records.Medication{}, records.ErrNotFound
}

func (r *medicationsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]records.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.Medication, 0)
	for _, m := range r.items {
		if m.UserID == ownerUserID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *medicationsRepo) Update(ctx context.Context, m records.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == m.ID {
			r.items[i] = m
			return nil
		}
	}
	return records.ErrNotFound
}

func (r *medicationsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return records.ErrNotFound
}

type dailyTasksRepo struct {
	mu    sync.RWMutex
	items []records.DailyTask
}

func NewDailyTasksRepo() records.DailyTaskRepository {
	return &dailyTasksRepo{}
}

func (r *dailyTasksRepo) Create(ctx context.Context, t records.DailyTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.ID == "" {
		return errors.New("daily task id required")
	}
	r.items = append(r.items, t)
	return nil
}

func (r *dailyTasksRepo) GetByID(ctx context.Context, id string) (records.DailyTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.items {
		if t.ID == id {
			return t, nil
		}
	}
	return records.DailyTask{}, records.ErrNotFound
}

func (r *dailyTasksRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]records.DailyTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.DailyTask, 0)
	for _, t := range r.items {
		if t.UserID == ownerUserID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *dailyTasksRepo) Update(ctx context.Context, t records.DailyTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == t.ID {
			r.items[i] = t
			return nil
		}
	}
	return records.ErrNotFound
}

func (r *dailyTasksRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return records.ErrNotFound
}
