package records

import (
	"context"
	"strings"

	"care-circle/internal/ports/access"
)

type PatientProfile struct {
	ID       string
	Name     string
	Username string
}

// Snapshot es la vista agregada del paciente que consumen los caregivers.
type Snapshot struct {
	Patient      PatientProfile
	Appointments []Appointment
	Medications  []Medication
	DailyTasks   []DailyTask
}

// PatientSnapshot arma la vista completa. El guard se consulta con
// CapabilityAny: alcanza con que exista un grant aceptado, sin mirar flags
// puntuales (chequeo deliberadamente más débil que el de las mutaciones).
func (s *Service) PatientSnapshot(ctx context.Context, actorUserID, patientID string) (Snapshot, error) {
	actorUserID = strings.TrimSpace(actorUserID)
	patientID = strings.TrimSpace(patientID)

	if actorUserID == "" || patientID == "" {
		return Snapshot{}, ErrInvalidInput
	}

	if err := s.guard.Authorize(ctx, actorUserID, patientID, access.CapabilityAny); err != nil {
		return Snapshot{}, err
	}

	id, name, username, err := s.patients.ProfileOf(ctx, patientID)
	if err != nil {
		return Snapshot{}, ErrNotFound
	}

	appts, err := s.appointments.ListByOwner(ctx, patientID)
	if err != nil {
		return Snapshot{}, err
	}
	meds, err := s.medications.ListByOwner(ctx, patientID)
	if err != nil {
		return Snapshot{}, err
	}
	tasks, err := s.dailyTasks.ListByOwner(ctx, patientID)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Patient:      PatientProfile{ID: id, Name: name, Username: username},
		Appointments: appts,
		Medications:  meds,
		DailyTasks:   tasks,
	}, nil
}
