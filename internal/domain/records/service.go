package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"care-circle/internal/ports/access"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// PatientDirectory evita importar el paquete users (rompe ciclos).
type PatientDirectory interface {
	ProfileOf(ctx context.Context, userID string) (id, name, username string, err error)
}

// Service es la fachada de acceso a registros: toda operación donde el
// actor no es el dueño pasa por el guard antes de tocar el repo.
type Service struct {
	appointments AppointmentRepository
	medications  MedicationRepository
	dailyTasks   DailyTaskRepository

	guard    access.Guard
	patients PatientDirectory

	now func() time.Time
}

func NewService(
	appointments AppointmentRepository,
	medications MedicationRepository,
	dailyTasks DailyTaskRepository,
	guard access.Guard,
	patients PatientDirectory,
) *Service {
	return &Service{
		appointments: appointments,
		medications:  medications,
		dailyTasks:   dailyTasks,
		guard:        guard,
		patients:     patients,
		now:          time.Now,
	}
}

// authorize normaliza ids y consulta el guard cuando actor != dueño.
func (s *Service) authorize(ctx context.Context, actorUserID, ownerUserID string, cap access.Capability) (string, error) {
	actorUserID = strings.TrimSpace(actorUserID)
	ownerUserID = strings.TrimSpace(ownerUserID)

	if actorUserID == "" {
		return "", ErrInvalidInput
	}
	if ownerUserID == "" {
		ownerUserID = actorUserID
	}
	if err := s.guard.Authorize(ctx, actorUserID, ownerUserID, cap); err != nil {
		return "", err
	}
	return ownerUserID, nil
}

// -------------------------
// Appointments
// -------------------------

type AppointmentInput struct {
	Title       string
	Date        string
	Description string
}

func (s *Service) ListAppointments(ctx context.Context, actorUserID, ownerUserID string) ([]Appointment, error) {
	owner, err := s.authorize(ctx, actorUserID, ownerUserID, access.CapabilityEditAppointments)
	if err != nil {
		return nil, err
	}
	return s.appointments.ListByOwner(ctx, owner)
}

func (s *Service) CreateAppointment(ctx context.Context, actorUserID, ownerUserID string, in AppointmentInput) (Appointment, error) {
	owner, err := s.authorize(ctx, actorUserID, ownerUserID, access.CapabilityEditAppointments)
	if err != nil {
		return Appointment{}, err
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Date) == "" {
		return Appointment{}, ErrInvalidInput
	}

	now := s.now()
	a := Appointment{
		ID:          uuid.NewString(),
		UserID:      owner,
		Title:       strings.TrimSpace(in.Title),
		Date:        strings.TrimSpace(in.Date),
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) UpdateAppointment(ctx context.Context, actorUserID, ownerUserID, id string, in AppointmentInput) (Appointment, error) {
	owner, err := s.authorize(ctx, actorUserID, ownerUserID, access.CapabilityEditAppointments)
	if err != nil {
		return Appointment{}, err
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Date) == "" {
		return Appointment{}, ErrInvalidInput
	}

	current, err := s.appointments.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Appointment{}, ErrNotFound
	}
	// id de otro dueño => not found, nunca forbidden (no confirmamos existencia)
	if current.UserID != owner {
		return Appointment{}, ErrNotFound
	}

	current.Title = strings.TrimSpace(in.Title)
	current.Date = strings.TrimSpace(in.Date)
	current.Description = strings.TrimSpace(in.Description)
	current.UpdatedAt = s.now()

	if err := s.appointments.Update(ctx, current); err != nil {
		return Appointment{}, err
	}
	return current, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, actorUserID, ownerUserID, id string) error {
	owner, err := s.authorize(ctx, actorUserID, ownerUserID, access.CapabilityEditAppointments)
	if err != nil {
		return err
	}

	current, err := s.appointments.GetByID(ctx, strings.TrimSpace(id))
	if err != nil || current.UserID != owner {
		return ErrNotFound
	}
	return s.appointments.Delete(ctx, current.ID)
}

// -------------------------
// Medications
// -------------------------

type MedicationInput struct {
	Name     string
	Dosage   string
	Time     string
	Duration string
	IsTaken  bool
}

func (s *Service) ListMedications(ctx context.Context, actorUserID, ownerUserID string) ([]Medication, error) {
	owner, err := s.authorize(ctx, actorUserID, ownerUserID, access.CapabilityEditMedications)
	if err != nil {
		return nil, err
	}
	return s.medications.ListByOwner(ctx, owner)
}

func (s *Service) CreateMedication(ctx context.Context, actorUserID, ownerUserID string, in MedicationInput) (Medication, error) {
	owner, err := s.authorize(ctx, actorUserID, ownerUserID, access.CapabilityEditMedications)
	if err != nil {
		return Medication{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return Medication{}, ErrInvalidInput
	}

	now := s.now()
	m := Medication{
		ID:        uuid.NewString(),
		UserID:    owner,
		Name:      strings.TrimSpace(in.Name),
		Dosage:    strings.TrimSpace(in.Dosage),
		Time:      strings.TrimSpace(in.Time),
		Duration:  strings.TrimSpace(in.Duration),
		IsTaken:   in.IsTaken,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.medications.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) UpdateMedication(ctx context.Context, actorUserID, ownerUserID, id string, in MedicationInput) (Medication, error) {
	owner, err := s.authorize(ctx, actorUserID, ownerUserID, access.CapabilityEditMedications)
	if err != nil {
		return Medication{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return Medication{}, ErrInvalidInput
	}

	current, err := s.medications.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Medication{}, ErrNotFound
	}
	if current.UserID != owner {
		return Medication{}, ErrNotFound
	}

	current.Name = strings.TrimSpace(in.Name)
	current.Dosage = strings.TrimSpace(in.Dosage)
	current.Time = strings.TrimSpace(in.Time)
	current.Duration = strings.TrimSpace(in.Duration)
	current.IsTaken = in.IsTaken
	current.UpdatedAt = s.now()

	if err := s.medications.Update(ctx, current); err != nil {
		return Medication{}, err
	}
	return current, nil
}

func (s *Service) DeleteMedication(ctx context.Context, actorUserID, ownerUserID, id string) error {
	owner, err := s.authorize(ctx, actorUserID, ownerUserID, access.CapabilityEditMedications)
	if err != nil {
		return err
	}

	current, err := s.medications.GetByID(ctx, strings.TrimSpace(id))
	if err != nil || current.UserID != owner {
		return ErrNotFound
	}
	return s.medications.Delete(ctx, current.ID)
}

// -------------------------
// Daily tasks
// -------------------------

type DailyTaskInput struct {
	Name      string
	Location  string
	Time      string
	Frequency string
}

func (s *Service) ListDailyTasks(ctx context.Context, actorUserID, ownerUserID string) ([]DailyTask, error) {
	owner, err := s.authorize(ctx, actorUserID, ownerUserID, access.CapabilityViewDailyTasks)
	if err != nil {
		return nil, err
	}
	return s.dailyTasks.ListByOwner(ctx, owner)
}

func (s *Service) CreateDailyTask(ctx context.Context, actorUserID, ownerUserID string, in DailyTaskInput) (DailyTask, error) {
	owner, err := s.requireTaskOwner(actorUserID, ownerUserID)
	if err != nil {
		return DailyTask{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return DailyTask{}, ErrInvalidInput
	}

	now := s.now()
	t := DailyTask{
		ID:        uuid.NewString(),
		UserID:    owner,
		Name:      strings.TrimSpace(in.Name),
		Location:  strings.TrimSpace(in.Location),
		Time:      strings.TrimSpace(in.Time),
		Frequency: strings.TrimSpace(in.Frequency),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.dailyTasks.Create(ctx, t); err != nil {
		return DailyTask{}, err
	}
	return t, nil
}

func (s *Service) UpdateDailyTask(ctx context.Context, actorUserID, ownerUserID, id string, in DailyTaskInput) (DailyTask, error) {
	owner, err := s.requireTaskOwner(actorUserID, ownerUserID)
	if err != nil {
		return DailyTask{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return DailyTask{}, ErrInvalidInput
	}

	current, err := s.dailyTasks.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return DailyTask{}, ErrNotFound
	}
	if current.UserID != owner {
		return DailyTask{}, ErrNotFound
	}

	current.Name = strings.TrimSpace(in.Name)
	current.Location = strings.TrimSpace(in.Location)
	current.Time = strings.TrimSpace(in.Time)
	current.Frequency = strings.TrimSpace(in.Frequency)
	current.UpdatedAt = s.now()

	if err := s.dailyTasks.Update(ctx, current); err != nil {
		return DailyTask{}, err
	}
	return current, nil
}

func (s *Service) DeleteDailyTask(ctx context.Context, actorUserID, ownerUserID, id string) error {
	owner, err := s.requireTaskOwner(actorUserID, ownerUserID)
	if err != nil {
		return err
	}

	current, err := s.dailyTasks.GetByID(ctx, strings.TrimSpace(id))
	if err != nil || current.UserID != owner {
		return ErrNotFound
	}
	return s.dailyTasks.Delete(ctx, current.ID)
}

// requireTaskOwner: las tareas diarias no tienen flag de edición delegada
// (solo can_view_daily_tasks), así que mutarlas es siempre cosa del dueño.
func (s *Service) requireTaskOwner(actorUserID, ownerUserID string) (string, error) {
	actorUserID = strings.TrimSpace(actorUserID)
	ownerUserID = strings.TrimSpace(ownerUserID)

	if actorUserID == "" {
		return "", ErrInvalidInput
	}
	if ownerUserID == "" || ownerUserID == actorUserID {
		return actorUserID, nil
	}
	return "", access.ErrForbidden
}
