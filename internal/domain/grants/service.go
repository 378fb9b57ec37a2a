package grants

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

const (
	rolePatient   = "patient"
	roleCaregiver = "caregiver"
)

// UserDirectory evita importar el paquete users (rompe ciclos).
type UserDirectory interface {
	RoleOf(ctx context.Context, userID string) (string, error)
	CaregiverIDByUsername(ctx context.Context, username string) (string, error)
}

type Service struct {
	repo  Repository
	users UserDirectory
	now   func() time.Time
}

func NewService(repo Repository, users UserDirectory) *Service {
	return &Service{
		repo:  repo,
		users: users,
		now:   time.Now,
	}
}

type AssignInput struct {
	CaregiverID  string
	Capabilities Capabilities
}

// AssignDirect crea la delegación sin handshake: el paciente nombra al
// caregiver con flags explícitos y el grant nace ya aceptado.
// Re-asignar un par existente es no-op (política ON CONFLICT DO NOTHING);
// una invitación pendiente se promueve con los flags explícitos, porque la
// asignación directa es más intencional que la invitación abierta.
func (s *Service) AssignDirect(ctx context.Context, actorUserID string, in AssignInput) (Grant, error) {
	actorUserID = strings.TrimSpace(actorUserID)
	caregiverID := strings.TrimSpace(in.CaregiverID)

	if actorUserID == "" || caregiverID == "" {
		return Grant{}, ErrInvalidInput
	}
	if actorUserID == caregiverID {
		return Grant{}, ErrInvalidInput
	}

	if err := s.requirePatient(ctx, actorUserID); err != nil {
		return Grant{}, err
	}

	role, err := s.users.RoleOf(ctx, caregiverID)
	if err != nil || role != roleCaregiver {
		return Grant{}, ErrNotFound
	}

	now := s.now()

	existing, err := s.repo.GetByPair(ctx, actorUserID, caregiverID)
	if err == nil {
		if existing.Status == StatusAccepted {
			return existing, nil
		}
		existing.Capabilities = in.Capabilities
		existing.Status = StatusAccepted
		existing.AcceptedAt = &now
		existing.UpdatedAt = now
		if err := s.repo.Update(ctx, existing); err != nil {
			return Grant{}, err
		}
		return existing, nil
	}

	g := Grant{
		ID:           uuid.NewString(),
		PatientID:    actorUserID,
		CaregiverID:  caregiverID,
		Capabilities: in.Capabilities,
		Status:       StatusAccepted,
		CreatedAt:    now,
		UpdatedAt:    now,
		AcceptedAt:   &now,
	}

	if err := s.repo.Create(ctx, g); err != nil {
		// carrera con otro insert del mismo par: devolvemos el que ganó
		if errors.Is(err, ErrDuplicatePair) {
			return s.repo.GetByPair(ctx, actorUserID, caregiverID)
		}
		return Grant{}, err
	}
	return g, nil
}

// Invite crea una invitación pendiente nombrando al caregiver por username.
// El caregiver debe existir con rol caregiver. Re-invitar un par que ya
// tiene fila (pendiente o aceptada) es no-op, no error.
func (s *Service) Invite(ctx context.Context, actorUserID, caregiverUsername string) (Grant, error) {
	actorUserID = strings.TrimSpace(actorUserID)
	caregiverUsername = strings.TrimSpace(caregiverUsername)

	if actorUserID == "" || caregiverUsername == "" {
		return Grant{}, ErrInvalidInput
	}

	if err := s.requirePatient(ctx, actorUserID); err != nil {
		return Grant{}, err
	}

	caregiverID, err := s.users.CaregiverIDByUsername(ctx, caregiverUsername)
	if err != nil {
		return Grant{}, ErrNotFound
	}
	if caregiverID == actorUserID {
		return Grant{}, ErrInvalidInput
	}

	if existing, err := s.repo.GetByPair(ctx, actorUserID, caregiverID); err == nil {
		return existing, nil
	}

	now := s.now()
	g := Grant{
		ID:           uuid.NewString(),
		PatientID:    actorUserID,
		CaregiverID:  caregiverID,
		Capabilities: DefaultCapabilities(),
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, g); err != nil {
		if errors.Is(err, ErrDuplicatePair) {
			return s.repo.GetByPair(ctx, actorUserID, caregiverID)
		}
		return Grant{}, err
	}
	return g, nil
}

// ListPendingInvites devuelve las invitaciones dirigidas a este caregiver,
// en orden de creación.
func (s *Service) ListPendingInvites(ctx context.Context, caregiverID string) ([]Grant, error) {
	caregiverID = strings.TrimSpace(caregiverID)
	if caregiverID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListPendingByCaregiver(ctx, caregiverID)
}

// Accept pasa la invitación (patient, actor) a accepted.
// Idempotente: aceptar un par ya aceptado devuelve el grant existente,
// nunca crea una segunda fila. Como es un UPDATE de una sola fila, la
// invariante "invitación aceptada sin grant" no puede darse.
func (s *Service) Accept(ctx context.Context, actorUserID, patientID string) (Grant, error) {
	actorUserID = strings.TrimSpace(actorUserID)
	patientID = strings.TrimSpace(patientID)

	if actorUserID == "" || patientID == "" {
		return Grant{}, ErrInvalidInput
	}

	g, err := s.repo.GetByPair(ctx, patientID, actorUserID)
	if err != nil {
		return Grant{}, ErrNotFound
	}

	if g.Status == StatusAccepted {
		return g, nil
	}

	now := s.now()
	g.Status = StatusAccepted
	g.AcceptedAt = &now
	g.UpdatedAt = now

	if err := s.repo.Update(ctx, g); err != nil {
		return Grant{}, err
	}
	return g, nil
}

// ListByPatient devuelve el ledger de un paciente (pendientes y aceptados).
func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]Grant, error) {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPatient(ctx, patientID)
}

// requirePatient: acciones del ledger que arrancan en el paciente.
// Un actor que no resuelve a usuario cuenta como no autorizado.
func (s *Service) requirePatient(ctx context.Context, userID string) error {
	role, err := s.users.RoleOf(ctx, userID)
	if err != nil || role != rolePatient {
		return access.ErrForbidden
	}
	return nil
}
