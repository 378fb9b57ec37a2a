package grants

import (
	"context"
	"strings"

	"care-circle/internal/ports/access"
)

var _ access.Guard = (*Service)(nil)

// Authorize es el access guard: decide (actor, paciente, capability) contra
// el ledger, sin efectos y determinístico dado el estado.
// Reglas:
//   - el dueño siempre puede (actor == paciente);
//   - un tercero necesita un grant aceptado para el par;
//   - CapabilityAny se conforma con que el grant exista (snapshot agregado,
//     mismo chequeo débil del endpoint /patient-data original);
//   - cualquier otra capability exige el flag correspondiente en true.
func (s *Service) Authorize(ctx context.Context, actorUserID, patientID string, cap access.Capability) error {
	actorUserID = strings.TrimSpace(actorUserID)
	patientID = strings.TrimSpace(patientID)

	if actorUserID == "" || patientID == "" {
		return ErrInvalidInput
	}

	if actorUserID == patientID {
		return nil
	}

	g, err := s.repo.GetAccepted(ctx, patientID, actorUserID)
	if err != nil {
		return access.ErrForbidden
	}

	if cap == access.CapabilityAny {
		return nil
	}
	if !HasCapability(g, cap) {
		return access.ErrForbidden
	}
	return nil
}

// HasCapability valida un flag del grant.
func HasCapability(g Grant, cap access.Capability) bool {
	switch cap {
	case access.CapabilityEditAppointments:
		return g.Capabilities.CanEditAppointments
	case access.CapabilityEditMedications:
		return g.Capabilities.CanEditMedications
	case access.CapabilityViewDailyTasks:
		return g.Capabilities.CanViewDailyTasks
	default:
		return false
	}
}
