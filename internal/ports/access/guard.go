package access

import (
	"context"
	"errors"
)

// ErrForbidden: actor autenticado pero sin permiso sobre el paciente.
var ErrForbidden = errors.New("forbidden")

// Capability es un permiso delegable sobre los registros de un paciente.
type Capability string

const (
	CapabilityEditAppointments Capability = "can_edit_appointments"
	CapabilityEditMedications  Capability = "can_edit_medications"
	CapabilityViewDailyTasks   Capability = "can_view_daily_tasks"

	// CapabilityAny: basta con que exista un grant aceptado.
	// Lo usa el snapshot agregado del paciente, que no exige un flag puntual.
	CapabilityAny Capability = "any"
)

// Guard decide si un actor puede operar sobre los datos de un paciente.
// Regla: el dueño siempre puede; un tercero necesita un grant aceptado
// con el flag correspondiente.
type Guard interface {
	Authorize(ctx context.Context, actorUserID, patientID string, cap Capability) error
}
