package grants

import "time"

type Status string

const (
	// StatusPending: invitación emitida por el paciente, aún sin aceptar.
	StatusPending Status = "pending"
	// StatusAccepted: delegación vigente.
	StatusAccepted Status = "accepted"
)

// Capabilities son los flags que el paciente delega al caregiver.
type Capabilities struct {
	CanEditAppointments bool
	CanEditMedications  bool
	CanViewDailyTasks   bool
}

// DefaultCapabilities aplica al flujo de invitación:
// solo lectura de tareas diarias, nada de edición.
func DefaultCapabilities() Capabilities {
	return Capabilities{CanViewDailyTasks: true}
}

// Grant es la relación caregiver↔paciente, única por par.
// Una fila pending es una invitación; al aceptarla la misma fila pasa a
// accepted, así la transición invitación→delegación es un solo UPDATE.
type Grant struct {
	ID          string
	PatientID   string
	CaregiverID string

	Capabilities Capabilities
	Status       Status

	CreatedAt  time.Time
	UpdatedAt  time.Time
	AcceptedAt *time.Time
}
