package records

import "time"

// Los tres tipos de registro pertenecen a exactamente un usuario (el
// paciente dueño). Los campos date/time/duration/frequency son texto
// opaco: los clientes los mandan y esperan de vuelta tal cual.

type Appointment struct {
	ID     string
	UserID string // dueño

	Title       string
	Date        string
	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Medication struct {
	ID     string
	UserID string

	Name     string
	Dosage   string
	Time     string
	Duration string
	IsTaken  bool // se fija en create/update, no hay toggle aparte

	CreatedAt time.Time
	UpdatedAt time.Time
}

type DailyTask struct {
	ID     string
	UserID string

	Name      string
	Location  string
	Time      string
	Frequency string

	CreatedAt time.Time
	UpdatedAt time.Time
}
