package records

import "context"

type AppointmentRepository interface {
	Create(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Appointment, error)
	Update(ctx context.Context, a Appointment) error
	Delete(ctx context.Context, id string) error
}

type MedicationRepository interface {
	Create(ctx context.Context, m Medication) error
	GetByID(ctx context.Context, id string) (Medication, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Medication, error)
	Update(ctx context.Context, m Medication) error
	Delete(ctx context.Context, id string) error
}

type DailyTaskRepository interface {
	Create(ctx context.Context, t DailyTask) error
	GetByID(ctx context.Context, id string) (DailyTask, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]DailyTask, error)
	Update(ctx context.Context, t DailyTask) error
	Delete(ctx context.Context, id string) error
}
