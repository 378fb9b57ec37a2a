package grants

import (
	"context"
	"errors"
)

// ErrDuplicatePair la devuelve Create cuando ya existe una fila para
// (patient, caregiver). El índice único del storage la garantiza incluso
// ante inserts concurrentes; el service la trata como no-op releyendo.
var ErrDuplicatePair = errors.New("grant already exists for pair")

type Repository interface {
	Create(ctx context.Context, g Grant) error
	Update(ctx context.Context, g Grant) error
	GetByPair(ctx context.Context, patientID, caregiverID string) (Grant, error)
	GetAccepted(ctx context.Context, patientID, caregiverID string) (Grant, error)
	ListPendingByCaregiver(ctx context.Context, caregiverID string) ([]Grant, error)
	ListByPatient(ctx context.Context, patientID string) ([]Grant, error)
}
