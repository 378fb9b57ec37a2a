package postgres

import (
	"context"
	"database/sql"
	"strings"

	"care-circle/internal/domain/grants"
)

type GrantsRepo struct {
	db *sql.DB
}

func NewGrantsRepo(db *sql.DB) *GrantsRepo {
	return &GrantsRepo{db: db}
}

// Create inserta con ON CONFLICT DO NOTHING sobre el índice único del par:
// si la fila ya existía (carrera incluida) devolvemos ErrDuplicatePair y el
// service decide qué hacer con la fila vigente.
func (r *GrantsRepo) Create(ctx context.Context, g grants.Grant) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO caregiver_grants (
			id, patient_id, caregiver_id,
			can_edit_appointments, can_edit_medications, can_view_daily_tasks,
			status, created_at, updated_at, accepted_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (patient_id, caregiver_id) DO NOTHING
	`,
		g.ID,
		g.PatientID,
		g.CaregiverID,
		g.Capabilities.CanEditAppointments,
		g.Capabilities.CanEditMedications,
		g.Capabilities.CanViewDailyTasks,
		string(g.Status),
		g.CreatedAt,
		g.UpdatedAt,
		toNullTime(g.AcceptedAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return grants.ErrDuplicatePair
	}
	return nil
}

func (r *GrantsRepo) Update(ctx context.Context, g grants.Grant) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE caregiver_grants
		SET
			can_edit_appointments = $2,
			can_edit_medications = $3,
			can_view_daily_tasks = $4,
			status = $5,
			updated_at = $6,
			accepted_at = $7
		WHERE id = $1
	`,
		g.ID,
		g.Capabilities.CanEditAppointments,
		g.Capabilities.CanEditMedications,
		g.Capabilities.CanViewDailyTasks,
		string(g.Status),
		g.UpdatedAt,
		toNullTime(g.AcceptedAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GrantsRepo) GetByPair(ctx context.Context, patientID, caregiverID string) (grants.Grant, error) {
	patientID = strings.TrimSpace(patientID)
	caregiverID = strings.TrimSpace(caregiverID)
	if patientID == "" || caregiverID == "" {
		return grants.Grant{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, patient_id, caregiver_id,
			can_edit_appointments, can_edit_medications, can_view_daily_tasks,
			status, created_at, updated_at, accepted_at
		FROM caregiver_grants
		WHERE patient_id = $1
		  AND caregiver_id = $2
	`, patientID, caregiverID)

	return scanGrantRow(row)
}

func (r *GrantsRepo) GetAccepted(ctx context.Context, patientID, caregiverID string) (grants.Grant, error) {
	patientID = strings.TrimSpace(patientID)
	caregiverID = strings.TrimSpace(caregiverID)
	if patientID == "" || caregiverID == "" {
		return grants.Grant{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, patient_id, caregiver_id,
			can_edit_appointments, can_edit_medications, can_view_daily_tasks,
			status, created_at, updated_at, accepted_at
		FROM caregiver_grants
		WHERE patient_id = $1
		  AND caregiver_id = $2
		  AND status = 'accepted'
	`, patientID, caregiverID)

	return scanGrantRow(row)
}

func (r *GrantsRepo) ListPendingByCaregiver(ctx context.Context, caregiverID string) ([]grants.Grant, error) {
	caregiverID = strings.TrimSpace(caregiverID)
	if caregiverID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, patient_id, caregiver_id,
			can_edit_appointments, can_edit_medications, can_view_daily_tasks,
			status, created_at, updated_at, accepted_at
		FROM caregiver_grants
		WHERE caregiver_id = $1
		  AND status = 'pending'
		ORDER BY created_at ASC
	`, caregiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectGrants(rows)
}

func (r *GrantsRepo) ListByPatient(ctx context.Context, patientID string) ([]grants.Grant, error) {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, patient_id, caregiver_id,
			can_edit_appointments, can_edit_medications, can_view_daily_tasks,
			status, created_at, updated_at, accepted_at
		FROM caregiver_grants
		WHERE patient_id = $1
		ORDER BY created_at ASC
	`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectGrants(rows)
}

func scanGrantRow(row *sql.Row) (grants.Grant, error) {
	var g grants.Grant
	var status string
	var acceptedAt sql.NullTime

	if err := row.Scan(
		&g.ID,
		&g.PatientID,
		&g.CaregiverID,
		&g.Capabilities.CanEditAppointments,
		&g.Capabilities.CanEditMedications,
		&g.Capabilities.CanViewDailyTasks,
		&status,
		&g.CreatedAt,
		&g.UpdatedAt,
		&acceptedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return grants.Grant{}, ErrNotFound
		}
		return grants.Grant{}, err
	}

	g.Status = grants.Status(status)
	if acceptedAt.Valid {
		t := acceptedAt.Time
		g.AcceptedAt = &t
	}

	return g, nil
}

func collectGrants(rows *sql.Rows) ([]grants.Grant, error) {
	out := make([]grants.Grant, 0)
	for rows.Next() {
		var g grants.Grant
		var status string
		var acceptedAt sql.NullTime

		if err := rows.Scan(
			&g.ID,
			&g.PatientID,
			&g.CaregiverID,
			&g.Capabilities.CanEditAppointments,
			&g.Capabilities.CanEditMedications,
			&g.Capabilities.CanViewDailyTasks,
			&status,
			&g.CreatedAt,
			&g.UpdatedAt,
			&acceptedAt,
		); err != nil {
			return nil, err
		}

		g.Status = grants.Status(status)
		if acceptedAt.Valid {
			t := acceptedAt.Time
			g.AcceptedAt = &t
		}

		out = append(out, g)
	}

	return out, rows.Err()
}
