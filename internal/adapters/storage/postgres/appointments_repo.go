package postgres

import (
	"context"
	"database/sql"
	"strings"

	"care-circle/internal/domain/records"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

func (r *AppointmentsRepo) Create(ctx context.Context, a records.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, user_id, title, date, description, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		a.ID,
		a.UserID,
		a.Title,
		a.Date,
		a.Description,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (records.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return records.Appointment{}, records.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, date, description, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`, id)

	var a records.Appointment
	if err := row.Scan(&a.ID, &a.UserID, &a.Title, &a.Date, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return records.Appointment{}, records.ErrNotFound
		}
		return records.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]records.Appointment, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, title, date, description, created_at, updated_at
		FROM appointments
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.Appointment, 0)
	for rows.Next() {
		var a records.Appointment
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Date, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AppointmentsRepo) Update(ctx context.Context, a records.Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET title = $2, date = $3, description = $4, updated_at = $5
		WHERE id = $1
	`,
		a.ID,
		a.Title,
		a.Date,
		a.Description,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}
