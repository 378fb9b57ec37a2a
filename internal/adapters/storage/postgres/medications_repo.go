package postgres

import (
	"context"
	"database/sql"
	"strings"

	"care-circle/internal/domain/records"
)

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

func (r *MedicationsRepo) Create(ctx context.Context, m records.Medication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medications (
			id, user_id, name, dosage, time, duration, is_taken, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		m.ID,
		m.UserID,
		m.Name,
		m.Dosage,
		m.Time,
		m.Duration,
		m.IsTaken,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return err
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (records.Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return records.Medication{}, records.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, dosage, time, duration, is_taken, created_at, updated_at
		FROM medications
		WHERE id = $1
	`, id)

	var m records.Medication
	if err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Dosage, &m.Time, &m.Duration, &m.IsTaken, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return records.Medication{}, records.ErrNotFound
		}
		return records.Medication{}, err
	}
	return m, nil
}

func (r *MedicationsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]records.Medication, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, dosage, time, duration, is_taken, created_at, updated_at
		FROM medications
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.Medication, 0)
	for rows.Next() {
		var m records.Medication
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Dosage, &m.Time, &m.Duration, &m.IsTaken, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MedicationsRepo) Update(ctx context.Context, m records.Medication) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medications
		SET name = $2, dosage = $3, time = $4, duration = $5, is_taken = $6, updated_at = $7
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		m.Dosage,
		m.Time,
		m.Duration,
		m.IsTaken,
		m.UpdatedAt,
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

func (r *MedicationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}
