package postgres

import (
	"context"
	"database/sql"
	"strings"

	"care-circle/internal/domain/records"
)

type DailyTasksRepo struct {
	db *sql.DB
}

func NewDailyTasksRepo(db *sql.DB) *DailyTasksRepo {
	return &DailyTasksRepo{db: db}
}

func (r *DailyTasksRepo) Create(ctx context.Context, t records.DailyTask) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_tasks (
			id, user_id, name, location, time, frequency, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		t.ID,
		t.UserID,
		t.Name,
		t.Location,
		t.Time,
		t.Frequency,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func (r *DailyTasksRepo) GetByID(ctx context.Context, id string) (records.DailyTask, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return records.DailyTask{}, records.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, location, time, frequency, created_at, updated_at
		FROM daily_tasks
		WHERE id = $1
	`, id)

	var t records.DailyTask
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Location, &t.Time, &t.Frequency, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return records.DailyTask{}, records.ErrNotFound
		}
		return records.DailyTask{}, err
	}
	return t, nil
}

func (r *DailyTasksRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]records.DailyTask, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, location, time, frequency, created_at, updated_at
		FROM daily_tasks
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.DailyTask, 0)
	for rows.Next() {
		var t records.DailyTask
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Location, &t.Time, &t.Frequency, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *DailyTasksRepo) Update(ctx context.Context, t records.DailyTask) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE daily_tasks
		SET name = $2, location = $3, time = $4, frequency = $5, updated_at = $6
		WHERE id = $1
	`,
		t.ID,
		t.Name,
		t.Location,
		t.Time,
		t.Frequency,
		t.UpdatedAt,
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

func (r *DailyTasksRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM daily_tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}
