package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/schedule"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/pkg/database"
)

type staffScheduleRepositoryImpl struct {
	db *database.DB
}

func NewStaffScheduleRepository(db *database.DB) schedule.StaffScheduleRepository {
	return &staffScheduleRepositoryImpl{db: db}
}

// UpsertLeaveDay writes one full-day leave entry as a single statement.
// ON CONFLICT keeps the (staff_id, work_date) uniqueness invariant safe
// against concurrent schedule writers, and makes re-runs idempotent.
func (r *staffScheduleRepositoryImpl) UpsertLeaveDay(ctx context.Context, staffID string, day time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO staff_schedules (staff_id, work_date, start_time, end_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'leave', NOW(), NOW())
		ON CONFLICT (staff_id, work_date) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			status = EXCLUDED.status,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query, staffID, day, schedule.LeaveDayStart, schedule.LeaveDayEnd)
	if err != nil {
		return fmt.Errorf("failed to upsert leave schedule entry for staff %s on %s: %w",
			staffID, day.Format("2006-01-02"), err)
	}

	return nil
}

func (r *staffScheduleRepositoryImpl) ListByStaffAndRange(ctx context.Context, staffID string, start, end time.Time) ([]schedule.StaffScheduleEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT staff_id, work_date, start_time, end_time, status, created_at, updated_at
		FROM staff_schedules
		WHERE staff_id = $1 AND work_date BETWEEN $2 AND $3
		ORDER BY work_date
	`

	rows, err := q.Query(ctx, query, staffID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []schedule.StaffScheduleEntry
	for rows.Next() {
		var e schedule.StaffScheduleEntry
		err := rows.Scan(&e.StaffID, &e.WorkDate, &e.StartTime, &e.EndTime, &e.Status, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
