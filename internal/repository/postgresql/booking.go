package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/booking"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/pkg/database"
)

type bookingRepositoryImpl struct {
	db *database.DB
}

func NewBookingRepository(db *database.DB) booking.BookingRepository {
	return &bookingRepositoryImpl{db: db}
}

// FindConflicts joins the staff-to-booking service assignment with the
// bookings and customers the booking subsystem owns. Grouped per
// booking; service names keep their assignment sequence order, not
// alphabetical. Cancelled and no-show bookings never qualify.
func (r *bookingRepositoryImpl) FindConflicts(ctx context.Context, staffID string, start, end time.Time) ([]booking.Conflict, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.id, b.booking_date, b.start_time,
			   c.full_name, c.email, c.phone,
			   string_agg(bs.service_name, ', ' ORDER BY bs.sequence) AS services
		FROM bookings b
		INNER JOIN booking_services bs ON bs.booking_id = b.id
		INNER JOIN customers c ON b.customer_id = c.id
		WHERE bs.staff_id = $1
		  AND b.booking_date BETWEEN $2 AND $3
		  AND b.status IN ('confirmed', 'completed')
		GROUP BY b.id, b.booking_date, b.start_time, c.full_name, c.email, c.phone
		ORDER BY b.booking_date, b.start_time, b.id
	`

	rows, err := q.Query(ctx, query, staffID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query conflicting bookings: %w", err)
	}
	defer rows.Close()

	var conflicts []booking.Conflict
	for rows.Next() {
		var c booking.Conflict
		err := rows.Scan(
			&c.BookingID, &c.BookingDate, &c.StartTime,
			&c.CustomerName, &c.CustomerEmail, &c.CustomerPhone,
			&c.Services,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conflicting booking: %w", err)
		}
		conflicts = append(conflicts, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return conflicts, nil
}

// AppendConflictRemark is the only write this engine performs on the
// booking subsystem's tables. The marker is appended, never replacing
// remarks left by front-desk staff.
func (r *bookingRepositoryImpl) AppendConflictRemark(ctx context.Context, bookingID, marker string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE bookings
		SET remarks = TRIM(BOTH E'\n' FROM COALESCE(remarks, '') || E'\n' || $1),
			updated_at = NOW()
		WHERE id = $2
	`

	commandTag, err := q.Exec(ctx, query, marker, bookingID)
	if err != nil {
		return fmt.Errorf("failed to append conflict remark to booking %s: %w", bookingID, err)
	}
	if commandTag.RowsAffected() != 1 {
		return fmt.Errorf("booking with id %s not found", bookingID)
	}

	return nil
}
