package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/leave"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.staff_id, lr.leave_type,
			   lr.start_date, lr.end_date, lr.half_day, lr.reason,
			   lr.status, lr.decided_by, lr.decided_at, lr.rejection_reason,
			   lr.created_at, lr.updated_at,
			   s.full_name as staff_name
		FROM leave_requests lr
		JOIN staff s ON lr.staff_id = s.id
		WHERE lr.id = $1
	`

	var req leave.LeaveRequest
	var staffName string

	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.StaffID, &req.LeaveType,
		&req.StartDate, &req.EndDate, &req.HalfDay, &req.Reason,
		&req.Status, &req.DecidedBy, &req.DecidedAt, &req.RejectionReason,
		&req.CreatedAt, &req.UpdatedAt,
		&staffName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	req.StaffName = &staffName

	return req, nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause dynamically
	whereClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil && *filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.StaffID != nil && *filter.StaffID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.staff_id = $%d", argIdx))
		args = append(args, *filter.StaffID)
		argIdx++
	}

	baseQuery := `
		FROM leave_requests lr
		JOIN staff s ON lr.staff_id = s.id
	`
	if len(whereClauses) > 0 {
		baseQuery += " WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Count total
	countQuery := "SELECT COUNT(*) " + baseQuery
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	// Pagination defaults
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`
		SELECT lr.id, lr.staff_id, lr.leave_type,
			   lr.start_date, lr.end_date, lr.half_day, lr.reason,
			   lr.status, lr.decided_by, lr.decided_at, lr.rejection_reason,
			   lr.created_at, lr.updated_at,
			   s.full_name as staff_name
		%s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseQuery, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		var staffName string

		err := rows.Scan(
			&req.ID, &req.StaffID, &req.LeaveType,
			&req.StartDate, &req.EndDate, &req.HalfDay, &req.Reason,
			&req.Status, &req.DecidedBy, &req.DecidedAt, &req.RejectionReason,
			&req.CreatedAt, &req.UpdatedAt,
			&staffName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}

		req.StaffName = &staffName
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, total, nil
}

// UpdateStatusIfPending implements the race-safe double-submit guard:
// the WHERE clause re-checks the pending state, so of two concurrent
// callers exactly one observes an affected row.
func (r *leaveRequestRepositoryImpl) UpdateStatusIfPending(
	ctx context.Context,
	id string,
	status leave.LeaveRequestStatus,
	decidedBy string,
	rejectionReason *string,
) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, decided_by = $2, decided_at = NOW(), rejection_reason = $3, updated_at = NOW()
		WHERE id = $4 AND status = 'pending'
	`

	commandTag, err := q.Exec(ctx, query, status, decidedBy, rejectionReason, id)
	if err != nil {
		return false, fmt.Errorf("failed to update status for leave request with id %s: %w", id, err)
	}

	return commandTag.RowsAffected() == 1, nil
}
