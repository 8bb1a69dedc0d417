package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/staff"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/pkg/database"
)

type staffRepositoryImpl struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepositoryImpl{db: db}
}

const staffColumns = `
	id, full_name, email, phone, role, password_hash, is_active, created_at, updated_at
`

func (r *staffRepositoryImpl) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1`

	var s staff.Staff
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.FullName, &s.Email, &s.Phone, &s.Role,
		&s.PasswordHash, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, err
	}

	return s, nil
}

func (r *staffRepositoryImpl) GetByEmail(ctx context.Context, email string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE email = $1`

	var s staff.Staff
	err := q.QueryRow(ctx, query, email).Scan(
		&s.ID, &s.FullName, &s.Email, &s.Phone, &s.Role,
		&s.PasswordHash, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, err
	}

	return s, nil
}
