package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

type StudentRepository struct {
	db *sql.DB
}

var _ ports.StudentRepository = (*StudentRepository)(nil)

func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Upsert creates or updates details keyed on an existence check against
// user_id, inside one transaction so the check and write cannot interleave
// with another writer for the same user.
func (r *StudentRepository) Upsert(ctx context.Context, details domain.StudentDetails) (*domain.StudentDetails, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var existingID string
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM student_details WHERE user_id = $1",
		details.UserID,
	).Scan(&existingID)

	switch {
	case err == sql.ErrNoRows:
		details.ID = uuid.NewString()
		_, err = tx.ExecContext(ctx,
			"INSERT INTO student_details (id, user_id, name, roll_no, room_no, email) VALUES ($1, $2, $3, $4, $5, $6)",
			details.ID,
			details.UserID,
			details.Name,
			details.RollNo,
			details.RoomNo,
			details.Email,
		)
	case err == nil:
		details.ID = existingID
		_, err = tx.ExecContext(ctx,
			"UPDATE student_details SET name = $1, roll_no = $2, room_no = $3, email = $4 WHERE user_id = $5",
			details.Name,
			details.RollNo,
			details.RoomNo,
			details.Email,
			details.UserID,
		)
	default:
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &details, nil
}

func (r *StudentRepository) FindByUserID(ctx context.Context, userID string) (*domain.StudentDetails, error) {
	var d domain.StudentDetails
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, roll_no, room_no, email FROM student_details WHERE user_id = $1",
		userID,
	).Scan(&d.ID, &d.UserID, &d.Name, &d.RollNo, &d.RoomNo, &d.Email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *StudentRepository) ListAll(ctx context.Context) ([]domain.StudentDetails, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, name, roll_no, room_no, email FROM student_details ORDER BY room_no")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []domain.StudentDetails
	for rows.Next() {
		var d domain.StudentDetails
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.RollNo, &d.RoomNo, &d.Email); err != nil {
			return nil, err
		}
		students = append(students, d)
	}
	return students, rows.Err()
}

func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM student_details").Scan(&count)
	return count, err
}
