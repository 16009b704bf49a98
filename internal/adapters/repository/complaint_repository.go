package repository

import (
	"context"
	"database/sql"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

const complaintColumns = `id, user_id, student_name, room_no, title, description,
	COALESCE(complaint_image_url, ''), status,
	COALESCE(resolution_description, ''), COALESCE(resolution_image_url, ''),
	resolved_at, COALESCE(resolved_by::text, ''), created_at`

type ComplaintRepository struct {
	db *sql.DB
}

var _ ports.ComplaintRepository = (*ComplaintRepository)(nil)

func NewComplaintRepository(db *sql.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

func (r *ComplaintRepository) Create(ctx context.Context, c domain.Complaint) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO complaints (id, user_id, student_name, room_no, title, description, complaint_image_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)`,
		c.ID,
		c.UserID,
		c.StudentName,
		c.RoomNo,
		c.Title,
		c.Description,
		c.ComplaintImageURL,
		c.Status,
		c.CreatedAt,
	)
	return err
}

func (r *ComplaintRepository) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+complaintColumns+" FROM complaints ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *ComplaintRepository) ListByOwner(ctx context.Context, userID string) ([]domain.Complaint, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+complaintColumns+" FROM complaints WHERE user_id = $1 ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

// Resolve lands only on rows still pending. The returned bool reports whether
// the transition happened; an unknown id or an already terminal row is a
// no-op, not an error.
func (r *ComplaintRepository) Resolve(ctx context.Context, complaintID string, res domain.Resolution) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE complaints
		SET status = 'resolved',
		    resolution_description = $1,
		    resolution_image_url = NULLIF($2, ''),
		    resolved_at = $3,
		    resolved_by = $4
		WHERE id = $5 AND status = 'pending'`,
		res.Description,
		res.ImageURL,
		res.ResolvedAt,
		res.ResolvedBy,
		complaintID,
	)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func (r *ComplaintRepository) Decline(ctx context.Context, complaintID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE complaints SET status = 'declined' WHERE id = $1 AND status = 'pending'",
		complaintID,
	)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func (r *ComplaintRepository) CountByStatus(ctx context.Context, status domain.ComplaintStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM complaints WHERE status = $1", status).Scan(&count)
	return count, err
}

func scanComplaints(rows *sql.Rows) ([]domain.Complaint, error) {
	var complaints []domain.Complaint
	for rows.Next() {
		var c domain.Complaint
		var resolvedAt sql.NullTime
		err := rows.Scan(
			&c.ID, &c.UserID, &c.StudentName, &c.RoomNo, &c.Title, &c.Description,
			&c.ComplaintImageURL, &c.Status,
			&c.ResolutionDescription, &c.ResolutionImageURL,
			&resolvedAt, &c.ResolvedBy, &c.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if resolvedAt.Valid {
			t := resolvedAt.Time
			c.ResolvedAt = &t
		}
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}
