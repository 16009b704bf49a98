package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

const uniqueViolation = "23505"

type UserRepository struct {
	db *sql.DB
}

// Ensure UserRepository implements ports.UserRepository
var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts the account, profile and role assignment in a single
// transaction. A failed role insert rolls back the account, so the partial
// state of an account without a role cannot be produced here.
func (r *UserRepository) CreateUser(ctx context.Context, user domain.User, profile domain.Profile, role domain.RoleAssignment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)",
		user.ID,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateEmail
		}
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO profiles (user_id, username) VALUES ($1, $2)",
		profile.UserID,
		profile.Username,
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO user_roles (user_id, role, approval_status) VALUES ($1, $2, $3)",
		role.UserID,
		role.Role,
		role.ApprovalStatus,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRowContext(
		ctx,
		"SELECT id, email, password_hash, created_at FROM users WHERE email = $1",
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindRole(ctx context.Context, userID string) (*domain.RoleAssignment, error) {
	var role domain.RoleAssignment
	err := r.db.QueryRowContext(
		ctx,
		"SELECT user_id, role, approval_status FROM user_roles WHERE user_id = $1 LIMIT 1",
		userID,
	).Scan(&role.UserID, &role.Role, &role.ApprovalStatus)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *UserRepository) FindProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.QueryRowContext(
		ctx,
		"SELECT user_id, username FROM profiles WHERE user_id = $1 LIMIT 1",
		userID,
	).Scan(&profile.UserID, &profile.Username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET password_hash = $1 WHERE id = $2",
		passwordHash,
		userID,
	)
	return err
}

func (r *UserRepository) ListAdmins(ctx context.Context) ([]domain.AdminListing, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ur.user_id, COALESCE(p.username, 'Unknown'), ur.approval_status
		FROM user_roles ur
		LEFT JOIN profiles p ON p.user_id = ur.user_id
		WHERE ur.role = 'admin'
		ORDER BY ur.created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []domain.AdminListing
	for rows.Next() {
		var a domain.AdminListing
		if err := rows.Scan(&a.UserID, &a.Username, &a.ApprovalStatus); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// SetAdminApproval is scoped to role = 'admin' so primary_admin and student
// rows can never be touched through the approval workflow. Updating a row
// already in the target status affects it again with the same value, which
// keeps the operation idempotent.
func (r *UserRepository) SetAdminApproval(ctx context.Context, userID string, status domain.ApprovalStatus) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE user_roles SET approval_status = $1 WHERE user_id = $2 AND role = 'admin'",
		status,
		userID,
	)
	return err
}

func (r *UserRepository) HasPrimaryAdmin(ctx context.Context) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_roles WHERE role = 'primary_admin'",
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
