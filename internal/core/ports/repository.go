package ports

import (
	"context"
	"time"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
)

type UserRepository interface {
	// CreateUser inserts the user, profile and role assignment in one
	// transaction so a failed role insert never leaves an orphaned account.
	CreateUser(ctx context.Context, user domain.User, profile domain.Profile, role domain.RoleAssignment) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindRole(ctx context.Context, userID string) (*domain.RoleAssignment, error)
	FindProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// ListAdmins returns user_roles rows with role = admin joined against
	// profiles; rows without a profile carry username "Unknown".
	ListAdmins(ctx context.Context) ([]domain.AdminListing, error)
	// SetAdminApproval updates approval_status scoped to role = admin only;
	// student and primary_admin rows are never touched.
	SetAdminApproval(ctx context.Context, userID string, status domain.ApprovalStatus) error
	// HasPrimaryAdmin reports whether any primary_admin role row exists.
	HasPrimaryAdmin(ctx context.Context) (bool, error)
}

type StudentRepository interface {
	// Upsert creates or updates the caller's details keyed on an existence
	// check against user_id.
	Upsert(ctx context.Context, details domain.StudentDetails) (*domain.StudentDetails, error)
	FindByUserID(ctx context.Context, userID string) (*domain.StudentDetails, error)
	ListAll(ctx context.Context) ([]domain.StudentDetails, error)
	Count(ctx context.Context) (int, error)
}

type ComplaintRepository interface {
	Create(ctx context.Context, complaint domain.Complaint) error
	ListAll(ctx context.Context) ([]domain.Complaint, error)
	ListByOwner(ctx context.Context, userID string) ([]domain.Complaint, error)
	// Resolve and Decline are conditional on status = pending so at most one
	// terminal transition lands per complaint. A miss (unknown id or already
	// terminal) is reported as a no-op, not an error.
	Resolve(ctx context.Context, complaintID string, res domain.Resolution) (bool, error)
	Decline(ctx context.Context, complaintID string) (bool, error)
	CountByStatus(ctx context.Context, status domain.ComplaintStatus) (int, error)
}

type SOSRepository interface {
	Create(ctx context.Context, alert domain.SOSAlert) (*domain.SOSAlert, error)
	FindByID(ctx context.Context, id string) (*domain.SOSAlert, error)
	ListAll(ctx context.Context) ([]domain.SOSAlert, error)
	// ListSince returns alerts created after the given instant in insertion
	// order; the realtime listener uses it as a catch-up safety net.
	ListSince(ctx context.Context, after time.Time) ([]domain.SOSAlert, error)
	Count(ctx context.Context) (int, error)
}
