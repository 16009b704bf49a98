package ports

import (
	"context"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
)

// SignUpResult reports the outcome of a registration. Token is empty and
// PendingApproval true when the requested role requires primary-admin
// approval before first sign-in.
type SignUpResult struct {
	UserID          string
	Token           string
	Role            domain.Role
	PendingApproval bool
}

type SignInResult struct {
	Token    string
	Role     domain.Role
	Username string
}

type AuthService interface {
	SignUp(ctx context.Context, email, password, username string, requestedRole domain.Role) (*SignUpResult, error)
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	SignOut(ctx context.Context, token string) error
	CurrentSession(ctx context.Context, token string) (*domain.Session, error)
	UpdatePassword(ctx context.Context, userID, newPassword string) error
}

// ImageUpload is an in-memory image attachment taken off a multipart form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ComplaintService interface {
	File(ctx context.Context, ownerID, title, description string, image *ImageUpload) (*domain.Complaint, error)
	Resolve(ctx context.Context, complaintID, resolverID, description string, image *ImageUpload) error
	Decline(ctx context.Context, complaintID string) error
	ListAll(ctx context.Context) ([]domain.Complaint, error)
	ListForOwner(ctx context.Context, ownerID string) ([]domain.Complaint, error)
}

type ApprovalService interface {
	ListAdmins(ctx context.Context) ([]domain.AdminListing, error)
	Approve(ctx context.Context, userID string) error
	Reject(ctx context.Context, userID string) error
}

type SOSService interface {
	// Trigger records an emergency alert. userID and displayName may be empty:
	// the emergency path is never gated behind login.
	Trigger(ctx context.Context, roomNo, userID, displayName string) (*domain.SOSAlert, error)
	List(ctx context.Context) ([]domain.SOSAlert, error)
}

type StudentService interface {
	RegisterRoom(ctx context.Context, details domain.StudentDetails) (*domain.StudentDetails, error)
	Details(ctx context.Context, userID string) (*domain.StudentDetails, error)
	List(ctx context.Context) ([]domain.StudentDetails, error)
}
