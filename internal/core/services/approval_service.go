package services

import (
	"context"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

// ApprovalService manages admin registrations. The update is scoped to
// role = admin rows so primary_admin and student assignments can never be
// mutated through it. Authorization (primary_admin only for Approve/Reject)
// is enforced by the route middleware, not here.
type ApprovalService struct {
	userRepo ports.UserRepository
}

var _ ports.ApprovalService = (*ApprovalService)(nil)

func NewApprovalService(userRepo ports.UserRepository) *ApprovalService {
	return &ApprovalService{userRepo: userRepo}
}

func (s *ApprovalService) ListAdmins(ctx context.Context) ([]domain.AdminListing, error) {
	return s.userRepo.ListAdmins(ctx)
}

// Approve is idempotent: re-approving an approved row is observable as success.
func (s *ApprovalService) Approve(ctx context.Context, userID string) error {
	return s.userRepo.SetAdminApproval(ctx, userID, domain.ApprovalApproved)
}

func (s *ApprovalService) Reject(ctx context.Context, userID string) error {
	return s.userRepo.SetAdminApproval(ctx, userID, domain.ApprovalRejected)
}
