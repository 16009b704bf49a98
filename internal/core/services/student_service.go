package services

import (
	"context"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

// StudentService handles room registration and the admin-facing directory.
type StudentService struct {
	students ports.StudentRepository
}

var _ ports.StudentService = (*StudentService)(nil)

func NewStudentService(students ports.StudentRepository) *StudentService {
	return &StudentService{students: students}
}

// RegisterRoom creates or updates the caller's details. Upsert semantics are
// keyed on an existence check against user_id in the repository.
func (s *StudentService) RegisterRoom(ctx context.Context, details domain.StudentDetails) (*domain.StudentDetails, error) {
	return s.students.Upsert(ctx, details)
}

func (s *StudentService) Details(ctx context.Context, userID string) (*domain.StudentDetails, error) {
	details, err := s.students.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, domain.ErrDetailsNotFound
	}
	return details, nil
}

func (s *StudentService) List(ctx context.Context) ([]domain.StudentDetails, error) {
	return s.students.ListAll(ctx)
}
