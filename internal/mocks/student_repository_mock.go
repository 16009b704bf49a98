package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

// MockStudentRepository implements ports.StudentRepository in memory,
// keyed by user ID the same way the Postgres upsert is.
type MockStudentRepository struct {
	mu      sync.RWMutex
	details map[string]*domain.StudentDetails // keyed by user ID

	UpsertCalls []domain.StudentDetails

	UpsertError       error
	FindByUserIDError error
	ListAllError      error
	CountError        error
}

var _ ports.StudentRepository = (*MockStudentRepository)(nil)

func NewMockStudentRepository() *MockStudentRepository {
	return &MockStudentRepository{details: make(map[string]*domain.StudentDetails)}
}

func (m *MockStudentRepository) SeedDetails(details domain.StudentDetails) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := details
	m.details[details.UserID] = &d
}

func (m *MockStudentRepository) Upsert(ctx context.Context, details domain.StudentDetails) (*domain.StudentDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpsertCalls = append(m.UpsertCalls, details)

	if m.UpsertError != nil {
		return nil, m.UpsertError
	}

	if existing, ok := m.details[details.UserID]; ok {
		details.ID = existing.ID
	} else if details.ID == "" {
		details.ID = uuid.New().String()
	}
	d := details
	m.details[details.UserID] = &d
	out := d
	return &out, nil
}

func (m *MockStudentRepository) FindByUserID(ctx context.Context, userID string) (*domain.StudentDetails, error) {
	if m.FindByUserIDError != nil {
		return nil, m.FindByUserIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	details, ok := m.details[userID]
	if !ok {
		return nil, nil
	}
	d := *details
	return &d, nil
}

func (m *MockStudentRepository) ListAll(ctx context.Context) ([]domain.StudentDetails, error) {
	if m.ListAllError != nil {
		return nil, m.ListAllError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var all []domain.StudentDetails
	for _, d := range m.details {
		all = append(all, *d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].RoomNo < all[j].RoomNo })
	return all, nil
}

func (m *MockStudentRepository) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.details), nil
}
