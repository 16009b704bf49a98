package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

// MockComplaintRepository implements ports.ComplaintRepository in memory.
// Resolve and Decline apply the same pending-only gate as the SQL adapter,
// so terminal-state transition tests run against the mock unchanged.
type MockComplaintRepository struct {
	mu         sync.RWMutex
	complaints map[string]*domain.Complaint

	CreateCalls  []domain.Complaint
	ResolveCalls []string
	DeclineCalls []string

	CreateError        error
	ListAllError       error
	ListByOwnerError   error
	ResolveError       error
	DeclineError       error
	CountByStatusError error
}

var _ ports.ComplaintRepository = (*MockComplaintRepository)(nil)

func NewMockComplaintRepository() *MockComplaintRepository {
	return &MockComplaintRepository{complaints: make(map[string]*domain.Complaint)}
}

func (m *MockComplaintRepository) SeedComplaint(complaint domain.Complaint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := complaint
	m.complaints[complaint.ID] = &c
}

// Complaint returns the stored record for test assertions.
func (m *MockComplaintRepository) Complaint(id string) *domain.Complaint {
	m.mu.RLock()
	defer m.mu.RUnlock()
	complaint, ok := m.complaints[id]
	if !ok {
		return nil
	}
	c := *complaint
	return &c
}

func (m *MockComplaintRepository) Create(ctx context.Context, complaint domain.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, complaint)

	if m.CreateError != nil {
		return m.CreateError
	}
	c := complaint
	m.complaints[complaint.ID] = &c
	return nil
}

func (m *MockComplaintRepository) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	if m.ListAllError != nil {
		return nil, m.ListAllError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var all []domain.Complaint
	for _, c := range m.complaints {
		all = append(all, *c)
	}
	sortNewestFirst(all)
	return all, nil
}

func (m *MockComplaintRepository) ListByOwner(ctx context.Context, userID string) ([]domain.Complaint, error) {
	if m.ListByOwnerError != nil {
		return nil, m.ListByOwnerError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var owned []domain.Complaint
	for _, c := range m.complaints {
		if c.UserID == userID {
			owned = append(owned, *c)
		}
	}
	sortNewestFirst(owned)
	return owned, nil
}

func (m *MockComplaintRepository) Resolve(ctx context.Context, complaintID string, res domain.Resolution) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ResolveCalls = append(m.ResolveCalls, complaintID)

	if m.ResolveError != nil {
		return false, m.ResolveError
	}

	complaint, ok := m.complaints[complaintID]
	if !ok || complaint.Status != domain.ComplaintPending {
		return false, nil
	}
	complaint.Status = domain.ComplaintResolved
	complaint.ResolutionDescription = res.Description
	complaint.ResolutionImageURL = res.ImageURL
	complaint.ResolvedBy = res.ResolvedBy
	resolvedAt := res.ResolvedAt
	complaint.ResolvedAt = &resolvedAt
	return true, nil
}

func (m *MockComplaintRepository) Decline(ctx context.Context, complaintID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeclineCalls = append(m.DeclineCalls, complaintID)

	if m.DeclineError != nil {
		return false, m.DeclineError
	}

	complaint, ok := m.complaints[complaintID]
	if !ok || complaint.Status != domain.ComplaintPending {
		return false, nil
	}
	complaint.Status = domain.ComplaintDeclined
	return true, nil
}

func (m *MockComplaintRepository) CountByStatus(ctx context.Context, status domain.ComplaintStatus) (int, error) {
	if m.CountByStatusError != nil {
		return 0, m.CountByStatusError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, c := range m.complaints {
		if c.Status == status {
			count++
		}
	}
	return count, nil
}

func sortNewestFirst(complaints []domain.Complaint) {
	sort.Slice(complaints, func(i, j int) bool {
		return complaints[i].CreatedAt.After(complaints[j].CreatedAt)
	})
}
