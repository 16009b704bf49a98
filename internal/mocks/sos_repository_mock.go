package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

// MockSOSRepository implements ports.SOSRepository in memory.
type MockSOSRepository struct {
	mu     sync.RWMutex
	alerts map[string]*domain.SOSAlert

	CreateCalls []domain.SOSAlert

	CreateError    error
	FindByIDError  error
	ListAllError   error
	ListSinceError error
	CountError     error
}

var _ ports.SOSRepository = (*MockSOSRepository)(nil)

func NewMockSOSRepository() *MockSOSRepository {
	return &MockSOSRepository{alerts: make(map[string]*domain.SOSAlert)}
}

func (m *MockSOSRepository) SeedAlert(alert domain.SOSAlert) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := alert
	m.alerts[alert.ID] = &a
}

func (m *MockSOSRepository) Create(ctx context.Context, alert domain.SOSAlert) (*domain.SOSAlert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, alert)

	if m.CreateError != nil {
		return nil, m.CreateError
	}
	if alert.ID == "" {
		alert.ID = uuid.New().String()
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now().UTC()
	}
	a := alert
	m.alerts[alert.ID] = &a
	out := a
	return &out, nil
}

func (m *MockSOSRepository) FindByID(ctx context.Context, id string) (*domain.SOSAlert, error) {
	if m.FindByIDError != nil {
		return nil, m.FindByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	alert, ok := m.alerts[id]
	if !ok {
		return nil, nil
	}
	a := *alert
	return &a, nil
}

func (m *MockSOSRepository) ListAll(ctx context.Context) ([]domain.SOSAlert, error) {
	if m.ListAllError != nil {
		return nil, m.ListAllError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var all []domain.SOSAlert
	for _, a := range m.alerts {
		all = append(all, *a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, nil
}

func (m *MockSOSRepository) ListSince(ctx context.Context, after time.Time) ([]domain.SOSAlert, error) {
	if m.ListSinceError != nil {
		return nil, m.ListSinceError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var since []domain.SOSAlert
	for _, a := range m.alerts {
		if a.CreatedAt.After(after) {
			since = append(since, *a)
		}
	}
	sort.Slice(since, func(i, j int) bool { return since[i].CreatedAt.Before(since[j].CreatedAt) })
	return since, nil
}

func (m *MockSOSRepository) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.alerts), nil
}
