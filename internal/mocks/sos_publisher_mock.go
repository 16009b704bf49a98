package mocks

import (
	"context"
	"sync"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

// MockSOSAlertPublisher records published alerts for sink verification.
type MockSOSAlertPublisher struct {
	mu sync.Mutex

	Published []domain.SOSAlert

	PublishError error
}

var _ ports.SOSAlertPublisher = (*MockSOSAlertPublisher)(nil)

func NewMockSOSAlertPublisher() *MockSOSAlertPublisher {
	return &MockSOSAlertPublisher{}
}

func (m *MockSOSAlertPublisher) PublishSOSAlert(ctx context.Context, alert domain.SOSAlert) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.PublishError != nil {
		return m.PublishError
	}
	m.Published = append(m.Published, alert)
	return nil
}

// PublishedCount returns how many alerts landed, safe for concurrent reads.
func (m *MockSOSAlertPublisher) PublishedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Published)
}
