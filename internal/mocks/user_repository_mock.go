// Package mocks provides in-memory implementations of the core ports for
// testing. Services depend on interfaces only, so tests swap the real
// Postgres/Redis/OSS adapters for these without touching the service code.
package mocks

import (
	"context"
	"sync"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

// MockUserRepository implements ports.UserRepository with in-memory maps,
// call tracking for verification and error injection for failure scenarios.
type MockUserRepository struct {
	mu sync.RWMutex

	users    map[string]*domain.User // keyed by email
	profiles map[string]*domain.Profile
	roles    map[string]*domain.RoleAssignment

	// Call tracking
	CreateUserCalls     []domain.User
	SetApprovalCalls    []string
	UpdatePasswordCalls []string

	// Error injection
	CreateUserError     error
	FindByEmailError    error
	FindRoleError       error
	FindProfileError    error
	SetApprovalError    error
	UpdatePasswordError error
	ListAdminsError     error
}

var _ ports.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:    make(map[string]*domain.User),
		profiles: make(map[string]*domain.Profile),
		roles:    make(map[string]*domain.RoleAssignment),
	}
}

// SeedUser adds a full account (user + profile + role) for test setup.
func (m *MockUserRepository) SeedUser(user domain.User, profile domain.Profile, role domain.RoleAssignment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, p, r := user, profile, role
	m.users[user.Email] = &u
	m.profiles[profile.UserID] = &p
	m.roles[role.UserID] = &r
}

// SeedRole adds a role assignment without a profile, for "Unknown" labeling
// scenarios.
func (m *MockUserRepository) SeedRole(role domain.RoleAssignment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := role
	m.roles[role.UserID] = &r
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user domain.User, profile domain.Profile, role domain.RoleAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateUserCalls = append(m.CreateUserCalls, user)

	if m.CreateUserError != nil {
		return m.CreateUserError
	}
	if _, exists := m.users[user.Email]; exists {
		return domain.ErrDuplicateEmail
	}

	u, p, r := user, profile, role
	m.users[user.Email] = &u
	m.profiles[profile.UserID] = &p
	m.roles[role.UserID] = &r
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailError != nil {
		return nil, m.FindByEmailError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[email]
	if !ok {
		return nil, nil
	}
	u := *user
	return &u, nil
}

func (m *MockUserRepository) FindRole(ctx context.Context, userID string) (*domain.RoleAssignment, error) {
	if m.FindRoleError != nil {
		return nil, m.FindRoleError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	role, ok := m.roles[userID]
	if !ok {
		return nil, nil
	}
	r := *role
	return &r, nil
}

func (m *MockUserRepository) FindProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if m.FindProfileError != nil {
		return nil, m.FindProfileError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	p := *profile
	return &p, nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdatePasswordCalls = append(m.UpdatePasswordCalls, userID)

	if m.UpdatePasswordError != nil {
		return m.UpdatePasswordError
	}
	for _, user := range m.users {
		if user.ID == userID {
			user.PasswordHash = passwordHash
		}
	}
	return nil
}

func (m *MockUserRepository) ListAdmins(ctx context.Context) ([]domain.AdminListing, error) {
	if m.ListAdminsError != nil {
		return nil, m.ListAdminsError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var admins []domain.AdminListing
	for _, role := range m.roles {
		if role.Role != domain.RoleAdmin {
			continue
		}
		username := "Unknown"
		if profile, ok := m.profiles[role.UserID]; ok {
			username = profile.Username
		}
		admins = append(admins, domain.AdminListing{
			UserID:         role.UserID,
			Username:       username,
			ApprovalStatus: role.ApprovalStatus,
		})
	}
	return admins, nil
}

// SetAdminApproval mirrors the SQL scoping: only role = admin rows change.
func (m *MockUserRepository) SetAdminApproval(ctx context.Context, userID string, status domain.ApprovalStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetApprovalCalls = append(m.SetApprovalCalls, userID)

	if m.SetApprovalError != nil {
		return m.SetApprovalError
	}
	if role, ok := m.roles[userID]; ok && role.Role == domain.RoleAdmin {
		role.ApprovalStatus = status
	}
	return nil
}

func (m *MockUserRepository) HasPrimaryAdmin(ctx context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, role := range m.roles {
		if role.Role == domain.RolePrimaryAdmin {
			return true, nil
		}
	}
	return false, nil
}

// Role returns the stored role assignment for test assertions.
func (m *MockUserRepository) Role(userID string) *domain.RoleAssignment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	role, ok := m.roles[userID]
	if !ok {
		return nil
	}
	r := *role
	return &r
}
