package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

// MockSessionCache implements ports.SessionCache over a plain map with
// expiry, returning real redis command values so callers exercise the
// same result-handling paths as against a live server.
type MockSessionCache struct {
	mu   sync.RWMutex
	data map[string]cachedValue

	SetError    error
	GetError    error
	DelError    error
	ExistsError error
}

type cachedValue struct {
	value     string
	expiresAt time.Time
}

var _ ports.SessionCache = (*MockSessionCache)(nil)

func NewMockSessionCache() *MockSessionCache {
	return &MockSessionCache{data: make(map[string]cachedValue)}
}

func (m *MockSessionCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewStatusCmd(ctx)
	if m.SetError != nil {
		cmd.SetErr(m.SetError)
		return cmd
	}

	expiresAt := time.Time{}
	if expiration > 0 {
		expiresAt = time.Now().Add(expiration)
	}
	m.data[key] = cachedValue{value: value.(string), expiresAt: expiresAt}

	cmd.SetVal("OK")
	return cmd
}

func (m *MockSessionCache) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cmd := redis.NewStringCmd(ctx)
	if m.GetError != nil {
		cmd.SetErr(m.GetError)
		return cmd
	}

	val, ok := m.data[key]
	if !ok || m.expired(val) {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(val.value)
	return cmd
}

func (m *MockSessionCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewIntCmd(ctx)
	if m.DelError != nil {
		cmd.SetErr(m.DelError)
		return cmd
	}

	var deleted int64
	for _, key := range keys {
		if _, ok := m.data[key]; ok {
			delete(m.data, key)
			deleted++
		}
	}
	cmd.SetVal(deleted)
	return cmd
}

func (m *MockSessionCache) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cmd := redis.NewIntCmd(ctx)
	if m.ExistsError != nil {
		cmd.SetErr(m.ExistsError)
		return cmd
	}

	var count int64
	for _, key := range keys {
		if val, ok := m.data[key]; ok && !m.expired(val) {
			count++
		}
	}
	cmd.SetVal(count)
	return cmd
}

func (m *MockSessionCache) expired(val cachedValue) bool {
	return !val.expiresAt.IsZero() && time.Now().After(val.expiresAt)
}

// SetKey seeds a key directly for test setup.
func (m *MockSessionCache) SetKey(key, value string, expiration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiresAt := time.Time{}
	if expiration > 0 {
		expiresAt = time.Now().Add(expiration)
	}
	m.data[key] = cachedValue{value: value, expiresAt: expiresAt}
}

// HasKey reports whether a live (unexpired) key exists.
func (m *MockSessionCache) HasKey(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	val, ok := m.data[key]
	return ok && !m.expired(val)
}

// Keys returns the number of live keys, for asserting session counts.
func (m *MockSessionCache) Keys() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, val := range m.data {
		if !m.expired(val) {
			count++
		}
	}
	return count
}
