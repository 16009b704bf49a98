package handler_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/adapters/handler"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/services"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/mocks"
)

// newTestAuthService builds a real auth service over in-memory dependencies.
// Handlers are exercised through the full service so response shapes match
// what a live deployment returns.
func newTestAuthService(t *testing.T, repo *mocks.MockUserRepository, cache *mocks.MockSessionCache) *services.AuthService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return services.NewAuthService(repo, cache, key, time.Hour)
}

func seedStudentAccount(t *testing.T, repo *mocks.MockUserRepository, email, password, username string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	userID := "user-" + email
	repo.SeedUser(
		domain.User{ID: userID, Email: email, PasswordHash: string(hash)},
		domain.Profile{UserID: userID, Username: username},
		domain.RoleAssignment{UserID: userID, Role: domain.RoleStudent, ApprovalStatus: domain.ApprovalApproved},
	)
	return userID
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestAuthHandler_Signup(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantPending bool
		wantToken   bool
	}{
		{
			name:       "student_registration",
			body:       `{"email":"s@dorm.test","password":"secret1","username":"Asha","role":"student"}`,
			wantStatus: http.StatusCreated,
			wantToken:  true,
		},
		{
			name:        "admin_registration_pends",
			body:        `{"email":"a@dorm.test","password":"secret1","username":"Warden","role":"admin"}`,
			wantStatus:  http.StatusCreated,
			wantPending: true,
		},
		{
			name:       "primary_admin_role_rejected",
			body:       `{"email":"r@dorm.test","password":"secret1","username":"Root","role":"primary_admin"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed_body_rejected",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing_fields_rejected",
			body:       `{"email":"s@dorm.test"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockUserRepository()
			h := handler.NewAuthHandler(newTestAuthService(t, repo, mocks.NewMockSessionCache()))

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			h.Signup(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusCreated {
				return
			}

			body := decodeJSON(t, rec)
			if got := body["pending_approval"].(bool); got != tt.wantPending {
				t.Errorf("pending_approval = %v, want %v", got, tt.wantPending)
			}
			token, _ := body["token"].(string)
			if tt.wantToken && token == "" {
				t.Error("expected a token in the response")
			}
			if !tt.wantToken && token != "" {
				t.Error("pending admin must not receive a token")
			}
		})
	}
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	seedStudentAccount(t, repo, "taken@dorm.test", "secret1", "First")
	h := handler.NewAuthHandler(newTestAuthService(t, repo, mocks.NewMockSessionCache()))

	body := `{"email":"taken@dorm.test","password":"secret1","username":"Second","role":"student"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	seedStudentAccount(t, repo, "s@dorm.test", "secret1", "Asha")
	h := handler.NewAuthHandler(newTestAuthService(t, repo, mocks.NewMockSessionCache()))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"s@dorm.test","password":"secret1"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	body := decodeJSON(t, rec)
	if token, _ := body["token"].(string); token == "" {
		t.Error("expected a token")
	}
	if body["role"] != "student" || body["username"] != "Asha" {
		t.Errorf("identity = %v/%v, want student/Asha", body["role"], body["username"])
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	seedStudentAccount(t, repo, "s@dorm.test", "secret1", "Asha")
	h := handler.NewAuthHandler(newTestAuthService(t, repo, mocks.NewMockSessionCache()))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"s@dorm.test","password":"wrong12"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if msg, _ := decodeJSON(t, rec)["error"].(string); msg == "" {
		t.Error("expected an error message")
	}
}

func TestAuthHandler_Login_PendingAdmin(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	cache := mocks.NewMockSessionCache()
	svc := newTestAuthService(t, repo, cache)
	if _, err := svc.SignUp(context.Background(), "a@dorm.test", "secret1", "Warden", domain.RoleAdmin); err != nil {
		t.Fatalf("sign-up: %v", err)
	}
	h := handler.NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@dorm.test","password":"secret1"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for unapproved admin", rec.Code)
	}
}
