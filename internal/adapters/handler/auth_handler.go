package handler

import (
	"encoding/json"
	"net/http"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/adapters/middleware"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: auth}
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Username string `json:"username" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=student admin"`
}

type SignupResponse struct {
	Message         string `json:"message"`
	Token           string `json:"token,omitempty"`
	Role            string `json:"role,omitempty"`
	PendingApproval bool   `json:"pending_approval"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.authService.SignUp(r.Context(), req.Email, req.Password, req.Username, domain.Role(req.Role))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := SignupResponse{PendingApproval: result.PendingApproval}
	if result.PendingApproval {
		resp.Message = "Admin approval pending. You will be able to login after the primary admin approves your account."
	} else {
		resp.Message = "Registration successful"
		resp.Token = result.Token
		resp.Role = string(result.Role)
	}
	writeJSON(w, http.StatusCreated, resp)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.authService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Message:  "Login successful",
		Token:    result.Token,
		Role:     string(result.Role),
		Username: result.Username,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, _ := r.Context().Value(middleware.TokenKey).(string)
	if err := h.authService.SignOut(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	token, _ := r.Context().Value(middleware.TokenKey).(string)
	session, err := h.authService.CurrentSession(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

type UpdatePasswordRequest struct {
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID, _ := r.Context().Value(middleware.UserIDKey).(string)
	if err := h.authService.UpdatePassword(r.Context(), userID, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}
