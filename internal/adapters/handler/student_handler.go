package handler

import (
	"encoding/json"
	"net/http"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/adapters/middleware"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

type StudentHandler struct {
	studentService ports.StudentService
}

func NewStudentHandler(students ports.StudentService) *StudentHandler {
	return &StudentHandler{studentService: students}
}

type RegisterRoomRequest struct {
	Name   string `json:"name" validate:"required"`
	RollNo string `json:"roll_no" validate:"required"`
	RoomNo string `json:"room_no" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
}

// RegisterRoom upserts the caller's room details. The owner is always the
// authenticated user; a student cannot write anyone else's row.
func (h *StudentHandler) RegisterRoom(w http.ResponseWriter, r *http.Request) {
	var req RegisterRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID, _ := r.Context().Value(middleware.UserIDKey).(string)
	details, err := h.studentService.RegisterRoom(r.Context(), domain.StudentDetails{
		UserID: userID,
		Name:   req.Name,
		RollNo: req.RollNo,
		RoomNo: req.RoomNo,
		Email:  req.Email,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *StudentHandler) MyRoom(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(middleware.UserIDKey).(string)
	details, err := h.studentService.Details(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// List is the admin-facing student directory, ordered by room number.
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.studentService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if students == nil {
		students = []domain.StudentDetails{}
	}
	writeJSON(w, http.StatusOK, students)
}
