package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// writeError maps domain sentinels onto HTTP statuses. Store failures fall
// through as 500 with the message surfaced; nothing is retried here.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNoRoleAssigned),
		errors.Is(err, domain.ErrApprovalPending),
		errors.Is(err, domain.ErrSessionExpired):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrDuplicateEmail):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrRoomNotRegistered):
		status = http.StatusPreconditionFailed
	case errors.Is(err, domain.ErrDetailsNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyResolution),
		errors.Is(err, domain.ErrEmptyRoomNumber),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrUnsupportedRole):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
