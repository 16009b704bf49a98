package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/adapters/middleware"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/metrics"
)

const maxImageSize = 5 << 20 // 5 MiB per attachment

type ComplaintHandler struct {
	complaintService ports.ComplaintService
}

func NewComplaintHandler(complaints ports.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaints}
}

// File accepts a multipart form: title, description, optional image.
func (h *ComplaintHandler) File(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	description := strings.TrimSpace(r.FormValue("description"))
	if title == "" || description == "" {
		http.Error(w, "title and description are required", http.StatusBadRequest)
		return
	}

	image, err := readImage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ownerID, _ := r.Context().Value(middleware.UserIDKey).(string)
	complaint, err := h.complaintService.File(r.Context(), ownerID, title, description, image)
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.ComplaintsFiled.Inc()
	writeJSON(w, http.StatusCreated, complaint)
}

func (h *ComplaintHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.complaintService.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if complaints == nil {
		complaints = []domain.Complaint{}
	}
	writeJSON(w, http.StatusOK, complaints)
}

func (h *ComplaintHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := r.Context().Value(middleware.UserIDKey).(string)
	complaints, err := h.complaintService.ListForOwner(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	if complaints == nil {
		complaints = []domain.Complaint{}
	}
	writeJSON(w, http.StatusOK, complaints)
}

// Resolve accepts a multipart form: description, optional image.
func (h *ComplaintHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	image, err := readImage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resolverID, _ := r.Context().Value(middleware.UserIDKey).(string)
	err = h.complaintService.Resolve(
		r.Context(),
		r.PathValue("id"),
		resolverID,
		r.FormValue("description"),
		image,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Complaint resolved"})
}

func (h *ComplaintHandler) Decline(w http.ResponseWriter, r *http.Request) {
	if err := h.complaintService.Decline(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Complaint declined"})
}

// readImage pulls the optional "image" part off a parsed multipart form.
func readImage(r *http.Request) (*ports.ImageUpload, error) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		return nil, err
	}

	return &ports.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
