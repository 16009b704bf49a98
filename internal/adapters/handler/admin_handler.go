package handler

import (
	"net/http"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

// AdminHandler exposes the admin approval workflow. Listing is open to any
// admin; approve/reject routes are wired behind the primary_admin role gate.
type AdminHandler struct {
	approvalService ports.ApprovalService
}

func NewAdminHandler(approvals ports.ApprovalService) *AdminHandler {
	return &AdminHandler{approvalService: approvals}
}

func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	admins, err := h.approvalService.ListAdmins(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if admins == nil {
		admins = []domain.AdminListing{}
	}
	writeJSON(w, http.StatusOK, admins)
}

func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if err := h.approvalService.Approve(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Admin approved"})
}

func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if err := h.approvalService.Reject(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Admin rejected"})
}
