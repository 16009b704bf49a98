package handler

import (
	"net/http"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

// DashboardHandler aggregates the counters shown on the admin dashboard.
type DashboardHandler struct {
	students   ports.StudentRepository
	complaints ports.ComplaintRepository
	alerts     ports.SOSRepository
}

func NewDashboardHandler(
	students ports.StudentRepository,
	complaints ports.ComplaintRepository,
	alerts ports.SOSRepository,
) *DashboardHandler {
	return &DashboardHandler{
		students:   students,
		complaints: complaints,
		alerts:     alerts,
	}
}

type DashboardStats struct {
	Students           int `json:"students"`
	PendingComplaints  int `json:"pending_complaints"`
	ResolvedComplaints int `json:"resolved_complaints"`
	SOSAlerts          int `json:"sos_alerts"`
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	students, err := h.students.Count(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	pending, err := h.complaints.CountByStatus(ctx, domain.ComplaintPending)
	if err != nil {
		writeError(w, err)
		return
	}
	resolved, err := h.complaints.CountByStatus(ctx, domain.ComplaintResolved)
	if err != nil {
		writeError(w, err)
		return
	}
	alerts, err := h.alerts.Count(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, DashboardStats{
		Students:           students,
		PendingComplaints:  pending,
		ResolvedComplaints: resolved,
		SOSAlerts:          alerts,
	})
}
