package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/metrics"
)

// SOSHandler serves the emergency path. Trigger is public: a guest reporting
// an emergency must never be stopped by a login screen. Viewing the feed
// (List, Stream) is admin-gated at the router.
type SOSHandler struct {
	sosService  ports.SOSService
	authService ports.AuthService
	broadcaster ports.SOSBroadcaster
}

func NewSOSHandler(sos ports.SOSService, auth ports.AuthService, broadcaster ports.SOSBroadcaster) *SOSHandler {
	return &SOSHandler{
		sosService:  sos,
		authService: auth,
		broadcaster: broadcaster,
	}
}

type TriggerRequest struct {
	RoomNo string `json:"room_no" validate:"required"`
}

func (h *SOSHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	var req TriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Attach identity when a valid session rides along; a missing or broken
	// token degrades to an anonymous alert instead of failing.
	userID, displayName := "", ""
	if token := bearerToken(r); token != "" {
		if session, err := h.authService.CurrentSession(r.Context(), token); err == nil {
			userID = session.UserID
			displayName = session.Username
		}
	}

	alert, err := h.sosService.Trigger(r.Context(), req.RoomNo, userID, displayName)
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.SOSAlertsTriggered.Inc()
	writeJSON(w, http.StatusCreated, alert)
}

func (h *SOSHandler) List(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.sosService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if alerts == nil {
		alerts = []domain.SOSAlert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

// Stream pushes new alerts to the caller as server-sent events until the
// client disconnects.
func (h *SOSHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := h.broadcaster.Subscribe()
	defer sub.Close()

	metrics.SOSSubscribers.Inc()
	defer metrics.SOSSubscribers.Dec()

	for {
		select {
		case <-r.Context().Done():
			return
		case alert, ok := <-sub.Alerts():
			if !ok {
				return
			}
			body, err := json.Marshal(alert)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: sos\ndata: %s\n\n", body)
			flusher.Flush()
		}
	}
}

func bearerToken(r *http.Request) string {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
