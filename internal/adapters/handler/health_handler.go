package handler

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const probeTimeout = 5 * time.Second

// ReadinessProbe is implemented by background components, such as the SOS
// listener, whose state gates readiness alongside the stores.
type ReadinessProbe interface {
	IsReady() bool
}

// HealthHandler serves the liveness and readiness endpoints. Liveness only
// says the process is up; readiness also requires Postgres, Redis and every
// registered probe, since sessions, complaints and the SOS feed go nowhere
// without them.
type HealthHandler struct {
	db          *sql.DB
	redisClient *redis.Client
	probes      map[string]ReadinessProbe

	startTime time.Time
	version   string
}

func NewHealthHandler(db *sql.DB, redisClient *redis.Client) *HealthHandler {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "unknown"
	}
	return &HealthHandler{
		db:          db,
		redisClient: redisClient,
		probes:      make(map[string]ReadinessProbe),
		startTime:   time.Now(),
		version:     version,
	}
}

// AddProbe registers a named readiness check. Register before the server
// starts serving; the probe map is not guarded.
func (h *HealthHandler) AddProbe(name string, probe ReadinessProbe) {
	h.probes[name] = probe
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "UP",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    map[string]Check{"process": {Status: "UP"}},
	})
}

// Live is an alias for Health.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	h.Health(w, r)
}

// Ready reports per-dependency checks and goes DOWN as soon as any one of
// them fails.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := map[string]Check{
		"database": h.checkDatabase(),
		"redis":    h.checkRedis(),
	}
	for name, probe := range h.probes {
		check := Check{Status: "UP"}
		if !probe.IsReady() {
			check = Check{Status: "DOWN", Message: name + " is not ready"}
		}
		checks[name] = check
	}

	status, httpStatus := "UP", http.StatusOK
	for _, check := range checks {
		if check.Status != "UP" {
			status, httpStatus = "DOWN", http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, httpStatus, map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}

func (h *HealthHandler) checkDatabase() Check {
	if h.db == nil {
		return Check{Status: "DOWN", Message: "database connection is not initialized"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		return Check{Status: "DOWN", Message: "cannot reach database"}
	}
	return Check{Status: "UP"}
}

func (h *HealthHandler) checkRedis() Check {
	if h.redisClient == nil {
		return Check{Status: "DOWN", Message: "redis client is not initialized"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		return Check{Status: "DOWN", Message: "cannot reach redis"}
	}
	return Check{Status: "UP"}
}
