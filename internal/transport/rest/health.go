package rest

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"sort"
	"time"
)

const (
	livenessMessage    = "Visitor Management System API is running!"
	healthCheckTimeout = 2 * time.Second
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

// Check probes one dependency. Returned details are reported even on failure.
type Check func(ctx context.Context) (map[string]any, error)

type ComponentHealth struct {
	Status     HealthStatus   `json:"status"`
	Error      string         `json:"error,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	DurationMs int64          `json:"duration_ms"`
}

type HealthResponse struct {
	Status     HealthStatus               `json:"status"`
	CheckedAt  time.Time                  `json:"checked_at"`
	Components map[string]ComponentHealth `json:"components"`
}

type HealthHandler struct {
	checks map[string]Check
}

// NewHealthHandler reports on the database; further checks can be added with Register.
func NewHealthHandler(db *sql.DB, driver string) *HealthHandler {
	h := &HealthHandler{checks: make(map[string]Check)}
	h.Register("database", DatabaseCheck(db, driver))
	return h
}

func (h *HealthHandler) Register(name string, check Check) {
	h.checks[name] = check
}

func DatabaseCheck(db *sql.DB, driver string) Check {
	return func(ctx context.Context) (map[string]any, error) {
		details := map[string]any{
			"driver":           driver,
			"open_connections": db.Stats().OpenConnections,
		}
		return details, db.PingContext(ctx)
	}
}

// rootHandler answers GET / with a plain liveness string.
func (h *HealthHandler) rootHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(livenessMessage))
}

func (h *HealthHandler) pingHandler(w http.ResponseWriter, _ *http.Request) {
	writeHealthJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// ServeHTTP serves the aggregated health report.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.healthCheckHandler(w, r)
}

// healthCheckHandler runs every check and answers 503 if any fails.
func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := HealthResponse{
		Status:     HealthHealthy,
		Components: make(map[string]ComponentHealth, len(names)),
	}
	for _, name := range names {
		start := time.Now()
		details, err := h.checks[name](ctx)
		component := ComponentHealth{
			Status:     HealthHealthy,
			Details:    details,
			DurationMs: time.Since(start).Milliseconds(),
		}
		if err != nil {
			component.Status = HealthUnhealthy
			component.Error = err.Error()
			resp.Status = HealthUnhealthy
		}
		resp.Components[name] = component
	}
	resp.CheckedAt = time.Now().UTC()

	status := http.StatusOK
	if resp.Status == HealthUnhealthy {
		status = http.StatusServiceUnavailable
	}
	writeHealthJSON(w, status, resp)
}

func writeHealthJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
