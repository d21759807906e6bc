package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aqtareen/Taqreeb/internal/metrics"
	"github.com/aqtareen/Taqreeb/internal/storage"
)

const databaseCheckTimeout = 2 * time.Second

// HealthCheck represents the health status of the server
type HealthCheck struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	GitCommit string                 `json:"git_commit"`
	Checks    map[string]CheckResult `json:"checks"`
	Timestamp string                 `json:"timestamp"`
}

// CheckResult represents the result of a single health check
type CheckResult struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	db        Pinger
	version   string
	gitCommit string
}

func NewHealthChecker(db Pinger, version, gitCommit string) *HealthChecker {
	return &HealthChecker{db: db, version: version, gitCommit: gitCommit}
}

// Health answers 200 when every check passes and 503 otherwise.
func (h *HealthChecker) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Context().Err() != nil {
			writeHealth(w, http.StatusServiceUnavailable, map[string]string{"status": "shutting_down"})
			return
		}

		checks := map[string]CheckResult{
			"database": h.checkDatabase(r.Context()),
		}

		status, code := "healthy", http.StatusOK
		for name, check := range checks {
			pass := check.Status == "pass"
			if pass {
				metrics.HealthCheckStatus.WithLabelValues(name).Set(1)
				continue
			}
			metrics.HealthCheckStatus.WithLabelValues(name).Set(0)
			status, code = "unhealthy", http.StatusServiceUnavailable
		}

		writeHealth(w, code, HealthCheck{
			Status:    status,
			Version:   h.version,
			GitCommit: h.gitCommit,
			Checks:    checks,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func (h *HealthChecker) checkDatabase(ctx context.Context) CheckResult {
	if h.db == nil {
		return CheckResult{Status: "fail", Message: "Database not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, databaseCheckTimeout)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	switch {
	case err == nil:
		return CheckResult{Status: "pass", Message: "PostgreSQL connection successful", LatencyMs: latency}
	case storage.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return CheckResult{Status: "fail", Message: "Database ping timed out", LatencyMs: latency}
	default:
		return CheckResult{Status: "fail", Message: "Database ping failed", LatencyMs: latency}
	}
}

func writeHealth(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
