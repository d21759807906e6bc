package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Flags
	healthcheckTimeout int
	healthcheckURL     string
	healthcheckJSON    bool
)

// HealthResponse matches the body served by GET /health.
type HealthResponse struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks,omitempty"`
}

type CheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthResult is the outcome of one probe.
type HealthResult struct {
	URL       string `json:"url"`
	IsHealthy bool   `json:"healthy"`
	Status    string `json:"status,omitempty"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
}

func newHealthcheckCommand() *cobra.Command {
	healthcheck := &cobra.Command{
		Use:   "healthcheck",
		Short: "Check if the server is healthy",
		Long: `Performs a health check by calling the /health endpoint.

This command is used by Docker HEALTHCHECK to monitor container health.
It exits with code 0 if the server is healthy, non-zero otherwise.`,
		Args: cobra.NoArgs,
		RunE: runHealthcheck,
	}

	healthcheck.Flags().IntVar(&healthcheckTimeout, "timeout", 5, "timeout in seconds")
	healthcheck.Flags().StringVar(&healthcheckURL, "url", "", "health check URL (default: http://localhost:{SERVER_PORT}/health)")
	healthcheck.Flags().BoolVar(&healthcheckJSON, "json", false, "print the result as JSON")
	return healthcheck
}

func runHealthcheck(cmd *cobra.Command, args []string) error {
	result := performHealthCheck(healthURL())

	out := cmd.OutOrStdout()
	if healthcheckJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else if result.IsHealthy {
		fmt.Fprintf(out, "healthy (%dms)\n", result.LatencyMs)
	}

	switch {
	case result.Error != "":
		return fmt.Errorf("health check failed: %s", result.Error)
	case !result.IsHealthy:
		return fmt.Errorf("unhealthy: status=%s", result.Status)
	}
	return nil
}

func healthURL() string {
	if healthcheckURL != "" {
		return healthcheckURL
	}
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "5000"
	}
	return fmt.Sprintf("http://localhost:%s/health", port)
}

// performHealthCheck GETs url and reports whether the server answered
// 200 with status "healthy". A 503 body is still parsed so the reported
// status reflects what the server said.
func performHealthCheck(url string) HealthResult {
	result := HealthResult{URL: url}

	timeout := time.Duration(healthcheckTimeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		result.Error = fmt.Sprintf("create request: %v", err)
		return result
	}

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	result.LatencyMs = time.Since(start).Milliseconds()
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	var body HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		result.Error = fmt.Sprintf("invalid response (HTTP %d): %v", resp.StatusCode, err)
		return result
	}

	result.Status = body.Status
	result.IsHealthy = resp.StatusCode == http.StatusOK && body.Status == "healthy"
	return result
}
