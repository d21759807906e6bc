package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/aqtareen/Taqreeb/internal/api/render"
)

// BuildInfo is the ldflags metadata reported by GET /version.
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

type versionResponse struct {
	BuildInfo
	Service       string `json:"service"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

func (b BuildInfo) withDefaults() BuildInfo {
	if b.Version == "" {
		b.Version = "dev"
	}
	if b.GitCommit == "" {
		b.GitCommit = "unknown"
	}
	if b.BuildDate == "" {
		b.BuildDate = "unknown"
	}
	b.GoVersion = runtime.Version()
	return b
}

// VersionHandler serves build metadata and the process uptime.
func VersionHandler(info BuildInfo) http.Handler {
	info = info.withDefaults()
	started := time.Now()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, http.StatusOK, versionResponse{
			BuildInfo:     info,
			Service:       "taqreeb",
			UptimeSeconds: int64(time.Since(started).Seconds()),
		})
	})
}
