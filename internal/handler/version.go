package handler

import (
	"net/http"
	"runtime"
)

// VersionInfo contains version and build information
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// Injected with -ldflags "-X github.com/saofrance/shop-api/internal/handler.GitCommit=..."
var (
	BuildTime = ""
	GitCommit = ""
)

// HandleVersion reports the configured release and build metadata
// @Summary Build information
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion(version string) http.HandlerFunc {
	info := VersionInfo{
		Version:   version,
		GoVersion: runtime.Version(),
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}
