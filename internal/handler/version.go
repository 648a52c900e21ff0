package handler

import (
	"net/http"
	"runtime"
)

// VersionInfo contains version and build information
type VersionInfo struct {
	Version        string `json:"version"`
	GoVersion      string `json:"go_version"`
	CatalogVersion string `json:"catalog_version"`
	BuildTime      string `json:"build_time,omitempty"`
	GitCommit      string `json:"git_commit,omitempty"`
}

// Build-time variables (injected via ldflags)
var (
	BuildTime = "unknown"
	GitCommit = "unset"
)

// HandleVersion returns the deployed binary and catalog versions
// @Summary Version
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion(version, catalogVersion string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, VersionInfo{
			Version:        version,
			GoVersion:      runtime.Version(),
			CatalogVersion: catalogVersion,
			BuildTime:      BuildTime,
			GitCommit:      GitCommit,
		})
	}
}
