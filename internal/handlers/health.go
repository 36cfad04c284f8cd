package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/TruLie13/El-Paso-AI/internal/contextutil"
	"github.com/TruLie13/El-Paso-AI/internal/storage"
)

// CollectionChecker is the narrow vector-store surface the health check needs.
type CollectionChecker interface {
	CollectionExists(ctx context.Context, name string) (bool, error)
}

// HealthHandler reports the availability of the service's dependencies.
type HealthHandler struct {
	vectors            CollectionChecker
	sections           storage.SectionStore
	collection         string
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(vectors CollectionChecker, sections storage.SectionStore, collection string) *HealthHandler {
	return &HealthHandler{
		vectors:            vectors,
		sections:           sections,
		collection:         collection,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// SectionCount is the number of ingested code sections.
	SectionCount int `json:"section_count"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles GET /api/v1/health. Returns 200 when both stores answer,
// 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string
	var sectionCount int

	exists, err := h.vectors.CollectionExists(checkCtx, h.collection)
	if err != nil || !exists {
		if err != nil {
			logger.WarnContext(ctx, "vector store health check failed", "error", err)
		} else {
			logger.WarnContext(ctx, "vector store collection does not exist", "collection", h.collection)
		}
		checks["vector_store"] = "error"
		issues = append(issues, "vector_store_unavailable")
	} else {
		checks["vector_store"] = "ok"
	}

	if n, err := h.sections.Count(checkCtx); err != nil {
		logger.WarnContext(ctx, "section store health check failed", "error", err)
		checks["section_store"] = "error"
		issues = append(issues, "section_store_unavailable")
	} else {
		checks["section_store"] = "ok"
		sectionCount = n
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:       status,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Checks:       checks,
		SectionCount: sectionCount,
		Issues:       issues,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode health response", "error", err)
	}
}
