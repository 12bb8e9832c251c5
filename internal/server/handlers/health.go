package handlers

import (
	"context"

	"github.com/techhub/techhub/internal/server/dto"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// Health handles health check requests.
func (h *HealthHandler) Health(ctx context.Context, req *dto.HealthRequest) (*dto.HealthResponse, error) {
	return &dto.HealthResponse{Status: "ok", Version: h.version}, nil
}

// Root describes the API and links to its resources.
func (h *HealthHandler) Root(ctx context.Context, req *dto.RootRequest) (*dto.RootResponse, error) {
	return &dto.RootResponse{
		Name:    "techhub",
		Status:  "ok",
		Version: h.version,
		Links: map[string]string{
			"frameworks": "/frameworks",
			"health":     "/health",
			"schema":     "/schema",
		},
	}, nil
}
