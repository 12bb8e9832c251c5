// Handles the framework catalog endpoints.

package handlers

import (
	"context"

	"github.com/techhub/techhub/internal/server/dto"
	"github.com/techhub/techhub/internal/storage/catalog"
)

// FrameworkHandler serves /frameworks.
type FrameworkHandler struct {
	svc *catalog.FrameworkService
}

// NewFrameworkHandler creates a new framework handler.
func NewFrameworkHandler(svc *catalog.FrameworkService) *FrameworkHandler {
	return &FrameworkHandler{svc: svc}
}

// CreateFramework registers a new framework.
func (h *FrameworkHandler) CreateFramework(ctx context.Context, req *dto.CreateFrameworkRequest) (*dto.CreateFrameworkResponse, error) {
	in := frameworkInput(&req.FrameworkRequest)
	f, err := h.svc.Create(ctx, in)
	if err != nil {
		return nil, frameworkError(err, 0, &in)
	}
	return &dto.CreateFrameworkResponse{FrameworkResponse: frameworkToResponse(f)}, nil
}

// ListFrameworks returns every framework, or those whose name contains the
// name query parameter when present.
func (h *FrameworkHandler) ListFrameworks(ctx context.Context, req *dto.SearchFrameworksRequest) (*dto.FrameworkList, error) {
	if req.Name == nil {
		return frameworksToList(h.svc.List(ctx)), nil
	}
	fs, err := h.svc.FindByName(ctx, *req.Name)
	if err != nil {
		return nil, frameworkError(err, 0, nil)
	}
	return frameworksToList(fs), nil
}

// GetFramework returns one framework.
func (h *FrameworkHandler) GetFramework(ctx context.Context, req *dto.GetFrameworkRequest) (*dto.FrameworkResponse, error) {
	f, err := h.svc.Get(ctx, req.ID)
	if err != nil {
		return nil, frameworkError(err, req.ID, nil)
	}
	resp := frameworkToResponse(f)
	return &resp, nil
}

// UpdateFramework replaces every field of a framework.
func (h *FrameworkHandler) UpdateFramework(ctx context.Context, req *dto.UpdateFrameworkRequest) (*dto.FrameworkResponse, error) {
	in := frameworkInput(&req.FrameworkRequest)
	f, err := h.svc.Update(ctx, req.ID, in)
	if err != nil {
		return nil, frameworkError(err, req.ID, &in)
	}
	resp := frameworkToResponse(f)
	return &resp, nil
}

// DeleteFramework removes a framework.
func (h *FrameworkHandler) DeleteFramework(ctx context.Context, req *dto.DeleteFrameworkRequest) (*dto.NoContentResponse, error) {
	if err := h.svc.Delete(ctx, req.ID); err != nil {
		return nil, frameworkError(err, req.ID, nil)
	}
	return &dto.NoContentResponse{}, nil
}
