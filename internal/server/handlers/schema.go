package handlers

import (
	"context"

	"github.com/invopop/jsonschema"
	"github.com/techhub/techhub/internal/server/dto"
)

// SchemaHandler publishes the JSON Schemas of the wire types.
type SchemaHandler struct {
	schemas dto.SchemaResponse
}

// NewSchemaHandler reflects the schemas once.
func NewSchemaHandler() *SchemaHandler {
	r := &jsonschema.Reflector{DoNotReference: true}
	return &SchemaHandler{schemas: dto.SchemaResponse{
		"FrameworkRequest":  r.Reflect(&dto.FrameworkRequest{}),
		"FrameworkResponse": r.Reflect(&dto.FrameworkResponse{}),
		"ErrorResponse":     r.Reflect(&dto.ErrorResponse{}),
	}}
}

// Schema returns the schemas keyed by type name.
func (h *SchemaHandler) Schema(ctx context.Context, req *dto.SchemaRequest) (*dto.SchemaResponse, error) {
	return &h.schemas, nil
}
