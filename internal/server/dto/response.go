package dto

import (
	"net/http"
	"strconv"
)

// StatusCoder is implemented by responses whose success status is not 200.
type StatusCoder interface {
	StatusCode() int
}

// Locator is implemented by responses that set a Location header.
type Locator interface {
	Location() string
}

// --- Framework Responses ---

// FrameworkResponse is the wire form of a framework.
type FrameworkResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	CurrentVersion  string   `json:"currentVersion"`
	Category        Category `json:"category,omitempty"`
	PrimaryLanguage Language `json:"primaryLanguage,omitempty"`
	Description     string   `json:"description,omitempty"`
	OfficialSite    string   `json:"officialSite,omitempty"`
}

// FrameworkList is serialized as a bare JSON array.
type FrameworkList []FrameworkResponse

// CreateFrameworkResponse is returned with 201 and a Location header.
type CreateFrameworkResponse struct {
	FrameworkResponse
}

// StatusCode implements StatusCoder.
func (r *CreateFrameworkResponse) StatusCode() int {
	return http.StatusCreated
}

// Location implements Locator.
func (r *CreateFrameworkResponse) Location() string {
	return "/frameworks/" + strconv.FormatInt(r.ID, 10)
}

// NoContentResponse is returned with 204 and no body.
type NoContentResponse struct{}

// StatusCode implements StatusCoder.
func (r *NoContentResponse) StatusCode() int {
	return http.StatusNoContent
}

// --- Service Responses ---

// HealthResponse is a response from a health check.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// RootResponse describes the API.
type RootResponse struct {
	Name    string            `json:"name"`
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Links   map[string]string `json:"links"`
}

// SchemaResponse maps a wire type name to its JSON Schema.
type SchemaResponse map[string]any
