// Translates catalog errors into API errors.

package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/techhub/techhub/internal/server/dto"
	"github.com/techhub/techhub/internal/storage/catalog"
)

// frameworkError maps a catalog error to a dto error. id is the requested ID
// and in the submitted payload, either may be zero.
func frameworkError(err error, id int64, in *catalog.FrameworkInput) error {
	var verr *catalog.ValidationError
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return dto.NewAPIError(http.StatusNotFound, dto.ErrorCodeNotFound, fmt.Sprintf("Framework with ID %d not found.", id)).
			WithDetail("id", id).Wrap(err)
	case errors.Is(err, catalog.ErrConflict):
		msg := "Framework already exists."
		if in != nil {
			msg = fmt.Sprintf("Framework with name '%s' and version '%s' already exists.", in.Name, in.CurrentVersion)
		}
		return dto.Conflict(msg).Wrap(err)
	case errors.As(err, &verr):
		fields := make([]dto.FieldError, 0, len(verr.Violations))
		for _, v := range verr.Violations {
			fields = append(fields, dto.FieldError{Field: v.Field, Message: v.Message})
		}
		return dto.Validation(fields...).Wrap(err)
	default:
		return dto.InternalWithError("framework store failed", err)
	}
}
