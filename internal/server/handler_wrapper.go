// Provides middleware for standardizing HTTP handlers.

package server

import (
	"bytes"
	"context"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/techhub/techhub/internal/server/dto"
	"github.com/techhub/techhub/internal/server/reqctx"
)

// Wrap wraps a handler function to work as an http.Handler.
// The function must have signature: func(context.Context, *In) (*Out, error)
// where In can be unmarshalled from JSON and Out is a struct.
// Path parameters are bound to struct fields tagged `path:"name"` and query
// parameters to fields tagged `query:"name"`.
// *In must implement dto.Validatable.
//
// The success status is 200 unless *Out implements dto.StatusCoder, and a
// Location header is set when *Out implements dto.Locator.
//
// Example:
//
//	type GetFrameworkRequest struct {
//	    ID int64 `path:"id"`
//	}
//
//	func (h *Handler) GetFramework(ctx context.Context, req *GetFrameworkRequest) (*Response, error)
func Wrap[In any, PtrIn interface {
	*In
	dto.Validatable
}, Out any](fn func(context.Context, PtrIn) (*Out, error), cfg *Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		input := new(In)
		if err := readAndDecodeBody(w, r, input, cfg.Quotas.MaxRequestBodyBytes); err != nil {
			writeErrorResponse(w, r, err)
			return
		}

		populatePathParams(r, input)
		populateQueryParams(r, input)

		if err := PtrIn(input).Validate(); err != nil {
			writeErrorResponse(w, r, err)
			return
		}

		output, err := fn(ctx, PtrIn(input))
		if err != nil {
			writeErrorResponse(w, r, err)
			return
		}
		writeJSONResponse(ctx, w, output)
	})
}

// readAndDecodeBody reads the request body with size limit and decodes JSON
// into input. An empty body leaves input untouched.
func readAndDecodeBody(w http.ResponseWriter, r *http.Request, input any, limit int64) error {
	if limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}
	body, err := io.ReadAll(r.Body)
	if err2 := r.Body.Close(); err == nil {
		err = err2
	}
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return dto.PayloadTooLarge(maxBytesErr.Limit)
		}
		return dto.Malformed("Failed to read request body").Wrap(err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if ct := r.Header.Get("Content-Type"); !isJSONContentType(ct) {
		return dto.UnsupportedMediaType(ct)
	}

	d := json.NewDecoder(bytes.NewReader(body))
	d.DisallowUnknownFields()
	if err := d.Decode(input); err != nil {
		return decodeError(err)
	}
	if _, err := d.Token(); !errors.Is(err, io.EOF) {
		return dto.Malformed("Request body must contain a single JSON object")
	}
	return nil
}

// decodeError converts a json decoding failure into a MALFORMED_REQUEST error.
func decodeError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return dto.Malformed("Malformed JSON request body").Wrap(err)
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return dto.Malformed("Request body must be a JSON object").Wrap(err)
		}
		return dto.Malformed(fmt.Sprintf("Field '%s' must be a %s", field, jsonKind(typeErr.Type))).
			WithFields(dto.FieldError{Field: field, Message: "has the wrong type"}).Wrap(err)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		name := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return dto.Malformed(fmt.Sprintf("Unknown field '%s'", name)).
			WithFields(dto.FieldError{Field: name, Message: "is not a recognized property"}).Wrap(err)
	default:
		return dto.Malformed("Invalid request body").Wrap(err)
	}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

func isJSONContentType(ct string) bool {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// writeJSONResponse writes output with the status selected by dto.StatusCoder.
func writeJSONResponse[Out any](ctx context.Context, w http.ResponseWriter, output *Out) {
	status := http.StatusOK
	if sc, ok := any(output).(dto.StatusCoder); ok {
		status = sc.StatusCode()
	}
	if loc, ok := any(output).(dto.Locator); ok {
		w.Header().Set("Location", loc.Location())
	}
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(output); err != nil {
		slog.ErrorContext(ctx, "Failed to encode response", "err", err)
	}
}

// populatePathParams extracts path parameters from the request and populates
// struct fields tagged with `path:"paramName"`.
func populatePathParams(r *http.Request, input any) {
	elem, ok := structElem(input)
	if !ok {
		return
	}
	typ := elem.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		tag := field.Tag.Get("path")
		if tag == "" {
			continue
		}
		paramValue := r.PathValue(tag)
		if paramValue == "" {
			continue
		}
		switch field.Type.Kind() {
		case reflect.String:
			elem.Field(i).SetString(paramValue)
		case reflect.Int64:
			// An unparsable id stays zero and fails validation.
			if id, err := strconv.ParseInt(paramValue, 10, 64); err == nil {
				elem.Field(i).SetInt(id)
			}
		}
	}
}

// populateQueryParams extracts query parameters from the request and populates
// struct fields tagged with `query:"paramName"`. A *string field is set
// whenever the parameter is present, even when empty.
func populateQueryParams(r *http.Request, input any) {
	elem, ok := structElem(input)
	if !ok {
		return
	}
	query := r.URL.Query()
	typ := elem.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		tag := field.Tag.Get("query")
		if tag == "" || !query.Has(tag) {
			continue
		}
		paramValue := query.Get(tag)
		fieldVal := elem.Field(i)
		switch {
		case field.Type.Kind() == reflect.Pointer && field.Type.Elem().Kind() == reflect.String:
			fieldVal.Set(reflect.ValueOf(&paramValue))
		case paramValue == "":
		case field.Type.Kind() == reflect.String:
			fieldVal.SetString(paramValue)
		case field.Type.Kind() == reflect.Int:
			if intVal, err := strconv.Atoi(paramValue); err == nil {
				fieldVal.SetInt(int64(intVal))
			}
		default:
			if fieldVal.CanAddr() {
				if unmarshaler, ok := fieldVal.Addr().Interface().(encoding.TextUnmarshaler); ok {
					_ = unmarshaler.UnmarshalText([]byte(paramValue))
				}
			}
		}
	}
}

func structElem(input any) (reflect.Value, bool) {
	val := reflect.ValueOf(input)
	if val.Kind() != reflect.Pointer {
		return reflect.Value{}, false
	}
	elem := val.Elem()
	return elem, elem.Kind() == reflect.Struct
}

// writeErrorResponse writes err as a dto.ErrorResponse. Errors that do not
// carry a status become INTERNAL, and INTERNAL never exposes its cause.
func writeErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	resp := dto.ErrorResponse{
		Status:    http.StatusInternalServerError,
		Error:     dto.ErrorDetails{Code: dto.ErrorCodeInternal, Message: dto.InternalErrorMessage},
		Path:      r.URL.Path,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: reqctx.RequestID(ctx),
	}
	var ews dto.ErrorWithStatus
	if errors.As(err, &ews) && ews.Code() != dto.ErrorCodeInternal {
		resp.Status = ews.StatusCode()
		resp.Error = dto.ErrorDetails{Code: ews.Code(), Message: ews.Message()}
		resp.Fields = ews.Fields()
		resp.Details = ews.Details()
	}

	if resp.Status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "Handler error", "err", err, "statusCode", resp.Status, "code", resp.Error.Code)
	} else {
		slog.InfoContext(ctx, "Request rejected", "err", err, "statusCode", resp.Status, "code", resp.Error.Code)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.ErrorContext(ctx, "Failed to encode error response", "err", err)
	}
}
