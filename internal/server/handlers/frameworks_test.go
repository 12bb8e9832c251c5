package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/techhub/techhub/internal/server/dto"
	"github.com/techhub/techhub/internal/storage/catalog"
)

func ptr(s string) *string { return &s }

func createReq(name, version string) *dto.CreateFrameworkRequest {
	return &dto.CreateFrameworkRequest{FrameworkRequest: dto.FrameworkRequest{Name: ptr(name), CurrentVersion: ptr(version)}}
}

func apiError(t *testing.T, err error) dto.ErrorWithStatus {
	t.Helper()
	var ews dto.ErrorWithStatus
	if !errors.As(err, &ews) {
		t.Fatalf("expected dto.ErrorWithStatus, got %v", err)
	}
	return ews
}

func TestFrameworkHandler(t *testing.T) {
	ctx := context.Background()
	h := NewFrameworkHandler(catalog.NewFrameworkService())

	created, err := h.CreateFramework(ctx, &dto.CreateFrameworkRequest{FrameworkRequest: dto.FrameworkRequest{
		Name:            ptr("Playwright"),
		CurrentVersion:  ptr("1.45.0"),
		Category:        dto.CategoryWebAutomation,
		PrimaryLanguage: dto.LanguageTypeScript,
	}})
	if err != nil {
		t.Fatalf("CreateFramework failed: %v", err)
	}
	if created.ID != 1 || created.Category != dto.CategoryWebAutomation {
		t.Errorf("unexpected create response: %+v", created)
	}

	t.Run("conflict", func(t *testing.T) {
		_, err := h.CreateFramework(ctx, createReq("playwright", "1.45.0"))
		ews := apiError(t, err)
		if ews.StatusCode() != http.StatusConflict {
			t.Errorf("StatusCode() = %d", ews.StatusCode())
		}
		if want := "Framework with name 'playwright' and version '1.45.0' already exists."; ews.Message() != want {
			t.Errorf("Message() = %q, want %q", ews.Message(), want)
		}
	})
	t.Run("get", func(t *testing.T) {
		got, err := h.GetFramework(ctx, &dto.GetFrameworkRequest{ID: 1})
		if err != nil {
			t.Fatal(err)
		}
		if got.Name != "Playwright" {
			t.Errorf("Name = %q", got.Name)
		}
	})
	t.Run("get missing", func(t *testing.T) {
		_, err := h.GetFramework(ctx, &dto.GetFrameworkRequest{ID: 99})
		ews := apiError(t, err)
		if ews.Code() != dto.ErrorCodeNotFound || ews.Message() != "Framework with ID 99 not found." {
			t.Errorf("got %s %q", ews.Code(), ews.Message())
		}
	})
	t.Run("list and search", func(t *testing.T) {
		if _, err := h.CreateFramework(ctx, createReq("Spring Boot", "3.3.0")); err != nil {
			t.Fatal(err)
		}
		all, err := h.ListFrameworks(ctx, &dto.SearchFrameworksRequest{})
		if err != nil {
			t.Fatal(err)
		}
		if len(*all) != 2 {
			t.Errorf("len = %d, want 2", len(*all))
		}
		found, err := h.ListFrameworks(ctx, &dto.SearchFrameworksRequest{Name: ptr("SPRING")})
		if err != nil {
			t.Fatal(err)
		}
		if len(*found) != 1 || (*found)[0].Name != "Spring Boot" {
			t.Errorf("search = %+v", *found)
		}
		none, err := h.ListFrameworks(ctx, &dto.SearchFrameworksRequest{Name: ptr("angular")})
		if err != nil {
			t.Fatal(err)
		}
		if none == nil || *none == nil || len(*none) != 0 {
			t.Errorf("expected empty non-nil list, got %#v", none)
		}
	})
	t.Run("update", func(t *testing.T) {
		got, err := h.UpdateFramework(ctx, &dto.UpdateFrameworkRequest{ID: 1, FrameworkRequest: dto.FrameworkRequest{Name: ptr("Playwright"), CurrentVersion: ptr("1.48.0")}})
		if err != nil {
			t.Fatal(err)
		}
		if got.CurrentVersion != "1.48.0" || got.Category != "" {
			t.Errorf("unexpected update: %+v", got)
		}
	})
	t.Run("delete", func(t *testing.T) {
		if _, err := h.DeleteFramework(ctx, &dto.DeleteFrameworkRequest{ID: 1}); err != nil {
			t.Fatal(err)
		}
		_, err := h.DeleteFramework(ctx, &dto.DeleteFrameworkRequest{ID: 1})
		if ews := apiError(t, err); ews.StatusCode() != http.StatusNotFound {
			t.Errorf("StatusCode() = %d", ews.StatusCode())
		}
	})
}

func TestFrameworkError(t *testing.T) {
	in := &catalog.FrameworkInput{Name: "Gin", CurrentVersion: "1"}
	tests := []struct {
		name string
		err  error
		code dto.ErrorCode
	}{
		{"not found", catalog.ErrNotFound, dto.ErrorCodeNotFound},
		{"conflict", catalog.ErrConflict, dto.ErrorCodeConflict},
		{"validation", &catalog.ValidationError{Violations: []catalog.FieldViolation{{Field: "name", Message: "must not be blank"}}}, dto.ErrorCodeValidation},
		{"other", errors.New("boom"), dto.ErrorCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ews := apiError(t, frameworkError(tt.err, 1, in))
			if ews.Code() != tt.code {
				t.Errorf("Code() = %s, want %s", ews.Code(), tt.code)
			}
			if !errors.Is(frameworkError(tt.err, 1, in), tt.err) {
				t.Error("cause is not wrapped")
			}
		})
	}
}
