package dto

import (
	"errors"
	"strings"
	"testing"
)

func ptr(s string) *string { return &s }

func fieldNames(err error) []string {
	var ews ErrorWithStatus
	if !errors.As(err, &ews) {
		return nil
	}
	var names []string
	for _, f := range ews.Fields() {
		names = append(names, f.Field)
	}
	return names
}

func TestFrameworkRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		req    FrameworkRequest
		code   ErrorCode
		fields []string
	}{
		{
			name: "valid",
			req:  FrameworkRequest{Name: ptr("Playwright"), CurrentVersion: ptr("1.45.0"), Category: CategoryWebAutomation, PrimaryLanguage: LanguageTypeScript, OfficialSite: "https://playwright.dev"},
		},
		{name: "missing name", req: FrameworkRequest{CurrentVersion: ptr("1")}, code: ErrorCodeMalformedRequest, fields: []string{"name"}},
		{name: "missing version", req: FrameworkRequest{Name: ptr("Gin")}, code: ErrorCodeMalformedRequest, fields: []string{"currentVersion"}},
		{name: "blank name and version", req: FrameworkRequest{Name: ptr("  "), CurrentVersion: ptr("")}, code: ErrorCodeValidation, fields: []string{"name", "currentVersion"}},
		{name: "name too short", req: FrameworkRequest{Name: ptr(" a "), CurrentVersion: ptr("1")}, code: ErrorCodeValidation, fields: []string{"name"}},
		{name: "name too long", req: FrameworkRequest{Name: ptr(strings.Repeat("x", 101)), CurrentVersion: ptr("1")}, code: ErrorCodeValidation, fields: []string{"name"}},
		{name: "name max length", req: FrameworkRequest{Name: ptr(strings.Repeat("é", 100)), CurrentVersion: ptr("1")}},
		{name: "numeric name", req: FrameworkRequest{Name: ptr("12345"), CurrentVersion: ptr("1")}, code: ErrorCodeValidation, fields: []string{"name"}},
		{name: "digits with letters", req: FrameworkRequest{Name: ptr("web3"), CurrentVersion: ptr("1")}},
		{name: "version too long", req: FrameworkRequest{Name: ptr("Gin"), CurrentVersion: ptr(strings.Repeat("1", 51))}, code: ErrorCodeValidation, fields: []string{"currentVersion"}},
		{
			name:   "every optional field invalid",
			req:    FrameworkRequest{Name: ptr("Gin"), CurrentVersion: ptr("1"), Category: "GAMES", PrimaryLanguage: "COBOL", Description: strings.Repeat("d", 1001), OfficialSite: "ftp://gin"},
			code:   ErrorCodeValidation,
			fields: []string{"category", "primaryLanguage", "description", "officialSite"},
		},
		{name: "relative site", req: FrameworkRequest{Name: ptr("Gin"), CurrentVersion: ptr("1"), OfficialSite: "/gin"}, code: ErrorCodeValidation, fields: []string{"officialSite"}},
		{name: "padded enum", req: FrameworkRequest{Name: ptr("Gin"), CurrentVersion: ptr("1"), Category: " API_TESTING ", PrimaryLanguage: "GO"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ews ErrorWithStatus
			if !errors.As(err, &ews) {
				t.Fatalf("expected ErrorWithStatus, got %v", err)
			}
			if ews.Code() != tt.code {
				t.Errorf("Code() = %s, want %s", ews.Code(), tt.code)
			}
			got := fieldNames(err)
			if strings.Join(got, ",") != strings.Join(tt.fields, ",") {
				t.Errorf("fields = %v, want %v", got, tt.fields)
			}
		})
	}
}

func TestFrameworkRequest_Trims(t *testing.T) {
	r := FrameworkRequest{Name: ptr("  Spring Boot "), CurrentVersion: ptr("\t3.3.0\n"), Description: "  text ", OfficialSite: " https://spring.io "}
	if err := r.Validate(); err != nil {
		t.Fatal(err)
	}
	if *r.Name != "Spring Boot" || *r.CurrentVersion != "3.3.0" || r.Description != "text" || r.OfficialSite != "https://spring.io" {
		t.Errorf("not trimmed: %+v", r)
	}
}

func TestSearchFrameworksRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   *string
		wantMsg string
	}{
		{"absent", nil, ""},
		{"present", ptr("spring"), ""},
		{"blank", ptr("   "), "The 'name' parameter cannot be blank."},
		{"empty", ptr(""), "The 'name' parameter cannot be blank."},
		{"numeric", ptr("123"), "The 'name' parameter cannot consist only of numbers."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&SearchFrameworksRequest{Name: tt.query}).Validate()
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantMsg {
				t.Errorf("error = %v, want %q", err, tt.wantMsg)
			}
		})
	}
}

func TestIDRequests_Validate(t *testing.T) {
	for _, id := range []int64{0, -1} {
		if err := (&GetFrameworkRequest{ID: id}).Validate(); err == nil {
			t.Errorf("GetFrameworkRequest{%d} accepted", id)
		}
		if err := (&DeleteFrameworkRequest{ID: id}).Validate(); err == nil {
			t.Errorf("DeleteFrameworkRequest{%d} accepted", id)
		}
		upd := UpdateFrameworkRequest{ID: id, FrameworkRequest: FrameworkRequest{Name: ptr("Gin"), CurrentVersion: ptr("1")}}
		if err := upd.Validate(); err == nil || err.Error() != "The 'id' must be a positive number." {
			t.Errorf("UpdateFrameworkRequest{%d} error = %v", id, err)
		}
	}
	if err := (&GetFrameworkRequest{ID: 1}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCreateFrameworkResponse(t *testing.T) {
	r := &CreateFrameworkResponse{FrameworkResponse{ID: 7}}
	if r.Location() != "/frameworks/7" {
		t.Errorf("Location() = %q", r.Location())
	}
	if r.StatusCode() != 201 {
		t.Errorf("StatusCode() = %d", r.StatusCode())
	}
}
