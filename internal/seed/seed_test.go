package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/techhub/techhub/internal/storage/catalog"
)

const sample = `
frameworks:
  - name: Playwright
    currentVersion: 1.45.0
    category: WEB_AUTOMATION
    primaryLanguage: TYPESCRIPT
    officialSite: https://playwright.dev
  - name: Ktor
    currentVersion: "2.3.12"
    primaryLanguage: KOTLIN
    description: Asynchronous framework for connected systems.
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse(t *testing.T) {
	got, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "Playwright" || got[0].Category != catalog.CategoryWebAutomation || got[0].OfficialSite != "https://playwright.dev" {
		t.Errorf("entry 0 = %+v", got[0])
	}
	if got[1].CurrentVersion != "2.3.12" || got[1].PrimaryLanguage != catalog.LanguageKotlin {
		t.Errorf("entry 1 = %+v", got[1])
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name, content string
	}{
		{"unknown key", "frameworks:\n  - name: Gin\n    stars: 5\n"},
		{"missing name", "frameworks:\n  - currentVersion: 1\n"},
		{"not a list", "frameworks: Gin\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	got, err := Parse(strings.NewReader(""))
	if err != nil || len(got) != 0 {
		t.Errorf("got %v, %v", got, err)
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	svc := catalog.NewFrameworkService()
	n, err := Apply(ctx, svc, writeSeed(t, sample))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || svc.Len() != 2 {
		t.Errorf("n = %d, Len() = %d", n, svc.Len())
	}

	n, err = Apply(ctx, svc, writeSeed(t, sample))
	if !errors.Is(err, catalog.ErrConflict) || n != 0 {
		t.Errorf("reapplying: n = %d, err = %v", n, err)
	}

	if _, err := Apply(ctx, svc, filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: %v", err)
	}
}

func TestApply_RejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name, content string
	}{
		{"digits only name", "frameworks:\n  - name: \"123\"\n    currentVersion: \"1.0\"\n"},
		{"one rune name", "frameworks:\n  - name: X\n    currentVersion: \"1.0\"\n"},
		{"long name", "frameworks:\n  - name: " + strings.Repeat("a", 300) + "\n    currentVersion: \"1.0\"\n"},
		{"long version", "frameworks:\n  - name: Gin\n    currentVersion: " + strings.Repeat("1", 80) + "\n"},
		{"bad site", "frameworks:\n  - name: Gin\n    currentVersion: \"1.0\"\n    officialSite: not a url\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := catalog.NewFrameworkService()
			n, err := Apply(context.Background(), svc, writeSeed(t, tt.content))
			var verr *catalog.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *catalog.ValidationError, got %v", err)
			}
			if n != 0 || svc.Len() != 0 {
				t.Errorf("n = %d, Len() = %d, want nothing stored", n, svc.Len())
			}
		})
	}
}
