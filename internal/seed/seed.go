// Package seed loads bootstrap frameworks from a YAML file.
//
// The file has a single top-level key:
//
//	frameworks:
//	  - name: Playwright
//	    currentVersion: 1.45.0
//	    category: WEB_AUTOMATION
//	    primaryLanguage: TYPESCRIPT
//	    officialSite: https://playwright.dev
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/techhub/techhub/internal/storage/catalog"
	"gopkg.in/yaml.v3"
)

type file struct {
	Frameworks []entry `yaml:"frameworks"`
}

type entry struct {
	Name            string `yaml:"name"`
	CurrentVersion  string `yaml:"currentVersion"`
	Category        string `yaml:"category"`
	PrimaryLanguage string `yaml:"primaryLanguage"`
	Description     string `yaml:"description"`
	OfficialSite    string `yaml:"officialSite"`
}

// Parse decodes seed entries from r. Unknown keys are rejected. An empty
// document yields no entries.
func Parse(r io.Reader) ([]catalog.FrameworkInput, error) {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	var f file
	if err := d.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	out := make([]catalog.FrameworkInput, 0, len(f.Frameworks))
	for i, e := range f.Frameworks {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("seed entry %d: name is required", i)
		}
		out = append(out, catalog.FrameworkInput{
			Name:            e.Name,
			CurrentVersion:  e.CurrentVersion,
			Category:        catalog.Category(e.Category),
			PrimaryLanguage: catalog.Language(e.PrimaryLanguage),
			Description:     e.Description,
			OfficialSite:    e.OfficialSite,
		})
	}
	return out, nil
}

// Load reads and parses the seed file at path.
func Load(path string) ([]catalog.FrameworkInput, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the operator
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Apply loads path into svc. It stops at the first entry the catalog rejects.
func Apply(ctx context.Context, svc *catalog.FrameworkService, path string) (int, error) {
	inputs, err := Load(path)
	if err != nil {
		return 0, err
	}
	n, err := svc.Seed(ctx, inputs)
	if err != nil {
		return n, err
	}
	slog.InfoContext(ctx, "Seeded frameworks", "path", path, "count", n)
	return n, nil
}
