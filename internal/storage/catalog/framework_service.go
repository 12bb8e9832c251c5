// Manages the in-memory framework catalog.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/techhub/techhub/internal/storage/memdb"
)

// FrameworkService is the authoritative store of frameworks.
//
// No two live frameworks share the same case-folded name and current
// version. It is safe for concurrent use.
type FrameworkService struct {
	table *memdb.Table[*Framework]
}

// NewFrameworkService returns an empty catalog.
func NewFrameworkService() *FrameworkService {
	return &FrameworkService{table: memdb.NewTable[*Framework]()}
}

// Create stores a new framework and assigns it the next ID.
func (s *FrameworkService) Create(ctx context.Context, in FrameworkInput) (*Framework, error) {
	in = in.Normalized()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	f := in.toFramework()
	stored, err := s.table.Insert(f, f.collidesWith)
	if err != nil {
		return nil, s.translate(err, 0, &in)
	}
	slog.DebugContext(ctx, "Created framework", "id", stored.ID, "name", stored.Name, "version", stored.CurrentVersion)
	return stored, nil
}

// List returns every live framework in creation order.
func (s *FrameworkService) List(ctx context.Context) []*Framework {
	return s.table.All()
}

// FindByName returns the frameworks whose name contains query, ignoring case.
// It returns an empty slice when nothing matches.
func (s *FrameworkService) FindByName(ctx context.Context, query string) ([]*Framework, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		verr := &ValidationError{}
		verr.add("name", "must not be blank")
		return nil, verr
	}
	needle := foldName(query)
	return s.table.Filter(func(f *Framework) bool {
		return strings.Contains(f.nameKey, needle)
	}), nil
}

// Get returns the framework with the given ID.
func (s *FrameworkService) Get(ctx context.Context, id int64) (*Framework, error) {
	f, ok := s.table.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return f, nil
}

// Update replaces every mutable field of the framework with the given ID.
//
// Updating a framework to its own current name and version is allowed.
func (s *FrameworkService) Update(ctx context.Context, id int64, in FrameworkInput) (*Framework, error) {
	in = in.Normalized()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	f := in.toFramework()
	stored, err := s.table.Update(id, f, f.collidesWith)
	if err != nil {
		return nil, s.translate(err, id, &in)
	}
	slog.DebugContext(ctx, "Updated framework", "id", stored.ID, "name", stored.Name, "version", stored.CurrentVersion)
	return stored, nil
}

// Delete removes the framework with the given ID. The ID is never reused.
func (s *FrameworkService) Delete(ctx context.Context, id int64) error {
	if err := s.table.Delete(id); err != nil {
		return s.translate(err, id, nil)
	}
	slog.DebugContext(ctx, "Deleted framework", "id", id)
	return nil
}

// Seed creates every input in order. It stops at the first failure and
// returns the number of frameworks created.
func (s *FrameworkService) Seed(ctx context.Context, inputs []FrameworkInput) (int, error) {
	for i, in := range inputs {
		if _, err := s.Create(ctx, in); err != nil {
			return i, fmt.Errorf("seed entry %d (%q): %w", i, in.Name, err)
		}
	}
	return len(inputs), nil
}

// Len returns the number of live frameworks.
func (s *FrameworkService) Len() int {
	return s.table.Len()
}

func (s *FrameworkService) translate(err error, id int64, in *FrameworkInput) error {
	switch {
	case errors.Is(err, memdb.ErrNotFound):
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	case errors.Is(err, memdb.ErrConflict):
		return fmt.Errorf("%w: name %q version %q", ErrConflict, in.Name, in.CurrentVersion)
	default:
		return err
	}
}
