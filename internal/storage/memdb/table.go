package memdb

import (
	"errors"
	"sync"
)

var (
	// ErrNotFound is returned when no live row has the requested ID.
	ErrNotFound = errors.New("row not found")
	// ErrConflict is returned when a write collides with another live row.
	ErrConflict = errors.New("row conflicts with an existing row")
)

// Row is implemented by types stored in a Table.
//
// Clone must return a deep copy; SetID is only called on clones owned by the
// table.
type Row[T any] interface {
	Clone() T
	GetID() int64
	SetID(id int64)
}

// Table holds rows in insertion order.
type Table[T Row[T]] struct {
	seq Sequence

	mu   sync.RWMutex
	rows []T
}

// NewTable returns an empty table with its own ID sequence.
func NewTable[T Row[T]]() *Table[T] {
	return &Table[T]{rows: []T{}}
}

// Len returns the number of live rows.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// LastID returns the most recently issued ID, including IDs of deleted rows.
func (t *Table[T]) LastID() int64 {
	return t.seq.Last()
}

// All returns clones of all rows in insertion order.
func (t *Table[T]) All() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Clone()
	}
	return out
}

// Filter returns clones of the rows matching pred in insertion order.
//
// pred must not retain or modify the row it is given.
func (t *Table[T]) Filter(pred func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := []T{}
	for _, r := range t.rows {
		if pred(r) {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Get returns a clone of the row with the given ID.
func (t *Table[T]) Get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if i := t.indexOf(id); i >= 0 {
		return t.rows[i].Clone(), true
	}
	var zero T
	return zero, false
}

// Insert stores a clone of row under a freshly reserved ID and returns a clone
// of the stored row.
//
// conflicts is evaluated against every live row while the write lock is held;
// if it reports a match, nothing is stored and ErrConflict is returned. A nil
// conflicts accepts every row.
func (t *Table[T]) Insert(row T, conflicts func(existing T) bool) (T, error) {
	var zero T
	t.mu.Lock()
	defer t.mu.Unlock()
	if conflicts != nil {
		for _, r := range t.rows {
			if conflicts(r) {
				return zero, ErrConflict
			}
		}
	}
	stored := row.Clone()
	stored.SetID(t.seq.Next())
	t.rows = append(t.rows, stored)
	return stored.Clone(), nil
}

// Update replaces the row with the given ID, keeping its ID and position.
//
// conflicts is only evaluated against the other live rows, so a row may be
// updated to values that match itself.
func (t *Table[T]) Update(id int64, row T, conflicts func(existing T) bool) (T, error) {
	var zero T
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.indexOf(id)
	if i < 0 {
		return zero, ErrNotFound
	}
	if conflicts != nil {
		for j, r := range t.rows {
			if j != i && conflicts(r) {
				return zero, ErrConflict
			}
		}
	}
	stored := row.Clone()
	stored.SetID(id)
	t.rows[i] = stored
	return stored.Clone(), nil
}

// Delete removes the row with the given ID. Its ID is never issued again.
func (t *Table[T]) Delete(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return nil
}

// indexOf must be called with the lock held.
func (t *Table[T]) indexOf(id int64) int {
	for i, r := range t.rows {
		if r.GetID() == id {
			return i
		}
	}
	return -1
}
