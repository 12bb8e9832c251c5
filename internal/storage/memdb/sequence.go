package memdb

import "sync/atomic"

// Sequence hands out strictly increasing positive IDs.
//
// The zero value is ready to use and starts at 1.
type Sequence struct {
	last atomic.Int64
}

// Next reserves and returns the next ID.
func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}

// Last returns the most recently issued ID, or 0 if none was issued.
func (s *Sequence) Last() int64 {
	return s.last.Load()
}
