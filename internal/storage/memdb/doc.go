// Package memdb provides a generic, concurrent-safe, in-memory table.
//
// # Overview
//
// The package centers around [Table], a generic container that keeps rows in
// insertion order and hands out clones so callers never alias live rows.
// Each table owns a [Sequence] that assigns row IDs.
//
// # Concurrency: Pessimistic Locking
//
// Every mutation holds the write lock for the whole check-then-write
// operation: [Table.Insert] and [Table.Update] evaluate the caller's conflict
// predicate against the live rows and apply the write inside the same
// critical section. Two concurrent inserts can therefore never both pass the
// conflict check.
//
// # IDs
//
// IDs are positive, strictly increasing and never reused, including after a
// row is deleted or after an insert that reserved an ID fails.
package memdb
