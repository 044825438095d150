// Package collection implements the add, edit and remove operations on the
// in-memory record lists behind editable tables. Every operation returns a
// new slice and leaves its input untouched.
package collection

import "errors"

// ErrNotFound is returned when no record carries the requested id.
var ErrNotFound = errors.New("record not found")

// Entity is a record with a numeric identifier, accessed through *T so the id
// can be assigned on insert.
type Entity[T any] interface {
	*T
	RecordID() int64
	SetRecordID(int64)
}

// NextID is one greater than the largest id in items, or 1 when empty.
func NextID[T any, P Entity[T]](items []T) int64 {
	if len(items) == 0 {
		return 1
	}
	maxID := P(&items[0]).RecordID()
	for i := range items[1:] {
		if id := P(&items[i+1]).RecordID(); id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// Add appends rec under a freshly generated id and returns the new slice along
// with the stored record.
func Add[T any, P Entity[T]](items []T, rec T) ([]T, T) {
	P(&rec).SetRecordID(NextID[T, P](items))
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	out = append(out, rec)
	return out, rec
}

// Remove drops the record with the given id. An unknown id returns an
// unchanged copy.
func Remove[T any, P Entity[T]](items []T, id int64) []T {
	out := make([]T, 0, len(items))
	for i := range items {
		if P(&items[i]).RecordID() != id {
			out = append(out, items[i])
		}
	}
	return out
}

// Replace swaps the record sharing rec's id. It reports false and returns an
// unchanged copy when the id is unknown.
func Replace[T any, P Entity[T]](items []T, rec T) ([]T, bool) {
	id := P(&rec).RecordID()
	out := make([]T, len(items))
	copy(out, items)
	for i := range out {
		if P(&out[i]).RecordID() == id {
			out[i] = rec
			return out, true
		}
	}
	return out, false
}

// Find returns the record with the given id.
func Find[T any, P Entity[T]](items []T, id int64) (T, error) {
	for i := range items {
		if P(&items[i]).RecordID() == id {
			return items[i], nil
		}
	}
	var zero T
	return zero, ErrNotFound
}
