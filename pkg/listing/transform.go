// Package listing implements the filter, sort and paginate pipeline that
// every table and card view applies to its dataset.
//
// All functions are pure: they never modify the input slice and always
// return a freshly allocated result, so a view can recompute on every
// request without side effects.
package listing

import "slices"

// Predicate reports whether a record is kept.
type Predicate[T any] func(T) bool

// Comparator orders two records; negative means a sorts before b.
type Comparator[T any] func(a, b T) int

// Filter returns the records accepted by keep, in input order. A nil keep
// accepts everything.
func Filter[T any](items []T, keep Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep == nil || keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Sort returns a stably sorted copy of items. A nil comparator keeps input
// order.
func Sort[T any](items []T, compare Comparator[T]) []T {
	out := slices.Clone(items)
	if out == nil {
		out = make([]T, 0)
	}
	if compare != nil {
		slices.SortStableFunc(out, compare)
	}
	return out
}

// Transform filters then sorts.
func Transform[T any](items []T, keep Predicate[T], compare Comparator[T]) []T {
	filtered := Filter(items, keep)
	if compare != nil {
		slices.SortStableFunc(filtered, compare)
	}
	return filtered
}

// And combines predicates; nil entries are ignored.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(item T) bool {
		for _, p := range preds {
			if p != nil && !p(item) {
				return false
			}
		}
		return true
	}
}
