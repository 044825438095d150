package listing

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ErrUnknownField is returned when a query filters or sorts on a field the
// schema does not expose for that purpose.
var ErrUnknownField = errors.New("unknown field")

// Field exposes one attribute of T to the pipeline.
type Field[T any] struct {
	Name       string
	Get        func(T) Value
	Searchable bool
	Filterable bool
	Sortable   bool
}

// Schema describes how a record type is searched, filtered and sorted.
type Schema[T any] struct {
	fields      map[string]Field[T]
	names       []string
	defaultSort SortSpec
}

// NewSchema registers fields under their case-insensitive names.
func NewSchema[T any](defaultSort SortSpec, fields ...Field[T]) *Schema[T] {
	s := &Schema[T]{
		fields:      make(map[string]Field[T], len(fields)),
		defaultSort: defaultSort,
	}
	for _, f := range fields {
		key := strings.ToLower(f.Name)
		if _, dup := s.fields[key]; !dup {
			s.names = append(s.names, f.Name)
		}
		s.fields[key] = f
	}
	return s
}

// DefaultSort is the order used before the user clicks any column.
func (s *Schema[T]) DefaultSort() SortSpec { return s.defaultSort }

// DefaultQuery is the initial state of a list using this schema.
func (s *Schema[T]) DefaultQuery() Query { return Query{Sort: s.defaultSort} }

// Field looks a field up by name, ignoring case.
func (s *Schema[T]) Field(name string) (Field[T], bool) {
	f, ok := s.fields[strings.ToLower(name)]
	return f, ok
}

// Names lists the registered field names in registration order.
func (s *Schema[T]) Names() []string {
	return append([]string(nil), s.names...)
}

// Cells renders every field of item as text, in the order of Names.
func (s *Schema[T]) Cells(item T) []string {
	out := make([]string, len(s.names))
	for i, name := range s.names {
		out[i] = s.fields[strings.ToLower(name)].Get(item).String()
	}
	return out
}

// Predicate builds the search and filter predicate for q.
func (s *Schema[T]) Predicate(q Query) (Predicate[T], error) {
	var preds []Predicate[T]

	if q.Search != "" {
		var searchable []Field[T]
		for _, name := range s.names {
			if f := s.fields[strings.ToLower(name)]; f.Searchable {
				searchable = append(searchable, f)
			}
		}
		needle := cases.Fold().String(q.Search)
		preds = append(preds, func(item T) bool {
			for _, f := range searchable {
				if strings.Contains(cases.Fold().String(f.Get(item).String()), needle) {
					return true
				}
			}
			return false
		})
	}

	for name, want := range q.Filters {
		if IsAll(want) {
			continue
		}
		f, ok := s.Field(name)
		if !ok || !f.Filterable {
			return nil, fmt.Errorf("%w: cannot filter on %q", ErrUnknownField, name)
		}
		preds = append(preds, func(item T) bool {
			v := f.Get(item)
			return !v.IsMissing() && v.String() == want
		})
	}

	if len(preds) == 0 {
		return nil, nil
	}
	return And(preds...), nil
}

// Comparator builds the ordering for spec. Missing values always sort last,
// whatever the direction. An empty key yields a nil comparator (input order).
func (s *Schema[T]) Comparator(spec SortSpec) (Comparator[T], error) {
	if spec.IsZero() {
		return nil, nil
	}
	f, ok := s.Field(spec.Key)
	if !ok || !f.Sortable {
		return nil, fmt.Errorf("%w: cannot sort on %q", ErrUnknownField, spec.Key)
	}
	desc := spec.Direction == Desc

	return func(a, b T) int {
		va, vb := f.Get(a), f.Get(b)
		switch {
		case va.IsMissing() && vb.IsMissing():
			return 0
		case va.IsMissing():
			return 1
		case vb.IsMissing():
			return -1
		}
		c := Compare(va, vb)
		if desc {
			return -c
		}
		return c
	}, nil
}

// Validate checks every field referenced by q.
func (s *Schema[T]) Validate(q Query) error {
	if _, err := s.Predicate(q); err != nil {
		return err
	}
	_, err := s.Comparator(q.Sort)
	return err
}

// Result is a transformed list. Total counts matches before pagination.
type Result[T any] struct {
	Items []T   `json:"items"`
	Total int   `json:"total"`
	Page  *Page `json:"page,omitempty"`
}

// Apply runs the whole pipeline: filter, sort, then paginate when q.Page is
// set.
func (s *Schema[T]) Apply(items []T, q Query) (Result[T], error) {
	keep, err := s.Predicate(q)
	if err != nil {
		return Result[T]{}, err
	}
	compare, err := s.Comparator(q.Sort)
	if err != nil {
		return Result[T]{}, err
	}

	matched := Transform(items, keep, compare)
	res := Result[T]{Items: matched, Total: len(matched)}
	if q.Page != nil {
		p := q.Page.Normalize()
		res.Items = Paginate(matched, p)
		res.Page = &p
	}
	return res, nil
}
