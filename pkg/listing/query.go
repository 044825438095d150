package listing

import (
	"maps"
	"strings"
)

// Query is the UI state driving one list: free text search, categorical
// filters, sort order and an optional page window.
type Query struct {
	Search  string            `json:"search"`
	Filters map[string]string `json:"filters,omitempty"`
	Sort    SortSpec          `json:"sort"`
	Page    *Page             `json:"page,omitempty"`
}

// Clone returns a deep copy of q.
func (q Query) Clone() Query {
	out := q
	out.Filters = maps.Clone(q.Filters)
	if q.Page != nil {
		p := *q.Page
		out.Page = &p
	}
	return out
}

// Update is a batch of UI events. Nil fields leave the query unchanged.
type Update struct {
	Search  *string
	Filters map[string]string
	Sort    *SortSpec
	// Direction changes the direction of the current sort key. It is ignored
	// when no key is set.
	Direction *Direction
	Page      *Page
	// GoTo selects a 1-based page, keeping the current limit unless Page
	// sets one.
	GoTo *int
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u.Search == nil && len(u.Filters) == 0 && u.Sort == nil && u.Direction == nil && u.Page == nil && u.GoTo == nil
}

// With returns q with the update applied.
func (q Query) With(u Update) Query {
	out := q.Clone()
	if u.Search != nil {
		out.Search = *u.Search
	}
	if len(u.Filters) > 0 {
		if out.Filters == nil {
			out.Filters = make(map[string]string, len(u.Filters))
		}
		for k, v := range u.Filters {
			out.Filters[k] = v
		}
	}
	if u.Sort != nil {
		out.Sort = *u.Sort
	}
	if u.Direction != nil && out.Sort.Key != "" {
		out.Sort.Direction = *u.Direction
	}
	if u.Page != nil {
		p := u.Page.Normalize()
		out.Page = &p
	}
	if u.GoTo != nil {
		limit := DefaultLimit
		if out.Page != nil {
			limit = out.Page.Limit
		}
		p := PageNumber(*u.GoTo, limit)
		out.Page = &p
	}
	return out
}

// IsAll reports whether a filter value is the "show everything" sentinel:
// empty, "all" in any case, or a label such as "All Categories".
func IsAll(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	return v == "" || v == "all" || strings.HasPrefix(v, "all ")
}
