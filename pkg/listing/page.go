package listing

import "math"

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is a limit/offset window over a transformed list.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Normalize applies the default and maximum limit and clamps the offset.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// PageNumber converts a 1-based page number into a window. A page too far
// out to address saturates to an offset past any list.
func PageNumber(number, limit int) Page {
	p := Page{Limit: limit}.Normalize()
	switch {
	case number <= 1:
	case number-1 > math.MaxInt/p.Limit:
		p.Offset = math.MaxInt
	default:
		p.Offset = (number - 1) * p.Limit
	}
	return p
}

// Paginate returns the window of items selected by p. An offset past the end
// yields an empty slice.
func Paginate[T any](items []T, p Page) []T {
	p = p.Normalize()
	if p.Offset >= len(items) {
		return make([]T, 0)
	}
	end := min(p.Offset+p.Limit, len(items))
	out := make([]T, end-p.Offset)
	copy(out, items[p.Offset:end])
	return out
}
