package listing

import (
	"fmt"
	"strings"
)

// Direction is the order applied to a sort key.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "asc"/"desc" in any case; "" means ascending.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(Asc):
		return Asc, nil
	case string(Desc):
		return Desc, nil
	default:
		return "", fmt.Errorf("invalid sort direction %q", value)
	}
}

// SortSpec names the field a list is ordered by.
type SortSpec struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// IsZero reports whether no sort key is set.
func (s SortSpec) IsZero() bool { return s.Key == "" }

// Toggle returns the spec after a click on the column header for key:
// clicking the current ascending column flips it to descending, anything else
// sorts key ascending. Keys compare case-insensitively.
func (s SortSpec) Toggle(key string) SortSpec {
	if strings.EqualFold(s.Key, key) && s.Direction != Desc {
		return SortSpec{Key: key, Direction: Desc}
	}
	return SortSpec{Key: key, Direction: Asc}
}
