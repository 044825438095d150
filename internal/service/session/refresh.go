package session

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mamadbah2/agritech/pkg/listing"
)

// ErrInvalidSetting is returned when a view setting such as a tab or a
// selected location has a value the view does not offer.
var ErrInvalidSetting = errors.New("invalid setting")

// Event is one batch of UI input for a view: list query changes plus named
// view settings.
type Event struct {
	Update   listing.Update
	Settings map[string]string
}

// Refresh applies u to the view query and recomputes the list. An update the
// schema rejects leaves the stored query untouched. Sort keys are stored
// under the field's registered name.
func Refresh[T any](st *State, schema *listing.Schema[T], items []T, u listing.Update) (listing.Result[T], error) {
	q := st.Query.With(u)
	if f, ok := schema.Field(q.Sort.Key); ok {
		q.Sort.Key = f.Name
	}
	res, err := schema.Apply(items, q)
	if err != nil {
		return listing.Result[T]{}, err
	}
	st.Query = q
	return res, nil
}

// ToggleSort applies a column header click to the view query.
func ToggleSort[T any](st *State, schema *listing.Schema[T], key string) error {
	if f, ok := schema.Field(key); ok {
		key = f.Name
	}
	q := st.Query.Clone()
	q.Sort = st.Query.Sort.Toggle(key)
	if err := schema.Validate(q); err != nil {
		return err
	}
	st.Query = q
	return nil
}

// ApplySetting stores a setting when value is one of allowed. An empty value
// is ignored.
func ApplySetting(st *State, name, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("%w: %s=%q", ErrInvalidSetting, name, value)
	}
	st.Settings[name] = value
	return nil
}
