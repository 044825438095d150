package listing

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type animal struct {
	Tag    string
	Type   string
	Health string
	Weight float64
	Price  decimal.Decimal
	Seen   string
}

var animalSchema = NewSchema(SortSpec{Key: "tag", Direction: Asc},
	Field[animal]{Name: "tag", Get: func(a animal) Value { return Text(a.Tag) }, Searchable: true, Sortable: true},
	Field[animal]{Name: "type", Get: func(a animal) Value { return Text(a.Type) }, Filterable: true, Sortable: true},
	Field[animal]{Name: "healthStatus", Get: func(a animal) Value { return Text(a.Health) }, Filterable: true},
	Field[animal]{Name: "weight", Get: func(a animal) Value { return Number(a.Weight) }, Sortable: true},
	Field[animal]{Name: "price", Get: func(a animal) Value { return Decimal(a.Price) }, Sortable: true},
	Field[animal]{Name: "lastSeen", Get: func(a animal) Value { return OptionalText(a.Seen) }, Sortable: true},
)

func herd() []animal {
	return []animal{
		{Tag: "COW-001", Type: "Cow", Health: "Healthy", Weight: 650, Price: decimal.RequireFromString("1200.50"), Seen: "2024-10-01"},
		{Tag: "SHEEP-002", Type: "Sheep", Health: "Sick", Weight: 120, Price: decimal.RequireFromString("300"), Seen: ""},
		{Tag: "PIG-003", Type: "Pig", Health: "Quarantined", Weight: 220, Price: decimal.RequireFromString("450.75"), Seen: "2024-10-05"},
	}
}

func tags(items []animal) []string {
	out := make([]string, 0, len(items))
	for _, a := range items {
		out = append(out, a.Tag)
	}
	return out
}

func TestApply_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	res, err := animalSchema.Apply(herd(), Query{Search: "cow"})
	require.NoError(t, err)
	assert.Equal(t, []string{"COW-001"}, tags(res.Items))
	assert.Equal(t, 1, res.Total)
}

func TestApply_SearchMatchingNothing(t *testing.T) {
	res, err := animalSchema.Apply(herd(), Query{Search: "goat"})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)
}

func TestApply_EmptyDataset(t *testing.T) {
	res, err := animalSchema.Apply(nil, Query{Search: "x", Sort: SortSpec{Key: "weight", Direction: Desc}})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Zero(t, res.Total)
}

func TestApply_FiltersAndSentinels(t *testing.T) {
	res, err := animalSchema.Apply(herd(), Query{Filters: map[string]string{"type": "Pig", "healthStatus": "All"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"PIG-003"}, tags(res.Items))

	res, err = animalSchema.Apply(herd(), Query{Filters: map[string]string{"type": "all", "HEALTHSTATUS": "Sick"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"SHEEP-002"}, tags(res.Items))

	res, err = animalSchema.Apply(herd(), Query{Filters: map[string]string{"type": "All Categories"}})
	require.NoError(t, err)
	assert.Len(t, res.Items, 3)
}

func TestApply_UnknownFields(t *testing.T) {
	_, err := animalSchema.Apply(herd(), Query{Filters: map[string]string{"color": "Brown"}})
	assert.True(t, errors.Is(err, ErrUnknownField))

	_, err = animalSchema.Apply(herd(), Query{Filters: map[string]string{"weight": "120"}})
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = animalSchema.Apply(herd(), Query{Sort: SortSpec{Key: "healthStatus"}})
	assert.ErrorIs(t, err, ErrUnknownField)

	// Sentinel filters never touch the schema.
	_, err = animalSchema.Apply(herd(), Query{Filters: map[string]string{"color": "all"}})
	assert.NoError(t, err)
}

func TestApply_SortNumericAndDecimal(t *testing.T) {
	res, err := animalSchema.Apply(herd(), Query{Sort: SortSpec{Key: "weight", Direction: Desc}})
	require.NoError(t, err)
	assert.Equal(t, []string{"COW-001", "PIG-003", "SHEEP-002"}, tags(res.Items))

	res, err = animalSchema.Apply(herd(), Query{Sort: SortSpec{Key: "price", Direction: Asc}})
	require.NoError(t, err)
	assert.Equal(t, []string{"SHEEP-002", "PIG-003", "COW-001"}, tags(res.Items))
}

func TestApply_MissingValuesSortLastInBothDirections(t *testing.T) {
	for _, dir := range []Direction{Asc, Desc} {
		res, err := animalSchema.Apply(herd(), Query{Sort: SortSpec{Key: "lastSeen", Direction: dir}})
		require.NoError(t, err)
		assert.Equal(t, "SHEEP-002", res.Items[len(res.Items)-1].Tag, "direction %s", dir)
	}
}

func TestApply_Pagination(t *testing.T) {
	res, err := animalSchema.Apply(herd(), Query{Sort: SortSpec{Key: "tag"}, Page: &Page{Limit: 2, Offset: 2}})
	require.NoError(t, err)
	assert.Equal(t, []string{"SHEEP-002"}, tags(res.Items))
	assert.Equal(t, 3, res.Total)
	require.NotNil(t, res.Page)
	assert.Equal(t, Page{Limit: 2, Offset: 2}, *res.Page)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	input := herd()
	before := herd()

	_, err := animalSchema.Apply(input, Query{Search: "-00", Sort: SortSpec{Key: "weight", Direction: Desc}})
	require.NoError(t, err)

	if diff := cmp.Diff(before, input, cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
}

func TestApply_Properties(t *testing.T) {
	queries := []Query{
		{},
		{Search: "o"},
		{Filters: map[string]string{"type": "Sheep"}},
		{Search: "-", Sort: SortSpec{Key: "weight", Direction: Asc}},
		{Sort: SortSpec{Key: "type", Direction: Desc}},
		{Sort: SortSpec{Key: "lastSeen", Direction: Asc}},
	}

	for _, q := range queries {
		keep, err := animalSchema.Predicate(q)
		require.NoError(t, err)

		first, err := animalSchema.Apply(herd(), q)
		require.NoError(t, err)

		assert.LessOrEqual(t, len(first.Items), len(herd()))
		for _, item := range first.Items {
			if keep != nil {
				assert.True(t, keep(item), "item %s violates predicate", item.Tag)
			}
		}

		if !q.Sort.IsZero() {
			compare, err := animalSchema.Comparator(q.Sort)
			require.NoError(t, err)
			for i := 1; i < len(first.Items); i++ {
				assert.LessOrEqual(t, compare(first.Items[i-1], first.Items[i]), 0, "not monotonic for %+v", q.Sort)
			}
		}

		second, err := animalSchema.Apply(first.Items, q)
		require.NoError(t, err)
		assert.Equal(t, tags(first.Items), tags(second.Items), "transform is not idempotent for %+v", q)
	}
}

func TestSchemaDefaults(t *testing.T) {
	assert.Equal(t, SortSpec{Key: "tag", Direction: Asc}, animalSchema.DefaultSort())
	assert.Equal(t, Query{Sort: SortSpec{Key: "tag", Direction: Asc}}, animalSchema.DefaultQuery())
	assert.Equal(t, []string{"tag", "type", "healthStatus", "weight", "price", "lastSeen"}, animalSchema.Names())

	f, ok := animalSchema.Field("HealthStatus")
	require.True(t, ok)
	assert.Equal(t, "healthStatus", f.Name)
}

func TestSchemaCells(t *testing.T) {
	h := herd()
	assert.Equal(t, []string{"SHEEP-002", "Sheep", "Sick", "120", "300", ""}, animalSchema.Cells(h[1]))
	assert.Equal(t, []string{"COW-001", "Cow", "Healthy", "650", "1200.5", "2024-10-01"}, animalSchema.Cells(h[0]))
}
