package listing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortSpecToggle(t *testing.T) {
	s := SortSpec{Key: "name", Direction: Asc}

	s = s.Toggle("name")
	assert.Equal(t, SortSpec{Key: "name", Direction: Desc}, s)

	s = s.Toggle("name")
	assert.Equal(t, SortSpec{Key: "name", Direction: Asc}, s)

	s = s.Toggle("name").Toggle("price")
	assert.Equal(t, SortSpec{Key: "price", Direction: Asc}, s)

	s = SortSpec{Key: "Name", Direction: Asc}.Toggle("name")
	assert.Equal(t, SortSpec{Key: "name", Direction: Desc}, s)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("DESC")
	require.NoError(t, err)
	assert.Equal(t, Desc, d)

	d, err = ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Asc, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestQueryWith(t *testing.T) {
	search := "tom"
	base := Query{Filters: map[string]string{"category": "Vegetables"}}

	next := base.With(Update{
		Search:  &search,
		Filters: map[string]string{"status": "Low Stock"},
		Sort:    &SortSpec{Key: "price", Direction: Desc},
		Page:    &Page{Limit: 500, Offset: -3},
	})

	assert.Equal(t, "tom", next.Search)
	assert.Equal(t, map[string]string{"category": "Vegetables", "status": "Low Stock"}, next.Filters)
	assert.Equal(t, SortSpec{Key: "price", Direction: Desc}, next.Sort)
	require.NotNil(t, next.Page)
	assert.Equal(t, Page{Limit: MaxLimit, Offset: 0}, *next.Page)

	assert.Equal(t, map[string]string{"category": "Vegetables"}, base.Filters, "base query must not change")
	assert.Equal(t, base, base.With(Update{}))
	assert.True(t, Update{}.IsEmpty())
}

func TestIsAll(t *testing.T) {
	for _, v := range []string{"", "all", "All", " ALL ", "All Categories"} {
		assert.True(t, IsAll(v), v)
	}
	for _, v := range []string{"Allium", "Cow", "Vegetables"} {
		assert.False(t, IsAll(v), v)
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{3, 4}, Paginate(items, Page{Limit: 2, Offset: 2}))
	assert.Equal(t, []int{5}, Paginate(items, Page{Limit: 2, Offset: 4}))
	assert.Empty(t, Paginate(items, Page{Limit: 2, Offset: 10}))
	assert.Equal(t, items, Paginate(items, Page{}))

	assert.Equal(t, Page{Limit: 10, Offset: 20}, PageNumber(3, 10))
	assert.Equal(t, Page{Limit: DefaultLimit, Offset: 0}, PageNumber(0, 0))
	assert.Equal(t, Page{Limit: MaxLimit, Offset: math.MaxInt}, PageNumber(math.MaxInt, 500))
}

func TestQueryWithGoTo(t *testing.T) {
	three := 3
	q := Query{Page: &Page{Limit: 10}}

	got := q.With(Update{GoTo: &three})
	require.NotNil(t, got.Page)
	assert.Equal(t, Page{Limit: 10, Offset: 20}, *got.Page)

	got = Query{}.With(Update{GoTo: &three, Page: &Page{Limit: 5}})
	assert.Equal(t, Page{Limit: 5, Offset: 10}, *got.Page)

	got = Query{}.With(Update{GoTo: &three})
	assert.Equal(t, Page{Limit: DefaultLimit, Offset: 2 * DefaultLimit}, *got.Page)
	assert.False(t, Update{GoTo: &three}.IsEmpty())

	far := math.MaxInt
	got = Query{}.With(Update{Page: &Page{Limit: 2}, GoTo: &far})
	assert.Equal(t, Page{Limit: 2, Offset: math.MaxInt}, *got.Page)
	res, err := animalSchema.Apply(herd(), got)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 3, res.Total)

	got = Query{}.With(Update{Page: &Page{Limit: 2}, GoTo: &three})
	res, err = animalSchema.Apply(herd(), got)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestQueryWithDirection(t *testing.T) {
	desc := Desc
	q := Query{Sort: SortSpec{Key: "weight", Direction: Asc}}

	got := q.With(Update{Direction: &desc})
	assert.Equal(t, SortSpec{Key: "weight", Direction: Desc}, got.Sort)
	assert.Equal(t, Asc, q.Sort.Direction)

	got = Query{}.With(Update{Direction: &desc})
	assert.True(t, got.Sort.IsZero())
	assert.False(t, Update{Direction: &desc}.IsEmpty())
}
