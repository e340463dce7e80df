package query

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowIsImmutable(t *testing.T) {
	values := map[string]string{"a": "1"}
	row := NewRow(values)
	values["a"] = "changed"
	values["b"] = "new"

	c, ok := row.Get("a")
	require.True(t, ok)
	assert.Equal(t, Text("1"), c)
	assert.False(t, row.Has("b"))

	extra := []string{"x", "y"}
	row = RowFromCells(map[string]Cell{"a": Text("1")}, extra)
	extra[0] = "changed"
	got := row.Extra()
	assert.Equal(t, []string{"x", "y"}, got)
	got[1] = "changed"
	assert.Equal(t, []string{"x", "y"}, row.Extra())
}

func TestRowAccessors(t *testing.T) {
	row := RowFromCells(map[string]Cell{
		"price": Text("12.5"),
		"brand": Text("apple"),
		"note":  Null,
	}, nil)

	assert.Equal(t, []string{"brand", "note", "price"}, row.Keys())
	assert.Equal(t, 3, row.Len())
	assert.Nil(t, row.Extra())

	v, ok := row.Numeric("price")
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)

	_, ok = row.Numeric("brand")
	assert.False(t, ok)
	_, ok = row.Numeric("note")
	assert.False(t, ok)
	_, ok = row.Numeric("absent")
	assert.False(t, ok)
}

func TestRowEqual(t *testing.T) {
	a := RowFromCells(map[string]Cell{"x": Text("1")}, []string{"e"})
	b := RowFromCells(map[string]Cell{"x": Text("1")}, []string{"e"})
	c := RowFromCells(map[string]Cell{"x": Text("1")}, nil)
	d := RowFromCells(map[string]Cell{"x": Null}, []string{"e"})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

func TestDataset(t *testing.T) {
	columns := []string{"b", "a"}
	ds := NewDataset(columns, []Row{
		NewRow(map[string]string{"a": "1", "b": "2"}),
		NewRow(map[string]string{"a": "3"}),
	})
	columns[0] = "changed"

	assert.Equal(t, []string{"b", "a"}, ds.Columns(), "header order is preserved")
	assert.True(t, ds.HasColumn("a"))
	assert.False(t, ds.HasColumn("c"))
	assert.Equal(t, 2, ds.Len())
	assert.False(t, ds.Row(1).Has("b"))
	assert.Equal(t, []string{"a", "b"}, ds.sortedColumns())
}

func TestDatasetTake(t *testing.T) {
	ds := productsDataset(t)

	sel := roaring.BitmapOf(3, 0, 4)
	taken := ds.Take(sel)
	assert.Equal(t, []string{"iphone 15 pro", "iphone 14", "galaxy a54"}, column(taken, "name"))
	assert.Equal(t, ds.Columns(), taken.Columns())

	assert.Equal(t, 0, ds.Take(roaring.New()).Len())
}

func TestDatasetLimit(t *testing.T) {
	ds := productsDataset(t)

	assert.Equal(t, 5, ds.Limit(0).Len())
	assert.Equal(t, 5, ds.Limit(-1).Len())
	assert.Equal(t, 5, ds.Limit(10).Len())
	assert.Equal(t, []string{"iphone 15 pro", "galaxy s24 ultra"}, column(ds.Limit(2), "name"))
	assert.Equal(t, 5, ds.Len(), "input is unchanged")
}
