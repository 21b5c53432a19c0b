package cart

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftcart/internal/models"
)

func milk(qty int) models.LineItem {
	return models.LineItem{
		ProductID: "1",
		Name:      "Milk",
		UnitPrice: decimal.NewFromInt(40),
		VendorID:  "v1",
		Quantity:  qty,
	}
}

func bread(qty int) models.LineItem {
	return models.LineItem{
		ProductID: "2",
		Name:      "Bread",
		UnitPrice: decimal.RequireFromString("35.50"),
		VendorID:  "v2",
		Quantity:  qty,
	}
}

func TestAddOrMerge(t *testing.T) {
	t.Run("inserts a new line", func(t *testing.T) {
		l := New()
		require.NoError(t, l.AddOrMerge(milk(2)))

		items := l.Snapshot()
		require.Len(t, items, 1)
		assert.Equal(t, milk(2), items[0])
	})

	t.Run("repeated adds accumulate on one line", func(t *testing.T) {
		l := New()
		amounts := []int{1, 3, 2, 5}
		for _, n := range amounts {
			require.NoError(t, l.AddOrMerge(milk(n)))
		}

		items := l.Snapshot()
		require.Len(t, items, 1)
		assert.Equal(t, 11, items[0].Quantity)
	})

	t.Run("merge keeps the first price and name", func(t *testing.T) {
		l := New(milk(1))
		changed := milk(2)
		changed.Name = "Oat milk"
		changed.UnitPrice = decimal.NewFromInt(99)
		require.NoError(t, l.AddOrMerge(changed))

		item, ok := l.Get("1")
		require.True(t, ok)
		assert.Equal(t, "Milk", item.Name)
		assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(40)))
		assert.Equal(t, 3, item.Quantity)
	})

	t.Run("zero on an existing line is a no-op merge", func(t *testing.T) {
		l := New(milk(4))
		require.NoError(t, l.AddOrMerge(milk(0)))

		item, _ := l.Get("1")
		assert.Equal(t, 4, item.Quantity)
	})

	t.Run("rejects a new line below one", func(t *testing.T) {
		l := New()
		assert.ErrorIs(t, l.AddOrMerge(milk(0)), ErrInvalidQuantity)
		assert.ErrorIs(t, l.AddOrMerge(milk(-1)), ErrInvalidQuantity)
		assert.True(t, l.IsEmpty())
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		l := New()
		require.NoError(t, l.AddOrMerge(bread(1)))
		require.NoError(t, l.AddOrMerge(milk(1)))
		require.NoError(t, l.AddOrMerge(bread(1)))

		items := l.Snapshot()
		require.Len(t, items, 2)
		assert.Equal(t, models.ID("2"), items[0].ProductID)
		assert.Equal(t, models.ID("1"), items[1].ProductID)
	})
}

func TestChangeQuantity(t *testing.T) {
	t.Run("absent product is a no-op", func(t *testing.T) {
		l := New(milk(1))
		changed, err := l.ChangeQuantity("404", 1)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, []models.LineItem{milk(1)}, l.Snapshot())
	})

	t.Run("stays above zero", func(t *testing.T) {
		l := New(milk(2), bread(1))
		changed, err := l.ChangeQuantity("1", 3)
		require.NoError(t, err)
		assert.True(t, changed)

		item, ok := l.Get("1")
		require.True(t, ok)
		assert.Equal(t, 5, item.Quantity)

		other, _ := l.Get("2")
		assert.Equal(t, bread(1), other)
	})

	t.Run("reaching zero removes the line", func(t *testing.T) {
		l := New(milk(2))
		changed, err := l.ChangeQuantity("1", -2)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, l.IsEmpty())
	})

	t.Run("going below zero removes instead of clamping", func(t *testing.T) {
		l := New(milk(1), bread(3))
		changed, err := l.ChangeQuantity("2", -10)
		require.NoError(t, err)
		assert.True(t, changed)

		_, ok := l.Get("2")
		assert.False(t, ok)
		assert.Equal(t, []models.LineItem{milk(1)}, l.Snapshot())
	})
}

func TestQuantityOverflow(t *testing.T) {
	t.Run("merge past MaxInt is refused", func(t *testing.T) {
		l := New(milk(math.MaxInt))
		assert.ErrorIs(t, l.AddOrMerge(milk(1)), ErrQuantityOverflow)

		item, ok := l.Get("1")
		require.True(t, ok)
		assert.Equal(t, math.MaxInt, item.Quantity)
	})

	t.Run("increment past MaxInt keeps the line", func(t *testing.T) {
		l := New(milk(math.MaxInt))
		changed, err := l.ChangeQuantity("1", 1)
		assert.ErrorIs(t, err, ErrQuantityOverflow)
		assert.False(t, changed)

		item, ok := l.Get("1")
		require.True(t, ok)
		assert.Equal(t, math.MaxInt, item.Quantity)
	})

	t.Run("MinInt delta removes the line", func(t *testing.T) {
		l := New(milk(3))
		changed, err := l.ChangeQuantity("1", math.MinInt)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, l.IsEmpty())
	})

	t.Run("hydrated duplicates saturate", func(t *testing.T) {
		l := New(milk(math.MaxInt), milk(5))
		item, _ := l.Get("1")
		assert.Equal(t, math.MaxInt, item.Quantity)
	})
}

func TestRemoveAndClear(t *testing.T) {
	l := New(milk(1), bread(2))

	assert.False(t, l.Remove("404"))
	assert.True(t, l.Remove("1"))
	assert.Equal(t, []models.LineItem{bread(2)}, l.Snapshot())

	l.Clear()
	assert.True(t, l.IsEmpty())
	assert.Empty(t, l.Snapshot())
}

func TestNew_SanitizesHydratedItems(t *testing.T) {
	l := New(milk(2), bread(0), milk(1), bread(-3))

	items := l.Snapshot()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestSnapshot_IsACopy(t *testing.T) {
	l := New(milk(1))
	items := l.Snapshot()
	items[0].Quantity = 99

	item, _ := l.Get("1")
	assert.Equal(t, 1, item.Quantity)
}
