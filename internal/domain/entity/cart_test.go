package entity

import (
	"testing"

	"github.com/sangkips/boumia-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func product(id int64, price string) Product {
	return Product{ID: id, Code: "P", Name: "Product", Price: dec(price)}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "expected %s, got %s", want, got)
}

func TestAddItemTwiceIncrementsQuantity(t *testing.T) {
	c := NewCart()
	c.AddItem(product(1, "50"))
	c.AddItem(product(1, "50"))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assertDecimal(t, "100", c.Subtotal())
}

func TestAddItemDefaults(t *testing.T) {
	c := NewCart()
	li := c.AddItem(Product{ID: 9, Name: "Tea", Price: dec("12.5"), PriceEditable: true, Color: "#ff0"})

	assert.Equal(t, 1, li.Quantity)
	assertDecimal(t, "12.5", li.UnitPrice)
	assertDecimal(t, "0", li.DiscountValue)
	assert.Equal(t, enum.DiscountFixed, li.DiscountKind)
	assert.True(t, li.PriceEditable)
	assert.Equal(t, "#ff0", li.Color)
}

func TestCartNeverHoldsDuplicateProducts(t *testing.T) {
	c := NewCart()
	ops := []struct {
		add bool
		id  int64
	}{
		{true, 1}, {true, 2}, {true, 1}, {false, 2}, {true, 2}, {true, 3},
		{false, 1}, {true, 1}, {true, 1}, {false, 9}, {true, 3},
	}
	for _, op := range ops {
		if op.add {
			c.AddItem(product(op.id, "1"))
		} else {
			c.RemoveItem(op.id)
		}
		seen := map[int64]bool{}
		for _, it := range c.Items() {
			require.Falsef(t, seen[it.ProductID], "product %d appears twice", it.ProductID)
			seen[it.ProductID] = true
		}
	}
	assert.Equal(t, 3, c.Len())
}

func TestRemoveAbsentItemIsNoop(t *testing.T) {
	c := NewCart()
	c.AddItem(product(1, "5"))

	assert.False(t, c.RemoveItem(42))
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.RemoveItem(1))
	assert.True(t, c.IsEmpty())
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	c := NewCart()
	c.AddItem(product(1, "5"))

	assert.True(t, c.Apply(1, SetQuantity{Quantity: 0}))
	assert.True(t, c.IsEmpty())
}

func TestInvalidUpdatesLeaveCartUnchanged(t *testing.T) {
	c := NewCart()
	c.AddItem(product(1, "5"))
	before := c.Items()

	assert.False(t, c.Apply(1, SetQuantity{Quantity: -3}))
	assert.False(t, c.Apply(1, SetPrice{Price: dec("-1")}))
	assert.False(t, c.Apply(1, SetDiscountValue{Value: dec("-2")}))
	assert.False(t, c.Apply(1, SetDiscountKind{Kind: enum.DiscountKind(7)}))
	assert.False(t, c.Apply(2, SetQuantity{Quantity: 4}))
	assert.False(t, c.Apply(1, nil))

	assert.Equal(t, before, c.Items())
}

func TestUpdatesApply(t *testing.T) {
	c := NewCart()
	c.AddItem(product(1, "10"))

	require.True(t, c.Apply(1, SetQuantity{Quantity: 3}))
	require.True(t, c.Apply(1, SetPrice{Price: dec("20")}))
	require.True(t, c.Apply(1, SetDiscountValue{Value: dec("10")}))
	require.True(t, c.Apply(1, SetDiscountKind{Kind: enum.DiscountPercent}))
	require.True(t, c.Apply(1, SetComment{Comment: "gift wrap"}))

	it, ok := c.Item(1)
	require.True(t, ok)
	assert.Equal(t, 3, it.Quantity)
	assert.Equal(t, "gift wrap", it.Comment)
	assertDecimal(t, "54", it.Total())
}

func TestPriceSetIgnoresEditableFlag(t *testing.T) {
	c := NewCart()
	c.AddItem(Product{ID: 1, Price: dec("10"), PriceEditable: false})

	assert.True(t, c.Apply(1, SetPrice{Price: dec("8")}))
	it, _ := c.Item(1)
	assertDecimal(t, "8", it.UnitPrice)
}

func TestLineTotalFixedDiscountIsMonotonic(t *testing.T) {
	prev := LineTotal(dec("15"), 4, decimal.Zero, enum.DiscountFixed)
	for _, d := range []string{"0.5", "1", "7.25", "60", "75"} {
		cur := LineTotal(dec("15"), 4, dec(d), enum.DiscountFixed)
		assert.True(t, cur.LessThanOrEqual(prev), "discount %s raised the total", d)
		prev = cur
	}
}

func TestLineTotalFixedDiscountTakenOncePerLine(t *testing.T) {
	assertDecimal(t, "55", LineTotal(dec("20"), 3, dec("5"), enum.DiscountFixed))
}

func TestLineTotalFullPercentIsZero(t *testing.T) {
	assert.True(t, LineTotal(dec("19.99"), 7, dec("100"), enum.DiscountPercent).IsZero())
}

func TestSubtotalIsSumOfLineTotalsAndStable(t *testing.T) {
	c := NewCart()
	c.AddItem(product(1, "10"))
	c.AddItem(product(2, "3.3"))
	c.Apply(2, SetQuantity{Quantity: 3})
	c.Apply(2, SetDiscountValue{Value: dec("10")})
	c.Apply(2, SetDiscountKind{Kind: enum.DiscountPercent})

	sum := decimal.Zero
	for _, it := range c.Items() {
		sum = sum.Add(it.Total())
	}
	first := c.Subtotal()
	assert.True(t, sum.Equal(first))
	assert.True(t, first.Equal(c.Subtotal()))
	assertDecimal(t, "18.91", first)
}

func TestOrderDiscountAppliesToDiscountedSubtotal(t *testing.T) {
	c := NewCart()
	c.AddItem(product(1, "100"))
	c.Apply(1, SetDiscountValue{Value: dec("10")})
	require.True(t, c.SetOrderDiscount(dec("10"), enum.DiscountPercent))

	assertDecimal(t, "90", c.Subtotal())
	assertDecimal(t, "81", c.GrandTotal())
}

func TestFixedOrderDiscount(t *testing.T) {
	c := NewCart()
	c.AddItem(product(1, "20"))
	c.Apply(1, SetQuantity{Quantity: 3})
	c.SetOrderDiscount(dec("5"), enum.DiscountFixed)

	assertDecimal(t, "60", c.Subtotal())
	assertDecimal(t, "55", c.GrandTotal())
}

func TestTotalsAreNotClampedAtZero(t *testing.T) {
	c := NewCart()
	c.AddItem(product(1, "10"))
	c.Apply(1, SetDiscountValue{Value: dec("25")})
	assertDecimal(t, "-15", c.Subtotal())

	c.Apply(1, SetDiscountValue{Value: dec("0")})
	c.SetOrderDiscount(dec("150"), enum.DiscountPercent)
	assertDecimal(t, "-5", c.GrandTotal())
}

func TestSetOrderDiscountRejectsNegative(t *testing.T) {
	c := NewCart()
	c.SetOrderDiscount(dec("3"), enum.DiscountFixed)

	assert.False(t, c.SetOrderDiscount(dec("-1"), enum.DiscountPercent))
	v, k := c.OrderDiscount()
	assertDecimal(t, "3", v)
	assert.Equal(t, enum.DiscountFixed, k)
}

func TestClearResetsEverything(t *testing.T) {
	c := NewCart()
	c.AddItem(product(1, "10"))
	c.SetOrderDiscount(dec("10"), enum.DiscountPercent)

	c.Clear()

	assert.True(t, c.IsEmpty())
	v, k := c.OrderDiscount()
	assert.True(t, v.IsZero())
	assert.Equal(t, enum.DiscountFixed, k)
	assert.True(t, c.GrandTotal().IsZero())
}

func TestItemsReturnsCopies(t *testing.T) {
	c := NewCart()
	c.AddItem(product(1, "10"))

	items := c.Items()
	items[0].Quantity = 99

	it, _ := c.Item(1)
	assert.Equal(t, 1, it.Quantity)
}

func TestParseItemUpdate(t *testing.T) {
	u, err := ParseItemUpdate(OpSetQuantity, " 4 ")
	require.NoError(t, err)
	assert.Equal(t, SetQuantity{Quantity: 4}, u)

	u, err = ParseItemUpdate(OpSetDiscountKind, "percent")
	require.NoError(t, err)
	assert.Equal(t, SetDiscountKind{Kind: enum.DiscountPercent}, u)

	u, err = ParseItemUpdate(OpSetComment, " no onions ")
	require.NoError(t, err)
	assert.Equal(t, SetComment{Comment: " no onions "}, u)

	_, err = ParseItemUpdate(OpSetQuantity, "two")
	assert.ErrorIs(t, err, ErrUnparseableValue)
	_, err = ParseItemUpdate(OpSetPrice, "")
	assert.ErrorIs(t, err, ErrUnparseableValue)
	_, err = ParseItemUpdate("set_colour", "red")
	assert.ErrorIs(t, err, ErrUnknownUpdate)
}
