package entity

import (
	"github.com/sangkips/boumia-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineItem is one product entry in the cart.
type LineItem struct {
	ProductID     int64             `json:"product_id"`
	ProductCode   string            `json:"product_code"`
	ProductName   string            `json:"product_name"`
	Color         string            `json:"color,omitempty"`
	Quantity      int               `json:"quantity"`
	UnitPrice     decimal.Decimal   `json:"unit_price"`
	PriceEditable bool              `json:"price_editable"`
	DiscountValue decimal.Decimal   `json:"discount_value"`
	DiscountKind  enum.DiscountKind `json:"discount_kind"`
	Comment       string            `json:"comment"`
}

// Gross is unit price times quantity, before any discount.
func (li LineItem) Gross() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Total is the line amount after its own discount.
func (li LineItem) Total() decimal.Decimal {
	return LineTotal(li.UnitPrice, li.Quantity, li.DiscountValue, li.DiscountKind)
}

// ApplyDiscount reduces amount by a fixed value or by value percent of
// amount. The result is not clamped and can go negative.
func ApplyDiscount(amount, value decimal.Decimal, kind enum.DiscountKind) decimal.Decimal {
	if kind == enum.DiscountPercent {
		return amount.Sub(amount.Mul(value).Div(hundred))
	}
	return amount.Sub(value)
}

// LineTotal is the single line pricing rule shared by the cart and every
// receipt renderer. A fixed discount is taken once per line, not per unit.
func LineTotal(unitPrice decimal.Decimal, quantity int, discount decimal.Decimal, kind enum.DiscountKind) decimal.Decimal {
	gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return ApplyDiscount(gross, discount, kind)
}

// Cart holds the line items of the sale being built, at most one per
// product, in the order they were first added.
type Cart struct {
	items              []*LineItem
	orderDiscountValue decimal.Decimal
	orderDiscountKind  enum.DiscountKind
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{orderDiscountKind: enum.DiscountFixed}
}

func (c *Cart) find(productID int64) (int, *LineItem) {
	for i, it := range c.items {
		if it.ProductID == productID {
			return i, it
		}
	}
	return -1, nil
}

// AddItem increments the quantity of an existing line for the product or
// appends a new line at the product's current price.
func (c *Cart) AddItem(p Product) LineItem {
	if _, it := c.find(p.ID); it != nil {
		it.Quantity++
		return *it
	}
	it := &LineItem{
		ProductID:     p.ID,
		ProductCode:   p.Code,
		ProductName:   p.Name,
		Color:         p.Color,
		Quantity:      1,
		UnitPrice:     p.Price,
		PriceEditable: p.PriceEditable,
		DiscountValue: decimal.Zero,
		DiscountKind:  enum.DiscountFixed,
	}
	c.items = append(c.items, it)
	return *it
}

// RemoveItem deletes the line for productID. Removing an absent product is
// not an error; the result reports whether anything was removed.
func (c *Cart) RemoveItem(productID int64) bool {
	i, _ := c.find(productID)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

// Apply runs one update against the line for productID and reports whether
// the cart changed. Setting the quantity to zero removes the line.
func (c *Cart) Apply(productID int64, u ItemUpdate) bool {
	_, it := c.find(productID)
	if it == nil || u == nil {
		return false
	}
	if q, ok := u.(SetQuantity); ok && q.Quantity == 0 {
		return c.RemoveItem(productID)
	}
	return u.apply(it)
}

// Item returns a copy of the line for productID.
func (c *Cart) Item(productID int64) (LineItem, bool) {
	_, it := c.find(productID)
	if it == nil {
		return LineItem{}, false
	}
	return *it, true
}

// Items returns copies of the lines in cart order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	for i, it := range c.items {
		out[i] = *it
	}
	return out
}

// Len is the number of distinct products in the cart.
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// SetOrderDiscount sets the discount applied to the discounted subtotal.
// A negative value or unknown kind leaves the discount unchanged.
func (c *Cart) SetOrderDiscount(value decimal.Decimal, kind enum.DiscountKind) bool {
	if value.IsNegative() || !kind.Valid() {
		return false
	}
	c.orderDiscountValue = value
	c.orderDiscountKind = kind
	return true
}

// OrderDiscount returns the order-level discount value and kind.
func (c *Cart) OrderDiscount() (decimal.Decimal, enum.DiscountKind) {
	return c.orderDiscountValue, c.orderDiscountKind
}

// Subtotal is the sum of the line totals, after line discounts.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.items {
		sum = sum.Add(it.Total())
	}
	return sum
}

// GrandTotal applies the order discount to the discounted subtotal.
func (c *Cart) GrandTotal() decimal.Decimal {
	return ApplyDiscount(c.Subtotal(), c.orderDiscountValue, c.orderDiscountKind)
}

// Clear empties the cart and resets the order discount to zero, fixed.
func (c *Cart) Clear() {
	c.items = nil
	c.orderDiscountValue = decimal.Zero
	c.orderDiscountKind = enum.DiscountFixed
}
