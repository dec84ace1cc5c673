package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Title     string `json:"title"`
	Footer    string `json:"footer,omitempty"`
}

// ReceiptCustomer is the customer block of a receipt.
type ReceiptCustomer struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// ReceiptLine represents a single line item on a receipt. Money fields are
// recomputed from price, quantity and discount, never copied from the order.
type ReceiptLine struct {
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Gross           decimal.Decimal `json:"gross"`
	HasDiscount     bool            `json:"has_discount"`
	DiscountDisplay string          `json:"discount_display"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	LineTotal       decimal.Decimal `json:"line_total"`
	Comment         string          `json:"comment,omitempty"`
}

// Receipt is a value object representing a printable receipt.
// It is NOT a database entity: it is composed from a persisted order at print time
// and every print channel renders this same document.
type Receipt struct {
	Header      ReceiptHeader   `json:"header"`
	OrderID     int64           `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	CashierName string          `json:"cashier_name"`
	Timestamp   time.Time       `json:"timestamp"`
	Customer    ReceiptCustomer `json:"customer"`
	Lines       []ReceiptLine   `json:"lines"`
	Currency    string          `json:"currency"`

	Subtotal             decimal.Decimal `json:"subtotal"`
	HasOrderDiscount     bool            `json:"has_order_discount"`
	OrderDiscountLabel   string          `json:"order_discount_label,omitempty"`
	OrderDiscountDisplay string          `json:"order_discount_display"`
	OrderDiscountAmount  decimal.Decimal `json:"order_discount_amount"`
	ComputedTotal        decimal.Decimal `json:"computed_total"`
	GrandTotal           decimal.Decimal `json:"grand_total"`
	// Consistent is false when the backend total differs from ComputedTotal.
	Consistent bool `json:"consistent"`
}

// IsEmpty reports whether the order carried no customer.
func (c ReceiptCustomer) IsEmpty() bool {
	return c.Name == "" && c.Code == "" && c.Phone == "" && c.Email == ""
}
