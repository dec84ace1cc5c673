package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/boumia-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// OrderSubmissionItem is one line of an order payload.
type OrderSubmissionItem struct {
	ProductID    int64
	Quantity     int
	Price        decimal.Decimal
	Discount     decimal.Decimal
	DiscountType enum.DiscountCode
	Comment      string
}

// OrderSubmission is the payload POSTed to the backend. It is built from a
// cart snapshot and never modified afterwards; discount kinds are already in
// their numeric wire form.
type OrderSubmission struct {
	CustomerID   int64
	UserID       int64
	Discount     decimal.Decimal
	DiscountType enum.DiscountCode
	Status       enum.OrderStatus
	Items        []OrderSubmissionItem
}

// NewOrderSubmission snapshots the cart for the given customer and cashier.
func NewOrderSubmission(c *Cart, customerID, userID int64, status enum.OrderStatus) OrderSubmission {
	value, kind := c.OrderDiscount()
	lines := c.Items()

	items := make([]OrderSubmissionItem, len(lines))
	for i, li := range lines {
		items[i] = OrderSubmissionItem{
			ProductID:    li.ProductID,
			Quantity:     li.Quantity,
			Price:        li.UnitPrice,
			Discount:     li.DiscountValue,
			DiscountType: enum.EncodeDiscountKind(li.DiscountKind),
			Comment:      li.Comment,
		}
	}

	return OrderSubmission{
		CustomerID:   customerID,
		UserID:       userID,
		Discount:     value,
		DiscountType: enum.EncodeDiscountKind(kind),
		Status:       status,
		Items:        items,
	}
}

// WithoutComments returns a copy whose item comments are all blank.
func (s OrderSubmission) WithoutComments() OrderSubmission {
	items := make([]OrderSubmissionItem, len(s.Items))
	copy(items, s.Items)
	for i := range items {
		items[i].Comment = ""
	}
	s.Items = items
	return s
}

type orderSubmissionItemJSON struct {
	ProductID    int64             `json:"productId"`
	Quantity     int               `json:"quantity"`
	Price        json.Number       `json:"price"`
	Discount     json.Number       `json:"discount"`
	DiscountType enum.DiscountCode `json:"discountType"`
	Comment      string            `json:"comment"`
}

type orderSubmissionJSON struct {
	CustomerID   int64                     `json:"customerId"`
	UserID       int64                     `json:"userId"`
	Discount     json.Number               `json:"discount"`
	DiscountType enum.DiscountCode         `json:"discountType"`
	Status       enum.OrderStatus          `json:"status"`
	Items        []orderSubmissionItemJSON `json:"items"`
}

// MarshalJSON emits money as bare JSON numbers, which the backend expects.
func (s OrderSubmission) MarshalJSON() ([]byte, error) {
	out := orderSubmissionJSON{
		CustomerID:   s.CustomerID,
		UserID:       s.UserID,
		Discount:     json.Number(s.Discount.String()),
		DiscountType: s.DiscountType,
		Status:       s.Status,
		Items:        make([]orderSubmissionItemJSON, len(s.Items)),
	}
	for i, it := range s.Items {
		out.Items[i] = orderSubmissionItemJSON{
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			Price:        json.Number(it.Price.String()),
			Discount:     json.Number(it.Discount.String()),
			DiscountType: it.DiscountType,
			Comment:      it.Comment,
		}
	}
	return json.Marshal(out)
}

// PersistedOrderItem is an order line as stored by the backend.
type PersistedOrderItem struct {
	ID           int64             `json:"id"`
	ProductID    int64             `json:"productId"`
	ProductName  string            `json:"productName"`
	Quantity     int               `json:"quantity"`
	Price        decimal.Decimal   `json:"price"`
	Discount     decimal.Decimal   `json:"discount"`
	DiscountType enum.DiscountCode `json:"discountType"`
	Comment      string            `json:"comment"`
}

// PersistedOrder is a POS order as returned by the backend after creation.
type PersistedOrder struct {
	ID           int64                `json:"id"`
	Number       string               `json:"number"`
	UserName     string               `json:"userName"`
	Discount     decimal.Decimal      `json:"discount"`
	DiscountType enum.DiscountCode    `json:"discountType"`
	Total        decimal.Decimal      `json:"total"`
	Status       enum.OrderStatus     `json:"status"`
	DateCreated  Timestamp            `json:"dateCreated"`
	DateUpdated  Timestamp            `json:"dateUpdated"`
	Customer     *Customer            `json:"customer"`
	Items        []PersistedOrderItem `json:"items"`
}

// Timestamp decodes the backend's date strings, which may or may not carry
// a zone offset. Zone-less values are read in local time.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}
