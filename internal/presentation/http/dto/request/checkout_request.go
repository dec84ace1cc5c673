package request

import (
	"bytes"
	"encoding/json"

	"github.com/sangkips/boumia-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// AddItemRequest adds a product to the cart, either by id or by scanned
// barcode.
type AddItemRequest struct {
	ProductID *int64 `json:"product_id" binding:"omitempty,gt=0"`
	Barcode   string `json:"barcode" binding:"max=64"`
}

// FieldValue is a raw edit value. The terminal sends what the cashier typed,
// which may arrive as a JSON string or a bare number.
type FieldValue string

// UnmarshalJSON accepts both strings and numbers
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FieldValue(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	*v = FieldValue(data)
	return nil
}

// UpdateItemRequest edits one field of a cart line
type UpdateItemRequest struct {
	Op    string     `json:"op" binding:"required"`
	Value FieldValue `json:"value"`
}

// OrderDiscountRequest sets the order-level discount
type OrderDiscountRequest struct {
	Value decimal.Decimal   `json:"value"`
	Kind  enum.DiscountKind `json:"kind"`
}

// SelectCustomerRequest attaches a customer to the sale
type SelectCustomerRequest struct {
	CustomerID int64 `json:"customer_id" binding:"required,gt=0"`
}

// SubmitRequest confirms or saves the sale. CustomerID is optional when a
// customer is already selected.
type SubmitRequest struct {
	CustomerID *int64 `json:"customer_id" binding:"omitempty,gt=0"`
}
