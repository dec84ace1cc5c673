package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sangkips/boumia-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ItemUpdate is one edit to a cart line. The concrete types below are the
// only implementations.
type ItemUpdate interface {
	apply(it *LineItem) bool
}

// SetQuantity sets the unit count. Zero removes the line; negatives are ignored.
type SetQuantity struct{ Quantity int }

// SetPrice overrides the unit price. Negatives are ignored. The cart accepts
// it regardless of the product flag; user edits are gated by the caller.
type SetPrice struct{ Price decimal.Decimal }

// SetDiscountValue sets the line discount amount. Negatives are ignored.
type SetDiscountValue struct{ Value decimal.Decimal }

// SetDiscountKind switches the line discount between fixed and percent.
type SetDiscountKind struct{ Kind enum.DiscountKind }

// SetComment attaches a free-text note to the line.
type SetComment struct{ Comment string }

func (u SetQuantity) apply(it *LineItem) bool {
	if u.Quantity < 1 || u.Quantity == it.Quantity {
		return false
	}
	it.Quantity = u.Quantity
	return true
}

func (u SetPrice) apply(it *LineItem) bool {
	if u.Price.IsNegative() || u.Price.Equal(it.UnitPrice) {
		return false
	}
	it.UnitPrice = u.Price
	return true
}

func (u SetDiscountValue) apply(it *LineItem) bool {
	if u.Value.IsNegative() || u.Value.Equal(it.DiscountValue) {
		return false
	}
	it.DiscountValue = u.Value
	return true
}

func (u SetDiscountKind) apply(it *LineItem) bool {
	if !u.Kind.Valid() || u.Kind == it.DiscountKind {
		return false
	}
	it.DiscountKind = u.Kind
	return true
}

func (u SetComment) apply(it *LineItem) bool {
	if u.Comment == it.Comment {
		return false
	}
	it.Comment = u.Comment
	return true
}

// Update operation names accepted by ParseItemUpdate.
const (
	OpSetQuantity      = "set_quantity"
	OpSetPrice         = "set_price"
	OpSetDiscountValue = "set_discount_value"
	OpSetDiscountKind  = "set_discount_kind"
	OpSetComment       = "set_comment"
)

var (
	// ErrUnknownUpdate is returned for an operation name that does not exist.
	ErrUnknownUpdate = errors.New("unknown cart update")
	// ErrUnparseableValue marks input the cart treats as "no change".
	ErrUnparseableValue = errors.New("unparseable update value")
)

// ParseItemUpdate turns raw form input into a typed update.
func ParseItemUpdate(op, raw string) (ItemUpdate, error) {
	value := strings.TrimSpace(raw)
	switch op {
	case OpSetQuantity:
		q, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: quantity %q", ErrUnparseableValue, raw)
		}
		return SetQuantity{Quantity: q}, nil
	case OpSetPrice:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("%w: price %q", ErrUnparseableValue, raw)
		}
		return SetPrice{Price: d}, nil
	case OpSetDiscountValue:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("%w: discount %q", ErrUnparseableValue, raw)
		}
		return SetDiscountValue{Value: d}, nil
	case OpSetDiscountKind:
		k, err := enum.ParseDiscountKind(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparseableValue, err)
		}
		return SetDiscountKind{Kind: k}, nil
	case OpSetComment:
		return SetComment{Comment: raw}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownUpdate, op)
}
