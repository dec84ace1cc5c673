package enum

import (
	"encoding/json"
	"strings"
)

// OrderStatus is the lifecycle status the backend stores on a POS order.
type OrderStatus string

const (
	// OrderStatusPending is a cart saved for later completion.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusDone is a confirmed sale.
	OrderStatusDone OrderStatus = "DONE"
)

func (s OrderStatus) String() string {
	return string(s)
}

// IsFinal reports whether the order needs no further action at the till.
func (s OrderStatus) IsFinal() bool {
	return s == OrderStatusDone
}

// UnmarshalJSON normalises case; statuses the terminal does not know about
// are kept verbatim so they still display on receipts.
func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch strings.ToUpper(str) {
	case string(OrderStatusPending):
		*s = OrderStatusPending
	case string(OrderStatusDone):
		*s = OrderStatusDone
	default:
		*s = OrderStatus(str)
	}
	return nil
}
