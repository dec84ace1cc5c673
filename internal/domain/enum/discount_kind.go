package enum

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DiscountKind is how a discount value is applied: a flat currency amount or
// a percentage of the amount it discounts.
type DiscountKind int

const (
	DiscountFixed DiscountKind = iota
	DiscountPercent
)

func (k DiscountKind) String() string {
	switch k {
	case DiscountFixed:
		return "FIXED"
	case DiscountPercent:
		return "PERCENT"
	}
	return fmt.Sprintf("DiscountKind(%d)", int(k))
}

// Valid reports whether k is one of the two known kinds.
func (k DiscountKind) Valid() bool {
	return k == DiscountFixed || k == DiscountPercent
}

// ParseDiscountKind accepts the symbolic names in any case.
func ParseDiscountKind(s string) (DiscountKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FIXED":
		return DiscountFixed, nil
	case "PERCENT":
		return DiscountPercent, nil
	}
	return 0, fmt.Errorf("unknown discount kind %q", s)
}

func (k DiscountKind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", k)
	}
	return json.Marshal(k.String())
}

func (k *DiscountKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("discount kind must be FIXED or PERCENT: %w", err)
	}
	parsed, err := ParseDiscountKind(str)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// DiscountCode is the numeric discount kind carried by order payloads and
// persisted orders: 0 for fixed, 1 for percent.
type DiscountCode int

const (
	DiscountCodeFixed   DiscountCode = 0
	DiscountCodePercent DiscountCode = 1
)

// EncodeDiscountKind is the one place a symbolic kind becomes its wire code.
func EncodeDiscountKind(k DiscountKind) DiscountCode {
	if k == DiscountPercent {
		return DiscountCodePercent
	}
	return DiscountCodeFixed
}

// DecodeDiscountCode is the inverse of EncodeDiscountKind.
func DecodeDiscountCode(c DiscountCode) (DiscountKind, error) {
	switch c {
	case DiscountCodeFixed:
		return DiscountFixed, nil
	case DiscountCodePercent:
		return DiscountPercent, nil
	}
	return 0, fmt.Errorf("unknown discount type code %d", int(c))
}

func (c *DiscountCode) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return fmt.Errorf("discountType must be 0 or 1: %w", err)
	}
	if _, err := DecodeDiscountCode(DiscountCode(i)); err != nil {
		return err
	}
	*c = DiscountCode(i)
	return nil
}
