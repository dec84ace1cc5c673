package entity

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry as served by the store backend. Field names
// follow the backend record so search results pass through unchanged.
type Product struct {
	ID              int64           `json:"id"`
	Code            string          `json:"code"`
	PLU             string          `json:"plu,omitempty"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	PriceEditable   bool            `json:"isPriceChangeAllowed"`
	Color           string          `json:"color,omitempty"`
	MeasurementUnit string          `json:"measurementUnit,omitempty"`
	IsEnabled       bool            `json:"isEnabled"`
	IsService       bool            `json:"isService"`
}
