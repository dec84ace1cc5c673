package entity

// Customer is a store customer as served by the backend. Nullable backend
// strings decode to "".
type Customer struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	TaxNumber   string `json:"taxNumber,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	IsEnabled   bool   `json:"isEnabled"`
}
