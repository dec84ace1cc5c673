package request

// PrintReceiptRequest is the request body for printing an order receipt.
// Pair asks the terminal to open the printer if it is not connected yet.
type PrintReceiptRequest struct {
	OrderID int64 `json:"order_id" binding:"required,gt=0"`
	Pair    bool  `json:"pair"`
}

// TestPrintRequest is the request body for printing a test receipt
type TestPrintRequest struct {
	Pair bool `json:"pair"`
}
