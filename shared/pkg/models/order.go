package models

import "encoding/json"

// OrderLine is one priced entry of an order. Quantity is a pointer so the
// processor can tell an absent quantity (count the price once) from zero.
type OrderLine struct {
	Price    float64  `json:"price"`
	Quantity *float64 `json:"quantity,omitempty"`
}

// OrderPayload is what the shop forwards to the order processor. The shop
// itself treats it as opaque JSON.
type OrderPayload struct {
	Items      []OrderLine     `json:"items"`
	CustomerID json.RawMessage `json:"customerId,omitempty"`
}

type CalculationResult struct {
	Success  bool    `json:"success"`
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

type ValidationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ProcessorFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type ServiceStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
