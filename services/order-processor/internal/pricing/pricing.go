// Package pricing holds the order arithmetic behind the order processor:
// subtotal, bulk discount and sales tax.
package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"purem-oda-shop/shared/pkg/models"
)

const (
	TaxRate               = 0.08
	BulkDiscountThreshold = 100.0
	BulkDiscountRate      = 0.10
)

var (
	ErrMissingItems      = errors.New("Missing items array")
	ErrMissingCustomerID = errors.New("Missing customerId")
	ErrNonPositiveTotal  = errors.New("Order total must be greater than 0")
)

// Decode parses an order. Unknown fields are ignored.
func Decode(raw []byte) (models.OrderPayload, error) {
	var order models.OrderPayload
	if err := json.Unmarshal(raw, &order); err != nil {
		return models.OrderPayload{}, fmt.Errorf("invalid order json: %w", err)
	}
	return order, nil
}

// Subtotal sums price*quantity, counting a line without quantity once, and
// rounds to cents.
func Subtotal(lines []models.OrderLine) float64 {
	total := 0.0
	for _, l := range lines {
		if l.Quantity == nil {
			total += l.Price
			continue
		}
		total += l.Price * *l.Quantity
	}
	return round2(total)
}

func Calculate(order models.OrderPayload) (models.CalculationResult, error) {
	if order.Items == nil {
		return models.CalculationResult{}, ErrMissingItems
	}
	subtotal := Subtotal(order.Items)

	discount := 0.0
	if subtotal > BulkDiscountThreshold {
		discount = subtotal * BulkDiscountRate
	}
	afterDiscount := subtotal - discount
	tax := afterDiscount * TaxRate

	return models.CalculationResult{
		Success:  true,
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    afterDiscount + tax,
	}, nil
}

func Validate(order models.OrderPayload) (models.ValidationResult, error) {
	if order.Items == nil {
		return models.ValidationResult{}, ErrMissingItems
	}
	if len(order.CustomerID) == 0 {
		return models.ValidationResult{}, ErrMissingCustomerID
	}
	if Subtotal(order.Items) <= 0 {
		return models.ValidationResult{}, ErrNonPositiveTotal
	}
	return models.ValidationResult{Success: true, Message: "Order is valid"}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
