package services

import (
	"errors"
	"fmt"
)

// ErrEmptyCart is returned when a checkout is attempted with no cart lines.
var ErrEmptyCart = errors.New("cart is empty")

// OutOfStockError means no stock row exists for the (sneaker, size) pair.
type OutOfStockError struct {
	SneakerID int
	SizeID    int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("sneaker %d in size %d is out of stock", e.SneakerID, e.SizeID)
}

// InsufficientStockError means the stock row exists but holds fewer units
// than the cart line asks for.
type InsufficientStockError struct {
	SneakerID int
	SizeID    int
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("sneaker %d in size %d: requested %d but only %d available",
		e.SneakerID, e.SizeID, e.Requested, e.Available)
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries per-field problems with the submitted shipping
// info, surfaced verbatim to the API boundary.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s %s", e.Fields[0].Field, e.Fields[0].Message)
}
