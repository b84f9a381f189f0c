package inventory

import "errors"

var (
	ErrNegativeQuantity  = errors.New("quantity cannot be negative")
	ErrInsufficientStock = errors.New("quantity exceeds available stock")
)
