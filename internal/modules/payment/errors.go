package payment

import "errors"

var (
	ErrNotFound             = errors.New("booking not found")
	ErrAlreadyRecorded      = errors.New("this booking is already recorded")
	ErrAlreadyPaid          = errors.New("this booking is already paid")
	ErrInvalidAmount        = errors.New("payment amount should be greater than zero")
	ErrMissingPaymentMethod = errors.New("please select a payment method")
)
