package booking

import "errors"

var (
	ErrValidation           = errors.New("validation error")
	ErrNotFound             = errors.New("booking not found")
	ErrEmptyBooking         = errors.New("select at least one pet and service before saving")
	ErrOwnershipMismatch    = errors.New("pet does not belong to the booking customer")
	ErrSchedulingConflict   = errors.New("doctor is already booked at that time")
	ErrImmutableBooking     = errors.New("booking cannot be edited once paid or cancelled")
	ErrInsufficientStock    = errors.New("selected quantity exceeds available stock")
	ErrNegativeQuantity     = errors.New("selected quantity cannot be negative")
	ErrIdentifierExhaustion = errors.New("booking identifier space exhausted")
)
