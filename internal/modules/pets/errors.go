package pets

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("pet not found")
	ErrDuplicateIdentifier = errors.New("a pet with this identifier already exists")
	ErrIdentifierImmutable = errors.New("the pet identifier cannot be changed manually")
)
