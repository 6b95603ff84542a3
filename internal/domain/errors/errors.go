package errors

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every error the caller can fix by changing the request.
var ErrValidation = errors.New("validation failed")

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateRequest   = errors.New("duplicate request")
)

var (
	ErrMissingField      = fmt.Errorf("%w: required field is missing", ErrValidation)
	ErrInvalidIdentifier = fmt.Errorf("%w: malformed identifier", ErrValidation)
	ErrInvalidOrderType  = fmt.Errorf("%w: order type must be one of to_go, delivery, dine_in", ErrValidation)
	ErrInvalidQuantity   = fmt.Errorf("%w: quantity must be a positive integer", ErrValidation)
	ErrInvalidEmail      = fmt.Errorf("%w: mail is not a valid e-mail address", ErrValidation)
	ErrInvalidPrice      = fmt.Errorf("%w: price must not be negative", ErrValidation)
	ErrInvalidPeriod     = fmt.Errorf("%w: malformed sales period", ErrValidation)
	ErrInvalidCapacity   = fmt.Errorf("%w: capacity must not be negative", ErrValidation)
)

// ErrLineItemNotFound reports a menu item that is not part of the order.
var ErrLineItemNotFound = fmt.Errorf("line item %w", ErrNotFound)

// IsValidation reports whether err was caused by caller input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
