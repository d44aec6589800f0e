package ledger

import "errors"

// Validation failures: malformed input, rejected before any accounting.
var (
	ErrInvalidQuantity = errors.New("quantity must be a positive whole number")
	ErrInvalidPrice    = errors.New("price must not be negative")
)

// Business-rule failures: well-formed requests the portfolio cannot honor.
var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrNoSuchHolding        = errors.New("holding not found")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
)

// IsValidation reports whether err is a malformed-input rejection rather
// than a business-rule rejection.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidQuantity) || errors.Is(err, ErrInvalidPrice)
}
