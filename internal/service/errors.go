package service

import (
	"errors"

	"gorm.io/gorm"
)

// Validation failures are surfaced synchronously with no partial state
// change; handlers map these to HTTP statuses with errors.Is.
var (
	ErrUnknownDoctor   = errors.New("doctor not found")
	ErrUnknownMedicine = errors.New("medicine not found")
	ErrUnknownInvoice  = errors.New("invoice not found")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrOverpayment     = errors.New("payment exceeds amount due")
	ErrDuplicateKey    = errors.New("record already exists")
)

// isNotFound distinguishes a missing row from an infrastructure failure.
// Lookups map only the former to the Unknown* sentinels; anything else
// propagates so a flaky connection never masquerades as absent data.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
