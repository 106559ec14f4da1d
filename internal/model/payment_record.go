package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentRecord is an immutable event in a credit invoice's payment history.
// Records are NEVER modified, reordered or deleted — the sum of a given
// invoice's records equals that invoice's AmountPaid at all times.
type PaymentRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceNumber int64     `gorm:"index;not null"`
	Amount        int64     `gorm:"not null"`
	// PaymentDate is the business date the payment was received
	// ("2026-08-29"), as entered by the operator; CreatedAt orders the
	// history.
	PaymentDate string `gorm:"not null"`
	CreatedAt   time.Time
}
