package model

import (
	"time"

	"github.com/google/uuid"
)

// FirmSettings is the pharmacy's letterhead data: persisted verbatim and
// returned as-is, no computation attached. A single row exists; updates
// overwrite it in place.
type FirmSettings struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name    string    `gorm:"not null;default:''"`
	Address string    `gorm:"not null;default:''"`
	GSTIN   string    `gorm:"not null;default:'';column:gstin"`
	Contact string    `gorm:"not null;default:''"`
	Email   string    `gorm:"not null;default:''"`
	// DefaultShippingAddress is printed on invoices for doctors without one.
	DefaultShippingAddress string `gorm:"not null;default:''"`
	// DILNumber is the drug license number shown on every invoice.
	DILNumber string `gorm:"not null;default:'';column:dil_number"`
	UpdatedAt time.Time
}
