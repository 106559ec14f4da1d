package model

import (
	"time"

	"github.com/google/uuid"
)

// PriceChange records every set/clear of a doctor's custom price.
// Rows are immutable — never deleted or modified. Price changes are
// prospective only: invoices already created keep their snapshotted price.
type PriceChange struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DoctorName   string    `gorm:"index;not null"`
	MedicineName string    `gorm:"not null"`
	// PriceBefore is nil when no override existed; PriceAfter is nil when
	// the override was cleared back to the base rate.
	PriceBefore *int64
	PriceAfter  *int64
	// Reason: "set" | "clear"
	Reason    string `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time
}
