package model

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is a customer account. Name is the business key and is immutable
// after creation.
type Doctor struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string    `gorm:"uniqueIndex;not null"`
	ShippingAddress string    `gorm:"not null;default:''"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// CustomPrices is the sparse per-medicine override map. A medicine with
	// no row here is charged the medicine's BaseSellingRate.
	CustomPrices []DoctorPrice `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE"`
}

// DoctorPrice is one entry of a doctor's custom price list. Absence means
// "use base rate" — a sentinel price is never stored.
type DoctorPrice struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DoctorID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_doctor_medicine"`
	MedicineName string    `gorm:"not null;uniqueIndex:idx_doctor_medicine"`
	Price        int64     `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
