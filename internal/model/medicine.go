package model

import (
	"time"

	"github.com/google/uuid"
)

// Medicine is the master inventory record for one product.
// Name is the business key and is immutable after creation.
// All monetary fields are whole rupees (no fractional amounts),
// matching the firm's pricing practice.
//
// Stock is NOT decremented when invoices are created: in-hand stock is
// always derived as OpeningStock - totalBilled - Sampling (see
// service.StockService). Quantity is the separately tracked purchasable
// stock counter that reduceMedicineStock operates on.
type Medicine struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string    `gorm:"uniqueIndex;not null"`
	OpeningStock    int64     `gorm:"not null;default:0"`
	Sampling        int64     `gorm:"not null;default:0"`
	Quantity        int64     `gorm:"not null;default:0"`
	PurchaseRate    int64     `gorm:"not null;default:0"`
	BaseSellingRate int64     `gorm:"not null;default:0"`
	MRP             int64     `gorm:"not null;default:0;column:mrp"`
	BatchNumber     string    `gorm:"not null;default:''"`
	HSNCode         string    `gorm:"not null;default:'';column:hsn_code"`
	// ExpiryDate is stored as the calendar date string the supplier prints
	// on the batch ("2026-03-31"); it is never used in arithmetic.
	ExpiryDate string `gorm:"not null;default:''"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
