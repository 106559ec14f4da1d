package model

import (
	"time"

	"github.com/google/uuid"
)

// Invoice payment types.
const (
	PaymentTypeCash   = "cash"
	PaymentTypeCredit = "credit"
)

// Invoice is a finalized bill for one doctor. Invoices are created atomically
// with their items and only ever deleted wholesale — there is no partial edit.
//
// InvoiceNumber comes from a Postgres sequence: strictly increasing, assigned
// under the creating transaction, never reused even after deletion.
//
// Monetary invariants (whole rupees):
//
//	Subtotal   = Σ item.Amount
//	GSTAmount  = round-half-up(Subtotal × 5%)
//	GrandTotal = Subtotal + GSTAmount
//	AmountPaid + AmountDue = GrandTotal, always
type Invoice struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceNumber int64     `gorm:"uniqueIndex;not null"`
	// DoctorName is a reference, not ownership: deleting the doctor leaves
	// the invoice (and its snapshots) intact.
	DoctorName  string `gorm:"index;not null"`
	PaymentType string `gorm:"type:varchar(10);not null"`
	Subtotal    int64  `gorm:"not null"`
	GSTAmount   int64  `gorm:"not null;column:gst_amount"`
	GrandTotal  int64  `gorm:"not null"`
	TotalProfit int64  `gorm:"not null"`
	AmountPaid  int64  `gorm:"not null"`
	AmountDue   int64  `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// InvoiceItem is one line of an invoice. BatchNumber, HSNCode, ExpiryDate,
// PurchaseRate and SellingPrice are snapshotted from the Medicine at invoice
// time so historical invoices stay stable when the catalog is edited later.
// Position preserves the caller's line order; duplicate medicines are kept
// as separate lines, never merged.
type InvoiceItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Position     int       `gorm:"not null"`
	MedicineName string    `gorm:"index;not null"`
	BatchNumber  string    `gorm:"not null;default:''"`
	HSNCode      string    `gorm:"not null;default:'';column:hsn_code"`
	ExpiryDate   string    `gorm:"not null;default:''"`
	Quantity     int64     `gorm:"not null"`
	SellingPrice int64     `gorm:"not null"`
	PurchaseRate int64     `gorm:"not null"`
	// Amount = SellingPrice × Quantity; Profit = (SellingPrice − PurchaseRate) × Quantity.
	Amount int64 `gorm:"not null"`
	Profit int64 `gorm:"not null"`
}
