package infra

import (
	"fmt"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection with pooled connections.
// Schema management is the caller's job: run RunMigrations once after
// opening.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// RunMigrations runs AutoMigrate for every model plus the schema patches.
// Also used by integration tests against a disposable container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Medicine{},
		&model.Doctor{},
		&model.DoctorPrice{},
		&model.Invoice{},
		&model.InvoiceItem{},
		&model.PaymentRecord{},
		&model.PriceChange{},
		&model.FirmSettings{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle.
// Each statement uses IF NOT EXISTS semantics so re-running is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Invoice numbers are drawn from a dedicated sequence inside the
		// creating transaction: strictly increasing, never reused even after
		// an invoice is deleted.
		`CREATE SEQUENCE IF NOT EXISTS invoice_number_seq START 1`,
		// totalBilled sums invoice_items joined to live invoices; this index
		// keeps the per-medicine aggregation cheap.
		`CREATE INDEX IF NOT EXISTS idx_invoice_items_medicine_name ON invoice_items (medicine_name)`,
		// Payment history is always read per invoice in insertion order.
		`CREATE INDEX IF NOT EXISTS idx_payment_records_invoice_created
		     ON payment_records (invoice_number, created_at)`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
