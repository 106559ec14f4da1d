package repository

import (
	"context"
	"time"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"

	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, inv *model.Invoice) error
	NextInvoiceNumber(ctx context.Context, tx *gorm.DB) (int64, error)
	FindByNumber(ctx context.Context, number int64) (*model.Invoice, error)
	FindAll(ctx context.Context) ([]model.Invoice, error)
	FindByDoctor(ctx context.Context, doctorName string) ([]model.Invoice, error)
	FindSince(ctx context.Context, since time.Time) ([]model.Invoice, error)
	DeleteByNumber(ctx context.Context, tx *gorm.DB, number int64) error
	// ApplyPaymentTx shifts amount from AmountDue to AmountPaid in one
	// conditional update. Returns the number of rows changed: zero means
	// the invoice had less than amount outstanding at write time.
	ApplyPaymentTx(tx *gorm.DB, number int64, amount int64) (int64, error)

	// TotalBilled sums InvoiceItem.Quantity over all live invoices for one
	// medicine; TotalBilledByMedicine does the same for every medicine at
	// once. Deleted invoices are excluded by construction.
	TotalBilled(ctx context.Context, medicineName string) (int64, error)
	TotalBilledByMedicine(ctx context.Context) (map[string]int64, error)

	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository { return &invoiceRepo{db: db} }

func (r *invoiceRepo) DB() *gorm.DB { return r.db }

func (r *invoiceRepo) Create(ctx context.Context, tx *gorm.DB, inv *model.Invoice) error {
	return tx.WithContext(ctx).Create(inv).Error
}

func (r *invoiceRepo) NextInvoiceNumber(ctx context.Context, tx *gorm.DB) (int64, error) {
	// Postgres sequence: strictly increasing, never reused even after deletion.
	var num int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('invoice_number_seq')").Scan(&num).Error
	return num, err
}

func (r *invoiceRepo) FindByNumber(ctx context.Context, number int64) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("invoice_number = ?", number).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepo) FindAll(ctx context.Context) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("invoice_number DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) FindByDoctor(ctx context.Context, doctorName string) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).
		Where("doctor_name = ?", doctorName).
		Order("invoice_number ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) FindSince(ctx context.Context, since time.Time) ([]model.Invoice, error) {
	var invoices []model.Invoice
	q := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") })
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	err := q.Order("invoice_number ASC").Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) DeleteByNumber(ctx context.Context, tx *gorm.DB, number int64) error {
	var inv model.Invoice
	if err := tx.WithContext(ctx).Where("invoice_number = ?", number).First(&inv).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("invoice_id = ?", inv.ID).Delete(&model.InvoiceItem{}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Delete(&inv).Error
}

func (r *invoiceRepo) ApplyPaymentTx(tx *gorm.DB, number int64, amount int64) (int64, error) {
	// Relative update guarded by the live balance, so two concurrent
	// payments can never push amount_paid past grand_total.
	res := tx.Model(&model.Invoice{}).
		Where("invoice_number = ? AND amount_due >= ?", number, amount).
		Updates(map[string]interface{}{
			"amount_paid": gorm.Expr("amount_paid + ?", amount),
			"amount_due":  gorm.Expr("amount_due - ?", amount),
		})
	return res.RowsAffected, res.Error
}

func (r *invoiceRepo) TotalBilled(ctx context.Context, medicineName string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.InvoiceItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("medicine_name = ?", medicineName).
		Scan(&total).Error
	return total, err
}

func (r *invoiceRepo) TotalBilledByMedicine(ctx context.Context) (map[string]int64, error) {
	type row struct {
		MedicineName string
		Total        int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.InvoiceItem{}).
		Select("medicine_name, COALESCE(SUM(quantity), 0) AS total").
		Group("medicine_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	totals := make(map[string]int64, len(rows))
	for _, r := range rows {
		totals[r.MedicineName] = r.Total
	}
	return totals, nil
}
