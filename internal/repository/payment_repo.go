package repository

import (
	"context"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"

	"gorm.io/gorm"
)

// PaymentRepository stores the append-only payment history. There are no
// update or delete operations: cancelling a payment is not a supported
// business action.
type PaymentRepository interface {
	CreateTx(tx *gorm.DB, rec *model.PaymentRecord) error
	ListByInvoice(ctx context.Context, invoiceNumber int64) ([]model.PaymentRecord, error)
	ListAll(ctx context.Context) ([]model.PaymentRecord, error)
	DeleteByInvoiceTx(tx *gorm.DB, invoiceNumber int64) error
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) CreateTx(tx *gorm.DB, rec *model.PaymentRecord) error {
	return tx.Create(rec).Error
}

func (r *paymentRepo) ListByInvoice(ctx context.Context, invoiceNumber int64) ([]model.PaymentRecord, error) {
	var records []model.PaymentRecord
	err := r.db.WithContext(ctx).
		Where("invoice_number = ?", invoiceNumber).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

func (r *paymentRepo) ListAll(ctx context.Context) ([]model.PaymentRecord, error) {
	var records []model.PaymentRecord
	err := r.db.WithContext(ctx).
		Order("invoice_number ASC, created_at ASC").
		Find(&records).Error
	return records, err
}

// DeleteByInvoiceTx removes the history of a wholesale-deleted invoice so no
// orphaned payments remain. This is the only path that removes payment rows.
func (r *paymentRepo) DeleteByInvoiceTx(tx *gorm.DB, invoiceNumber int64) error {
	return tx.Where("invoice_number = ?", invoiceNumber).Delete(&model.PaymentRecord{}).Error
}
