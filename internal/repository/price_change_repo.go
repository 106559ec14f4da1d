package repository

import (
	"context"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"

	"gorm.io/gorm"
)

// PriceChangeRepository stores the immutable audit trail of doctor price
// overrides. Rows are never updated or deleted.
type PriceChangeRepository interface {
	Create(ctx context.Context, pc *model.PriceChange) error
	ListByDoctor(ctx context.Context, doctorName string, page, limit int) ([]model.PriceChange, int64, error)
}

type priceChangeRepo struct{ db *gorm.DB }

func NewPriceChangeRepository(db *gorm.DB) PriceChangeRepository { return &priceChangeRepo{db: db} }

func (r *priceChangeRepo) Create(ctx context.Context, pc *model.PriceChange) error {
	return r.db.WithContext(ctx).Create(pc).Error
}

func (r *priceChangeRepo) ListByDoctor(ctx context.Context, doctorName string, page, limit int) ([]model.PriceChange, int64, error) {
	var rows []model.PriceChange
	var total int64
	offset := (page - 1) * limit

	q := r.db.WithContext(ctx).Model(&model.PriceChange{}).Where("doctor_name = ?", doctorName)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error
	return rows, total, err
}
