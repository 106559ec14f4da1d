package repository

import (
	"context"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"

	"gorm.io/gorm"
)

type MedicineRepository interface {
	Create(ctx context.Context, m *model.Medicine) error
	Save(ctx context.Context, m *model.Medicine) error
	FindByName(ctx context.Context, name string) (*model.Medicine, error)
	FindAll(ctx context.Context) ([]model.Medicine, error)
	DeleteByName(ctx context.Context, name string) error
}

type medicineRepo struct{ db *gorm.DB }

func NewMedicineRepository(db *gorm.DB) MedicineRepository { return &medicineRepo{db: db} }

func (r *medicineRepo) Create(ctx context.Context, m *model.Medicine) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *medicineRepo) Save(ctx context.Context, m *model.Medicine) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *medicineRepo) FindByName(ctx context.Context, name string) (*model.Medicine, error) {
	var m model.Medicine
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *medicineRepo) FindAll(ctx context.Context) ([]model.Medicine, error) {
	var medicines []model.Medicine
	err := r.db.WithContext(ctx).Order("name ASC").Find(&medicines).Error
	return medicines, err
}

func (r *medicineRepo) DeleteByName(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Where("name = ?", name).Delete(&model.Medicine{}).Error
}
