package repository

import (
	"context"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(ctx context.Context, d *model.Doctor) error
	Save(ctx context.Context, d *model.Doctor) error
	FindByName(ctx context.Context, name string) (*model.Doctor, error)
	FindAll(ctx context.Context) ([]model.Doctor, error)
	DeleteByName(ctx context.Context, name string) error

	// Custom price overrides — the sparse per-doctor price map.
	FindPrice(ctx context.Context, doctorID uuid.UUID, medicineName string) (*model.DoctorPrice, error)
	UpsertPrice(ctx context.Context, p *model.DoctorPrice) error
	DeletePrice(ctx context.Context, doctorID uuid.UUID, medicineName string) error
	ListPrices(ctx context.Context, doctorID uuid.UUID) ([]model.DoctorPrice, error)
}

type doctorRepo struct{ db *gorm.DB }

func NewDoctorRepository(db *gorm.DB) DoctorRepository { return &doctorRepo{db: db} }

func (r *doctorRepo) Create(ctx context.Context, d *model.Doctor) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *doctorRepo) Save(ctx context.Context, d *model.Doctor) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *doctorRepo) FindByName(ctx context.Context, name string) (*model.Doctor, error) {
	var d model.Doctor
	err := r.db.WithContext(ctx).Preload("CustomPrices").Where("name = ?", name).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *doctorRepo) FindAll(ctx context.Context) ([]model.Doctor, error) {
	var doctors []model.Doctor
	err := r.db.WithContext(ctx).Preload("CustomPrices").Order("name ASC").Find(&doctors).Error
	return doctors, err
}

func (r *doctorRepo) DeleteByName(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Where("name = ?", name).Delete(&model.Doctor{}).Error
}

func (r *doctorRepo) FindPrice(ctx context.Context, doctorID uuid.UUID, medicineName string) (*model.DoctorPrice, error) {
	var p model.DoctorPrice
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND medicine_name = ?", doctorID, medicineName).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *doctorRepo) UpsertPrice(ctx context.Context, p *model.DoctorPrice) error {
	existing, err := r.FindPrice(ctx, p.DoctorID, p.MedicineName)
	if err == nil {
		existing.Price = p.Price
		return r.db.WithContext(ctx).Save(existing).Error
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *doctorRepo) DeletePrice(ctx context.Context, doctorID uuid.UUID, medicineName string) error {
	return r.db.WithContext(ctx).
		Where("doctor_id = ? AND medicine_name = ?", doctorID, medicineName).
		Delete(&model.DoctorPrice{}).Error
}

func (r *doctorRepo) ListPrices(ctx context.Context, doctorID uuid.UUID) ([]model.DoctorPrice, error) {
	var prices []model.DoctorPrice
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("medicine_name ASC").
		Find(&prices).Error
	return prices, err
}
