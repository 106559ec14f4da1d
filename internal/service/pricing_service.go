package service

import (
	"context"
	"time"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/dto"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/repository"
)

// PricingService resolves the effective unit price a doctor pays for a
// medicine: the doctor's custom override when one exists, the medicine's
// base selling rate otherwise. Override changes are prospective only —
// invoices already created keep their snapshotted prices.
type PricingService interface {
	ResolvePrice(ctx context.Context, doctorName, medicineName string) (price int64, overridden bool, err error)
	SetOverride(ctx context.Context, doctorName, medicineName string, price int64) error
	ClearOverride(ctx context.Context, doctorName, medicineName string) error
	AllPrices(ctx context.Context, doctorName string) (map[string]int64, error)
	PriceHistory(ctx context.Context, doctorName string, page, limit int) (*dto.PriceChangeListResponse, error)
}

type pricingService struct {
	doctorRepo   repository.DoctorRepository
	medicineRepo repository.MedicineRepository
	changeRepo   repository.PriceChangeRepository
}

func NewPricingService(
	doctorRepo repository.DoctorRepository,
	medicineRepo repository.MedicineRepository,
	changeRepo repository.PriceChangeRepository,
) PricingService {
	return &pricingService{
		doctorRepo:   doctorRepo,
		medicineRepo: medicineRepo,
		changeRepo:   changeRepo,
	}
}

func (s *pricingService) ResolvePrice(ctx context.Context, doctorName, medicineName string) (int64, bool, error) {
	doctor, err := s.doctorRepo.FindByName(ctx, doctorName)
	if err != nil {
		if isNotFound(err) {
			return 0, false, ErrUnknownDoctor
		}
		return 0, false, err
	}
	medicine, err := s.medicineRepo.FindByName(ctx, medicineName)
	if err != nil {
		if isNotFound(err) {
			return 0, false, ErrUnknownMedicine
		}
		return 0, false, err
	}

	override, err := s.doctorRepo.FindPrice(ctx, doctor.ID, medicineName)
	switch {
	case err == nil:
		return override.Price, true, nil
	case isNotFound(err):
		return medicine.BaseSellingRate, false, nil
	default:
		// A failed override lookup must not silently bill the base rate.
		return 0, false, err
	}
}

// SetOverride upserts the doctor's custom price for one medicine. Calling it
// again with the same price is a no-op apart from the audit row.
func (s *pricingService) SetOverride(ctx context.Context, doctorName, medicineName string, price int64) error {
	if price <= 0 {
		return ErrInvalidAmount
	}
	doctor, err := s.doctorRepo.FindByName(ctx, doctorName)
	if err != nil {
		if isNotFound(err) {
			return ErrUnknownDoctor
		}
		return err
	}
	if _, err := s.medicineRepo.FindByName(ctx, medicineName); err != nil {
		if isNotFound(err) {
			return ErrUnknownMedicine
		}
		return err
	}

	var before *int64
	existing, err := s.doctorRepo.FindPrice(ctx, doctor.ID, medicineName)
	if err != nil && !isNotFound(err) {
		return err
	}
	if err == nil {
		before = &existing.Price
	}

	if err := s.doctorRepo.UpsertPrice(ctx, &model.DoctorPrice{
		DoctorID:     doctor.ID,
		MedicineName: medicineName,
		Price:        price,
	}); err != nil {
		return err
	}

	after := price
	return s.changeRepo.Create(ctx, &model.PriceChange{
		DoctorName:   doctorName,
		MedicineName: medicineName,
		PriceBefore:  before,
		PriceAfter:   &after,
		Reason:       "set",
	})
}

// ClearOverride removes the doctor's custom price so the base rate applies
// again. Clearing an override that does not exist is a no-op.
func (s *pricingService) ClearOverride(ctx context.Context, doctorName, medicineName string) error {
	doctor, err := s.doctorRepo.FindByName(ctx, doctorName)
	if err != nil {
		if isNotFound(err) {
			return ErrUnknownDoctor
		}
		return err
	}

	existing, err := s.doctorRepo.FindPrice(ctx, doctor.ID, medicineName)
	if err != nil {
		if isNotFound(err) {
			return nil // already cleared
		}
		return err
	}

	if err := s.doctorRepo.DeletePrice(ctx, doctor.ID, medicineName); err != nil {
		return err
	}
	return s.changeRepo.Create(ctx, &model.PriceChange{
		DoctorName:   doctorName,
		MedicineName: medicineName,
		PriceBefore:  &existing.Price,
		PriceAfter:   nil,
		Reason:       "clear",
	})
}

// AllPrices returns the doctor's override map (medicine name → price).
// Medicines absent from the map are charged their base selling rate.
func (s *pricingService) AllPrices(ctx context.Context, doctorName string) (map[string]int64, error) {
	doctor, err := s.doctorRepo.FindByName(ctx, doctorName)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUnknownDoctor
		}
		return nil, err
	}
	prices, err := s.doctorRepo.ListPrices(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(prices))
	for _, p := range prices {
		out[p.MedicineName] = p.Price
	}
	return out, nil
}

// PriceHistory pages through the doctor's override audit trail, newest first.
func (s *pricingService) PriceHistory(ctx context.Context, doctorName string, page, limit int) (*dto.PriceChangeListResponse, error) {
	if _, err := s.doctorRepo.FindByName(ctx, doctorName); err != nil {
		if isNotFound(err) {
			return nil, ErrUnknownDoctor
		}
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	rows, total, err := s.changeRepo.ListByDoctor(ctx, doctorName, page, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PriceChangeItem, 0, len(rows))
	for _, row := range rows {
		data = append(data, dto.PriceChangeItem{
			MedicineName: row.MedicineName,
			PriceBefore:  row.PriceBefore,
			PriceAfter:   row.PriceAfter,
			Reason:       row.Reason,
			CreatedAt:    row.CreatedAt.Format(time.RFC3339),
		})
	}
	return &dto.PriceChangeListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}
