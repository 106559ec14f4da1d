package service

import (
	"context"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/dto"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/repository"

	"github.com/redis/go-redis/v9"
)

// MedicineService is the catalog admin surface. Add-or-update is an
// idempotent upsert keyed by name; the name itself is immutable.
type MedicineService interface {
	Upsert(ctx context.Context, req dto.UpsertMedicineRequest) (*dto.MedicineResponse, error)
	Get(ctx context.Context, name string) (*dto.MedicineResponse, error)
	List(ctx context.Context) ([]dto.MedicineResponse, error)
	Delete(ctx context.Context, name string) error
}

type medicineService struct {
	repo        repository.MedicineRepository
	invoiceRepo repository.InvoiceRepository
	rdb         *redis.Client
}

func NewMedicineService(repo repository.MedicineRepository, invoiceRepo repository.InvoiceRepository, rdb *redis.Client) MedicineService {
	return &medicineService{repo: repo, invoiceRepo: invoiceRepo, rdb: rdb}
}

func (s *medicineService) Upsert(ctx context.Context, req dto.UpsertMedicineRequest) (*dto.MedicineResponse, error) {
	medicine, err := s.repo.FindByName(ctx, req.Name)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		medicine = &model.Medicine{Name: req.Name}
	}
	medicine.OpeningStock = req.OpeningStock
	medicine.Sampling = req.Sampling
	medicine.Quantity = req.Quantity
	medicine.BatchNumber = req.BatchNumber
	medicine.HSNCode = req.HSNCode
	medicine.ExpiryDate = req.ExpiryDate
	medicine.PurchaseRate = req.PurchaseRate
	medicine.BaseSellingRate = req.BaseSellingRate
	medicine.MRP = req.MRP

	if err := s.repo.Save(ctx, medicine); err != nil {
		return nil, err
	}
	s.invalidatePriceCache(ctx, req.Name)

	billed, err := s.invoiceRepo.TotalBilled(ctx, medicine.Name)
	if err != nil {
		return nil, err
	}
	return medicineToResponse(medicine, billed), nil
}

func (s *medicineService) Get(ctx context.Context, name string) (*dto.MedicineResponse, error) {
	medicine, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUnknownMedicine
		}
		return nil, err
	}
	billed, err := s.invoiceRepo.TotalBilled(ctx, name)
	if err != nil {
		return nil, err
	}
	return medicineToResponse(medicine, billed), nil
}

// List returns the catalog with derived stock columns, computing all billed
// totals in one aggregation instead of one query per medicine.
func (s *medicineService) List(ctx context.Context) ([]dto.MedicineResponse, error) {
	medicines, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	billedByName, err := s.invoiceRepo.TotalBilledByMedicine(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MedicineResponse, 0, len(medicines))
	for i := range medicines {
		out = append(out, *medicineToResponse(&medicines[i], billedByName[medicines[i].Name]))
	}
	return out, nil
}

// Delete removes the catalog record. Invoices keep their snapshotted copies
// of the medicine's fields, so history is unaffected.
func (s *medicineService) Delete(ctx context.Context, name string) error {
	if _, err := s.repo.FindByName(ctx, name); err != nil {
		if isNotFound(err) {
			return ErrUnknownMedicine
		}
		return err
	}
	if err := s.repo.DeleteByName(ctx, name); err != nil {
		return err
	}
	s.invalidatePriceCache(ctx, name)
	return nil
}

// invalidatePriceCache drops the public price-check cache entry so a catalog
// edit is visible immediately. Best effort.
func (s *medicineService) invalidatePriceCache(ctx context.Context, name string) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, "price:"+name).Err()
}

func medicineToResponse(m *model.Medicine, totalBilled int64) *dto.MedicineResponse {
	pos := DerivePosition(m, totalBilled)
	return &dto.MedicineResponse{
		Name:            m.Name,
		OpeningStock:    m.OpeningStock,
		Sampling:        m.Sampling,
		Quantity:        m.Quantity,
		BatchNumber:     m.BatchNumber,
		HSNCode:         m.HSNCode,
		ExpiryDate:      m.ExpiryDate,
		PurchaseRate:    m.PurchaseRate,
		BaseSellingRate: m.BaseSellingRate,
		MRP:             m.MRP,
		TotalBilled:     pos.TotalBilled,
		InHandStock:     pos.InHand,
		Oversold:        pos.Oversold,
	}
}
