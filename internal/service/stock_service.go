package service

import (
	"context"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/repository"
)

// StockPosition is the derived stock state of one medicine.
// InHand = OpeningStock − TotalBilled − Sampling. It may go negative:
// pharmacies may oversell against expected restocking, so a negative value
// is a warning surfaced via Oversold, never a failure.
type StockPosition struct {
	TotalBilled int64
	InHand      int64
	Oversold    bool
}

// StockService maintains the derived stock ledger. Billed quantities are
// recomputed from the live invoice set on every call rather than kept as a
// running counter, so invoice deletion restocks automatically and the
// numbers can never drift.
type StockService interface {
	TotalBilled(ctx context.Context, medicineName string) (int64, error)
	Position(ctx context.Context, medicineName string) (*StockPosition, error)
	UpdateOpeningStock(ctx context.Context, medicineName string, value int64) error
	UpdateSampling(ctx context.Context, medicineName string, value int64) error
	ReduceStock(ctx context.Context, medicineName string, quantity int64) error
}

type stockService struct {
	medicineRepo repository.MedicineRepository
	invoiceRepo  repository.InvoiceRepository
}

func NewStockService(medicineRepo repository.MedicineRepository, invoiceRepo repository.InvoiceRepository) StockService {
	return &stockService{medicineRepo: medicineRepo, invoiceRepo: invoiceRepo}
}

func (s *stockService) TotalBilled(ctx context.Context, medicineName string) (int64, error) {
	if _, err := s.medicineRepo.FindByName(ctx, medicineName); err != nil {
		if isNotFound(err) {
			return 0, ErrUnknownMedicine
		}
		return 0, err
	}
	return s.invoiceRepo.TotalBilled(ctx, medicineName)
}

func (s *stockService) Position(ctx context.Context, medicineName string) (*StockPosition, error) {
	medicine, err := s.medicineRepo.FindByName(ctx, medicineName)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUnknownMedicine
		}
		return nil, err
	}
	billed, err := s.invoiceRepo.TotalBilled(ctx, medicineName)
	if err != nil {
		return nil, err
	}
	return DerivePosition(medicine, billed), nil
}

// DerivePosition computes the stock position from a medicine record and its
// cumulative billed quantity.
func DerivePosition(m *model.Medicine, totalBilled int64) *StockPosition {
	inHand := m.OpeningStock - totalBilled - m.Sampling
	return &StockPosition{
		TotalBilled: totalBilled,
		InHand:      inHand,
		Oversold:    inHand < 0,
	}
}

// UpdateOpeningStock overwrites the declared starting inventory for the
// period. Past invoices are untouched.
func (s *stockService) UpdateOpeningStock(ctx context.Context, medicineName string, value int64) error {
	if value < 0 {
		return ErrInvalidQuantity
	}
	medicine, err := s.medicineRepo.FindByName(ctx, medicineName)
	if err != nil {
		if isNotFound(err) {
			return ErrUnknownMedicine
		}
		return err
	}
	medicine.OpeningStock = value
	return s.medicineRepo.Save(ctx, medicine)
}

// UpdateSampling overwrites the free-units counter. Past invoices are untouched.
func (s *stockService) UpdateSampling(ctx context.Context, medicineName string, value int64) error {
	if value < 0 {
		return ErrInvalidQuantity
	}
	medicine, err := s.medicineRepo.FindByName(ctx, medicineName)
	if err != nil {
		if isNotFound(err) {
			return ErrUnknownMedicine
		}
		return err
	}
	medicine.Sampling = value
	return s.medicineRepo.Save(ctx, medicine)
}

// ReduceStock decrements the raw purchasable stock counter. The counter may
// go negative for the same reason in-hand stock may: overselling is allowed.
func (s *stockService) ReduceStock(ctx context.Context, medicineName string, quantity int64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	medicine, err := s.medicineRepo.FindByName(ctx, medicineName)
	if err != nil {
		if isNotFound(err) {
			return ErrUnknownMedicine
		}
		return err
	}
	medicine.Quantity -= quantity
	return s.medicineRepo.Save(ctx, medicine)
}
