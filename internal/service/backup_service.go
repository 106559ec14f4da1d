package service

import (
	"context"
	"sort"
	"time"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/dto"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/repository"
)

// backupVersion tags the snapshot layout so external tooling can detect
// incompatible exports.
const backupVersion = "1"

// BackupService assembles a versioned full-store snapshot from every
// repository. The snapshot is read-only; restore is an external concern.
type BackupService interface {
	Snapshot(ctx context.Context) (*dto.BackupResponse, error)
}

type backupService struct {
	medicines MedicineService
	doctors   DoctorService
	invoices  InvoiceService
	settings  SettingsService
	payments  repository.PaymentRepository
	now       func() time.Time
}

func NewBackupService(
	medicines MedicineService,
	doctors DoctorService,
	invoices InvoiceService,
	settings SettingsService,
	payments repository.PaymentRepository,
) BackupService {
	return &backupService{
		medicines: medicines,
		doctors:   doctors,
		invoices:  invoices,
		settings:  settings,
		payments:  payments,
		now:       time.Now,
	}
}

func (s *backupService) Snapshot(ctx context.Context) (*dto.BackupResponse, error) {
	medicines, err := s.medicines.List(ctx)
	if err != nil {
		return nil, err
	}
	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoices.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	firm, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.payments.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byInvoice := make(map[int64][]dto.PaymentRecordResponse)
	for i := range records {
		rec := paymentToResponse(&records[i])
		byInvoice[rec.InvoiceNumber] = append(byInvoice[rec.InvoiceNumber], rec)
	}
	numbers := make([]int64, 0, len(byInvoice))
	for n := range byInvoice {
		numbers = append(numbers, n)
	}
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	grouped := make([]dto.InvoicePayments, 0, len(numbers))
	for _, n := range numbers {
		grouped = append(grouped, dto.InvoicePayments{InvoiceNumber: n, Payments: byInvoice[n]})
	}

	return &dto.BackupResponse{
		Version:        backupVersion,
		Timestamp:      s.now().UTC().Format(time.RFC3339),
		FirmSettings:   firm,
		Medicines:      medicines,
		Doctors:        doctors,
		Invoices:       invoices.Data,
		PaymentRecords: grouped,
	}, nil
}
