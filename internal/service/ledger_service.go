package service

import (
	"context"
	"time"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/dto"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/repository"

	"gorm.io/gorm"
)

// LedgerService records payments against credit invoices and derives
// per-invoice and per-doctor outstanding balances. The payment history is
// append-only: records are never edited, reordered or (outside wholesale
// invoice deletion) removed, and the sum of an invoice's records always
// equals its AmountPaid.
type LedgerService interface {
	RecordPayment(ctx context.Context, invoiceNumber int64, req dto.RecordPaymentRequest) (*dto.PaymentResultResponse, error)
	InvoicePayments(ctx context.Context, invoiceNumber int64) ([]dto.PaymentRecordResponse, error)
	DoctorLedgerSummary(ctx context.Context, doctorName string) (*dto.LedgerSummaryResponse, error)
}

type ledgerService struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	doctorRepo  repository.DoctorRepository
}

func NewLedgerService(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	doctorRepo repository.DoctorRepository,
) LedgerService {
	return &ledgerService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		doctorRepo:  doctorRepo,
	}
}

// RecordPayment applies one payment to an invoice. Failures leave the
// invoice untouched: the record append and the balance shift commit
// together, and the balance shift is a conditional update against the
// live AmountDue, so a payment racing another can never push AmountPaid
// past GrandTotal. The pre-check gives a clean error for the common
// single-writer case; the in-transaction guard is what holds under
// concurrency.
func (s *ledgerService) RecordPayment(ctx context.Context, invoiceNumber int64, req dto.RecordPaymentRequest) (*dto.PaymentResultResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	invoice, err := s.invoiceRepo.FindByNumber(ctx, invoiceNumber)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUnknownInvoice
		}
		return nil, err
	}
	if req.Amount > invoice.AmountDue {
		return nil, ErrOverpayment
	}

	txErr := runTx(ctx, s.invoiceRepo.DB(), func(tx *gorm.DB) error {
		rows, err := s.invoiceRepo.ApplyPaymentTx(tx, invoiceNumber, req.Amount)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Another payment landed first and the balance no longer
			// covers this one.
			return ErrOverpayment
		}
		return s.paymentRepo.CreateTx(tx, &model.PaymentRecord{
			InvoiceNumber: invoiceNumber,
			Amount:        req.Amount,
			PaymentDate:   req.PaymentDate,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	updated, err := s.invoiceRepo.FindByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	return &dto.PaymentResultResponse{
		InvoiceNumber: invoiceNumber,
		AmountPaid:    updated.AmountPaid,
		AmountDue:     updated.AmountDue,
	}, nil
}

// InvoicePayments returns the invoice's payment history in insertion order.
func (s *ledgerService) InvoicePayments(ctx context.Context, invoiceNumber int64) ([]dto.PaymentRecordResponse, error) {
	if _, err := s.invoiceRepo.FindByNumber(ctx, invoiceNumber); err != nil {
		if isNotFound(err) {
			return nil, ErrUnknownInvoice
		}
		return nil, err
	}
	records, err := s.paymentRepo.ListByInvoice(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, paymentToResponse(&rec))
	}
	return out, nil
}

// DoctorLedgerSummary aggregates the doctor's full invoice set:
// totalCredit = Σ grandTotal, totalPaid = Σ amountPaid, outstanding is the
// difference. Derived fresh on every call.
func (s *ledgerService) DoctorLedgerSummary(ctx context.Context, doctorName string) (*dto.LedgerSummaryResponse, error) {
	if _, err := s.doctorRepo.FindByName(ctx, doctorName); err != nil {
		if isNotFound(err) {
			return nil, ErrUnknownDoctor
		}
		return nil, err
	}
	invoices, err := s.invoiceRepo.FindByDoctor(ctx, doctorName)
	if err != nil {
		return nil, err
	}

	var totalCredit, totalPaid int64
	for _, inv := range invoices {
		totalCredit += inv.GrandTotal
		totalPaid += inv.AmountPaid
	}
	return &dto.LedgerSummaryResponse{
		DoctorName:         doctorName,
		TotalCredit:        totalCredit,
		TotalPaid:          totalPaid,
		OutstandingBalance: totalCredit - totalPaid,
	}, nil
}

func paymentToResponse(rec *model.PaymentRecord) dto.PaymentRecordResponse {
	return dto.PaymentRecordResponse{
		InvoiceNumber: rec.InvoiceNumber,
		Amount:        rec.Amount,
		PaymentDate:   rec.PaymentDate,
		CreatedAt:     rec.CreatedAt.Format(time.RFC3339),
	}
}
