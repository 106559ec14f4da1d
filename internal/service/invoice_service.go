package service

import (
	"context"
	"time"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/dto"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/repository"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/worker"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// gstRatePct is the flat GST percentage applied on the invoice subtotal.
const gstRatePct = 5

type InvoiceService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, number int64) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context) (*dto.InvoiceListResponse, error)
	DeleteInvoice(ctx context.Context, number int64) error
}

type invoiceService struct {
	repo         repository.InvoiceRepository
	paymentRepo  repository.PaymentRepository
	doctorRepo   repository.DoctorRepository
	medicineRepo repository.MedicineRepository
	pricing      PricingService
	dispatcher   *worker.Dispatcher
}

func NewInvoiceService(
	repo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	doctorRepo repository.DoctorRepository,
	medicineRepo repository.MedicineRepository,
	pricing PricingService,
	dispatcher *worker.Dispatcher,
) InvoiceService {
	return &invoiceService{
		repo:         repo,
		paymentRepo:  paymentRepo,
		doctorRepo:   doctorRepo,
		medicineRepo: medicineRepo,
		pricing:      pricing,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// gstOn returns round-half-up(subtotal × gstRatePct / 100) in whole rupees.
func gstOn(subtotal int64) int64 {
	return decimal.NewFromInt(subtotal).
		Mul(decimal.NewFromInt(gstRatePct)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// ── CreateInvoice ─────────────────────────────────────────────────────────────
// All-or-nothing:
//  1. Validate the doctor exists
//  2. Per item: validate medicine + quantity, resolve the doctor's price,
//     snapshot batch/HSN/expiry/purchase rate from the current Medicine
//  3. Compute line amounts and profit, subtotal, GST, grand total
//  4. Draw the next invoice number from the sequence inside the transaction
//  5. Persist invoice + items; cash invoices are fully paid at creation
//
// Medicine rows are not touched: billed quantity is derived from the invoice
// set, never decremented in place. After commit, a PDF job is enqueued
// best-effort.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if _, err := s.doctorRepo.FindByName(ctx, req.DoctorName); err != nil {
		if isNotFound(err) {
			return nil, ErrUnknownDoctor
		}
		return nil, err
	}

	// Resolve prices and snapshot catalog fields before opening the
	// transaction. Every line stays its own line — duplicates of the same
	// medicine are not merged, and input order is preserved.
	items := make([]model.InvoiceItem, 0, len(req.Items))
	var subtotal, totalProfit int64
	for i, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		medicine, err := s.medicineRepo.FindByName(ctx, line.MedicineName)
		if err != nil {
			if isNotFound(err) {
				return nil, ErrUnknownMedicine
			}
			return nil, err
		}
		price, _, err := s.pricing.ResolvePrice(ctx, req.DoctorName, line.MedicineName)
		if err != nil {
			return nil, err
		}

		amount := price * line.Quantity
		profit := (price - medicine.PurchaseRate) * line.Quantity
		subtotal += amount
		totalProfit += profit

		items = append(items, model.InvoiceItem{
			Position:     i,
			MedicineName: medicine.Name,
			BatchNumber:  medicine.BatchNumber,
			HSNCode:      medicine.HSNCode,
			ExpiryDate:   medicine.ExpiryDate,
			Quantity:     line.Quantity,
			SellingPrice: price,
			PurchaseRate: medicine.PurchaseRate,
			Amount:       amount,
			Profit:       profit,
		})
	}

	gstAmount := gstOn(subtotal)
	grandTotal := subtotal + gstAmount

	var amountPaid, amountDue int64
	if req.PaymentType == model.PaymentTypeCash {
		amountPaid, amountDue = grandTotal, 0
	} else {
		amountPaid, amountDue = 0, grandTotal
	}

	var invoice model.Invoice
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		number, err := s.repo.NextInvoiceNumber(ctx, tx)
		if err != nil {
			return err
		}

		invoice = model.Invoice{
			InvoiceNumber: number,
			DoctorName:    req.DoctorName,
			PaymentType:   req.PaymentType,
			Subtotal:      subtotal,
			GSTAmount:     gstAmount,
			GrandTotal:    grandTotal,
			TotalProfit:   totalProfit,
			AmountPaid:    amountPaid,
			AmountDue:     amountDue,
			Items:         items,
		}
		return s.repo.Create(ctx, tx, &invoice)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async PDF generation — best-effort, fire and forget.
	if s.dispatcher != nil {
		payload := worker.InvoicePDFJobPayload{InvoiceNumber: invoice.InvoiceNumber}
		if req.Email != nil && *req.Email != "" {
			payload.Email = *req.Email
		}
		_ = s.dispatcher.EnqueueInvoicePDF(ctx, payload)
	}

	return invoiceToResponse(&invoice), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, number int64) (*dto.InvoiceResponse, error) {
	invoice, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUnknownInvoice
		}
		return nil, err
	}
	return invoiceToResponse(invoice), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context) (*dto.InvoiceListResponse, error) {
	invoices, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		data = append(data, *invoiceToResponse(&invoices[i]))
	}
	return &dto.InvoiceListResponse{Data: data, Total: int64(len(data))}, nil
}

// DeleteInvoice removes the invoice wholesale together with its items and
// payment history. Billed quantities are derived from live invoices, so
// deletion restocks the referenced medicines by construction.
func (s *invoiceService) DeleteInvoice(ctx context.Context, number int64) error {
	if _, err := s.repo.FindByNumber(ctx, number); err != nil {
		if isNotFound(err) {
			return ErrUnknownInvoice
		}
		return err
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.paymentRepo.DeleteByInvoiceTx(tx, number); err != nil {
			return err
		}
		return s.repo.DeleteByNumber(ctx, tx, number)
	})
}

func invoiceToResponse(inv *model.Invoice) *dto.InvoiceResponse {
	items := make([]dto.InvoiceItemResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, dto.InvoiceItemResponse{
			MedicineName: item.MedicineName,
			BatchNumber:  item.BatchNumber,
			HSNCode:      item.HSNCode,
			ExpiryDate:   item.ExpiryDate,
			Quantity:     item.Quantity,
			SellingPrice: item.SellingPrice,
			PurchaseRate: item.PurchaseRate,
			Amount:       item.Amount,
			Profit:       item.Profit,
		})
	}
	return &dto.InvoiceResponse{
		InvoiceNumber: inv.InvoiceNumber,
		DoctorName:    inv.DoctorName,
		PaymentType:   inv.PaymentType,
		Items:         items,
		Subtotal:      inv.Subtotal,
		GSTAmount:     inv.GSTAmount,
		GrandTotal:    inv.GrandTotal,
		TotalProfit:   inv.TotalProfit,
		AmountPaid:    inv.AmountPaid,
		AmountDue:     inv.AmountDue,
		CreatedAt:     inv.CreatedAt.Format(time.RFC3339),
	}
}
