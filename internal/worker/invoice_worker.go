package worker

// invoice_worker.go
// Processes invoice PDF jobs from QueueInvoicePDF.
// Renders the GST invoice with go-pdf/fpdf and, when the invoice carries a
// recipient email, chains an email job.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/infra"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/repository"

	"github.com/rs/zerolog/log"
)

// InvoicePDFJobPayload is the job envelope sent to QueueInvoicePDF.
type InvoicePDFJobPayload struct {
	InvoiceNumber int64  `json:"invoice_number"`
	Email         string `json:"email,omitempty"`
}

// InvoicePDFWorker renders invoice PDFs and optionally enqueues email
// delivery. PDF generation is retried with exponential backoff; a job that
// exhausts its retries lands in the DLQ.
type InvoicePDFWorker struct {
	invoiceRepo    repository.InvoiceRepository
	doctorRepo     repository.DoctorRepository
	settingsRepo   repository.SettingsRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewInvoicePDFWorker(
	invoiceRepo repository.InvoiceRepository,
	doctorRepo repository.DoctorRepository,
	settingsRepo repository.SettingsRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
) *InvoicePDFWorker {
	return &InvoicePDFWorker{
		invoiceRepo:    invoiceRepo,
		doctorRepo:     doctorRepo,
		settingsRepo:   settingsRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single invoice PDF job:
//  1. Parse InvoicePDFJobPayload from the job envelope
//  2. Fetch the invoice (with items) and the firm letterhead
//  3. Resolve the shipping address (doctor's own, else firm default)
//  4. Render the PDF with retries
//  5. Optionally enqueue an email job with the PDF attached
func (w *InvoicePDFWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload InvoicePDFJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("invoice_worker: invalid payload")
		return
	}

	invoice, err := w.invoiceRepo.FindByNumber(ctx, payload.InvoiceNumber)
	if err != nil {
		log.Error().Err(err).Int64("invoice_number", payload.InvoiceNumber).
			Msg("invoice_worker: invoice not found")
		return
	}

	firm, err := w.settingsRepo.Get(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("invoice_worker: failed to load firm settings")
	}
	if firm == nil {
		firm = &model.FirmSettings{}
	}

	shipping := firm.DefaultShippingAddress
	if doctor, derr := w.doctorRepo.FindByName(ctx, invoice.DoctorName); derr == nil && doctor.ShippingAddress != "" {
		shipping = doctor.ShippingAddress
	}

	var pdfPath string
	genErr := withRetry(ctx, 3, func(attempt int) error {
		path, err := infra.GenerateInvoicePDF(invoice, firm, shipping, w.pdfStoragePath)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).
				Int64("invoice_number", payload.InvoiceNumber).
				Msg("invoice_worker: PDF attempt failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})
	if genErr != nil {
		log.Error().Err(genErr).Int64("invoice_number", payload.InvoiceNumber).
			Msg("invoice_worker: PDF generation failed after all retries")
		parkFailedJob(ctx, w.dispatcher.Client(), QueueInvoicePDF, "invoice_pdf", raw,
			fmt.Sprintf("pdf generation failed: %v", genErr), 3)
		return
	}
	log.Info().Str("pdf", pdfPath).Int64("invoice_number", payload.InvoiceNumber).
		Msg("invoice_worker: PDF generated")

	if payload.Email == "" {
		return
	}
	emailJob := EmailJobPayload{
		ToEmail: payload.Email,
		Subject: fmt.Sprintf("Invoice #%d — %s", invoice.InvoiceNumber, firm.Name),
		Body: fmt.Sprintf("Please find attached invoice #%d dated %s.",
			invoice.InvoiceNumber, invoice.CreatedAt.Format("02 Jan 2006")),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("email", payload.Email).
			Msg("invoice_worker: failed to enqueue email")
	} else {
		log.Info().Str("email", payload.Email).Msg("invoice_worker: email job enqueued")
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
