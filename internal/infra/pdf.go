package infra

// pdf.go — Invoice PDF generation using go-pdf/fpdf.
// Renders an A4 GST invoice with:
//   - Firm letterhead (name, address, GSTIN, DL number)
//   - Invoice number, date and payment type
//   - Doctor name and shipping address
//   - Item table (medicine, batch, HSN, expiry, qty, rate, amount)
//   - Subtotal, GST 5% and bold grand total
//   - Amount paid / amount due for credit invoices
//
// The output file is saved to storagePath/invoice_{number}.pdf.
// Core fonts have no rupee glyph, so amounts are prefixed "Rs.".

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateInvoicePDF renders a finalized invoice to disk and returns the
// absolute path of the written file. firm may hold zero values when settings
// were never configured.
func GenerateInvoicePDF(inv *model.Invoice, firm *model.FirmSettings, shippingAddress, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("invoice_%d.pdf", inv.InvoiceNumber)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Letterhead ───────────────────────────────────────────────────────────
	firmName := firm.Name
	if firmName == "" {
		firmName = "Tax Invoice"
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 8, firmName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	if firm.Address != "" {
		pdf.CellFormat(contentW, 5, firm.Address, "", 1, "C", false, 0, "")
	}
	meta := ""
	if firm.GSTIN != "" {
		meta = "GSTIN: " + firm.GSTIN
	}
	if firm.DILNumber != "" {
		if meta != "" {
			meta += "   "
		}
		meta += "DL No: " + firm.DILNumber
	}
	if meta != "" {
		pdf.CellFormat(contentW, 5, meta, "", 1, "C", false, 0, "")
	}
	pdf.Ln(3)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Invoice info ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW/2, 6, fmt.Sprintf("Invoice No: %d", inv.InvoiceNumber), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 6, "Date: "+inv.CreatedAt.Format("02/01/2006"), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW/2, 5, "Billed to: "+inv.DoctorName, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Payment: "+inv.PaymentType, "", 1, "R", false, 0, "")
	if shippingAddress != "" {
		pdf.CellFormat(contentW, 5, "Ship to: "+shippingAddress, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Item table ───────────────────────────────────────────────────────────
	colMedicine := contentW * 0.30
	colBatch := contentW * 0.12
	colHSN := contentW * 0.10
	colExpiry := contentW * 0.12
	colQty := contentW * 0.08
	colRate := contentW * 0.13
	colAmount := contentW * 0.15

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(colMedicine, 6, "Medicine", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colBatch, 6, "Batch", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colHSN, 6, "HSN", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colExpiry, 6, "Expiry", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colQty, 6, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colRate, 6, "Rate", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colAmount, 6, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, item := range inv.Items {
		name := item.MedicineName
		if len(name) > 30 {
			name = name[:29] + "…"
		}
		pdf.CellFormat(colMedicine, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(colBatch, 5, item.BatchNumber, "", 0, "L", false, 0, "")
		pdf.CellFormat(colHSN, 5, item.HSNCode, "", 0, "L", false, 0, "")
		pdf.CellFormat(colExpiry, 5, item.ExpiryDate, "", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 5, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(colRate, 5, rupees(item.SellingPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(colAmount, 5, rupees(item.Amount), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	labelW := contentW - colAmount
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(labelW, 5, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(colAmount, 5, rupees(inv.Subtotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, 5, "GST (5%):", "", 0, "R", false, 0, "")
	pdf.CellFormat(colAmount, 5, rupees(inv.GSTAmount), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelW, 7, "Grand Total:", "", 0, "R", false, 0, "")
	pdf.CellFormat(colAmount, 7, rupees(inv.GrandTotal), "", 1, "R", false, 0, "")

	if inv.PaymentType == model.PaymentTypeCredit {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(labelW, 5, "Amount Paid:", "", 0, "R", false, 0, "")
		pdf.CellFormat(colAmount, 5, rupees(inv.AmountPaid), "", 1, "R", false, 0, "")
		pdf.CellFormat(labelW, 5, "Amount Due:", "", 0, "R", false, 0, "")
		pdf.CellFormat(colAmount, 5, rupees(inv.AmountDue), "", 1, "R", false, 0, "")
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 4, "This is a computer generated invoice.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

func rupees(amount int64) string {
	return fmt.Sprintf("Rs. %d", amount)
}
