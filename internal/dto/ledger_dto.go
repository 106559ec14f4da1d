package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RecordPaymentRequest applies a payment to a credit invoice.
// Amount is whole rupees; PaymentDate is the business date.
type RecordPaymentRequest struct {
	Amount      int64  `json:"amount"       validate:"required,min=1"`
	PaymentDate string `json:"payment_date" validate:"required,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// PaymentRecordResponse is one immutable entry of an invoice's payment history.
type PaymentRecordResponse struct {
	InvoiceNumber int64  `json:"invoice_number"`
	Amount        int64  `json:"amount"`
	PaymentDate   string `json:"payment_date"`
	CreatedAt     string `json:"created_at"`
}

// PaymentResultResponse reflects the invoice position after a payment.
type PaymentResultResponse struct {
	InvoiceNumber int64 `json:"invoice_number"`
	AmountPaid    int64 `json:"amount_paid"`
	AmountDue     int64 `json:"amount_due"`
}
