package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// InvoiceItemRequest is one requested line: medicine name and quantity.
// The unit price is resolved server-side (doctor override or base rate).
type InvoiceItemRequest struct {
	MedicineName string `json:"medicine_name" validate:"required"`
	Quantity     int64  `json:"quantity"      validate:"required,min=1"`
}

type CreateInvoiceRequest struct {
	DoctorName  string               `json:"doctor_name"  validate:"required"`
	Items       []InvoiceItemRequest `json:"items"        validate:"required,min=1,dive"`
	PaymentType string               `json:"payment_type" validate:"required,oneof=cash credit"`
	// Email: optional — when present, the invoice worker mails the PDF.
	Email *string `json:"email" validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InvoiceItemResponse struct {
	MedicineName string `json:"medicine_name"`
	BatchNumber  string `json:"batch_number"`
	HSNCode      string `json:"hsn_code"`
	ExpiryDate   string `json:"expiry_date"`
	Quantity     int64  `json:"quantity"`
	SellingPrice int64  `json:"selling_price"`
	PurchaseRate int64  `json:"purchase_rate"`
	Amount       int64  `json:"amount"`
	Profit       int64  `json:"profit"`
}

type InvoiceResponse struct {
	InvoiceNumber int64                 `json:"invoice_number"`
	DoctorName    string                `json:"doctor_name"`
	PaymentType   string                `json:"payment_type"`
	Items         []InvoiceItemResponse `json:"items"`
	Subtotal      int64                 `json:"subtotal"`
	GSTAmount     int64                 `json:"gst_amount"`
	GrandTotal    int64                 `json:"grand_total"`
	TotalProfit   int64                 `json:"total_profit"`
	AmountPaid    int64                 `json:"amount_paid"`
	AmountDue     int64                 `json:"amount_due"`
	CreatedAt     string                `json:"created_at"`
}

type InvoiceListResponse struct {
	Data  []InvoiceResponse `json:"data"`
	Total int64             `json:"total"`
}
