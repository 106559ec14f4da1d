package dto

// ─── Firm settings ───────────────────────────────────────────────────────────

// UpdateFirmSettingsRequest overwrites the firm letterhead data in place.
// The core persists and returns these fields verbatim.
type UpdateFirmSettingsRequest struct {
	Name                   string `json:"name"`
	Address                string `json:"address"`
	GSTIN                  string `json:"gstin"`
	Contact                string `json:"contact"`
	Email                  string `json:"email" validate:"omitempty,email"`
	DefaultShippingAddress string `json:"default_shipping_address"`
	DILNumber              string `json:"dil_number"`
}

type FirmSettingsResponse struct {
	Name                   string `json:"name"`
	Address                string `json:"address"`
	GSTIN                  string `json:"gstin"`
	Contact                string `json:"contact"`
	Email                  string `json:"email"`
	DefaultShippingAddress string `json:"default_shipping_address"`
	DILNumber              string `json:"dil_number"`
}

// ─── Backup ──────────────────────────────────────────────────────────────────

// InvoicePayments groups one invoice's payment history for the snapshot.
type InvoicePayments struct {
	InvoiceNumber int64                   `json:"invoice_number"`
	Payments      []PaymentRecordResponse `json:"payments"`
}

// BackupResponse is the versioned full-store snapshot returned by
// GET /v1/backup. The export file format consumed by external tooling is the
// caller's concern; this is the complete record set it draws from.
type BackupResponse struct {
	Version        string                `json:"version"`
	Timestamp      string                `json:"timestamp"`
	FirmSettings   *FirmSettingsResponse `json:"firm_settings,omitempty"`
	Medicines      []MedicineResponse    `json:"medicines"`
	Doctors        []DoctorResponse      `json:"doctors"`
	Invoices       []InvoiceResponse     `json:"invoices"`
	PaymentRecords []InvoicePayments     `json:"payment_records"`
}
