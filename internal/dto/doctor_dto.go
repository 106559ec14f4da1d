package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateDoctorRequest struct {
	Name            string `json:"name"             validate:"required,min=1,max=120"`
	ShippingAddress string `json:"shipping_address"`
}

type UpdateDoctorRequest struct {
	ShippingAddress string `json:"shipping_address"`
}

// SetPriceRequest sets a doctor's custom price for one medicine.
// Price must be positive — clearing an override is a separate DELETE.
type SetPriceRequest struct {
	Price int64 `json:"price" validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DoctorResponse struct {
	Name            string `json:"name"`
	ShippingAddress string `json:"shipping_address"`
	// CustomPrices maps medicine name → override price. Medicines absent
	// from the map are charged their base selling rate.
	CustomPrices map[string]int64 `json:"custom_prices"`
}

// ResolvedPriceResponse is the effective unit price a doctor pays for a
// medicine: the override if one exists, else the base selling rate.
type ResolvedPriceResponse struct {
	DoctorName   string `json:"doctor_name"`
	MedicineName string `json:"medicine_name"`
	Price        int64  `json:"price"`
	Overridden   bool   `json:"overridden"`
}

// PriceChangeItem is one immutable entry of a doctor's price-change history.
type PriceChangeItem struct {
	MedicineName string `json:"medicine_name"`
	PriceBefore  *int64 `json:"price_before"`
	PriceAfter   *int64 `json:"price_after"`
	Reason       string `json:"reason"`
	CreatedAt    string `json:"created_at"`
}

type PriceChangeListResponse struct {
	Data  []PriceChangeItem `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// LedgerSummaryResponse is the derived credit position of one doctor.
type LedgerSummaryResponse struct {
	DoctorName         string `json:"doctor_name"`
	TotalCredit        int64  `json:"total_credit"`
	TotalPaid          int64  `json:"total_paid"`
	OutstandingBalance int64  `json:"outstanding_balance"`
}
