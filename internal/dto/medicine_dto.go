package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// UpsertMedicineRequest creates a medicine or updates every mutable field of
// an existing one (matched by name — the name itself is immutable).
// All rates are whole rupees.
type UpsertMedicineRequest struct {
	Name            string `json:"name"              validate:"required,min=1,max=120"`
	OpeningStock    int64  `json:"opening_stock"     validate:"min=0"`
	Sampling        int64  `json:"sampling"          validate:"min=0"`
	Quantity        int64  `json:"quantity"          validate:"min=0"`
	BatchNumber     string `json:"batch_number"`
	HSNCode         string `json:"hsn_code"`
	ExpiryDate      string `json:"expiry_date"       validate:"omitempty,datetime=2006-01-02"`
	PurchaseRate    int64  `json:"purchase_rate"     validate:"min=0"`
	BaseSellingRate int64  `json:"base_selling_rate" validate:"min=0"`
	MRP             int64  `json:"mrp"               validate:"min=0"`
}

// StockValueRequest carries the new value for a single stock field
// (opening stock or sampling). Updates are prospective only.
type StockValueRequest struct {
	Value int64 `json:"value" validate:"min=0"`
}

// ReduceStockRequest decrements the raw purchasable stock counter.
type ReduceStockRequest struct {
	Quantity int64 `json:"quantity" validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// MedicineResponse includes the derived stock position alongside the stored
// fields. InHandStock = OpeningStock − TotalBilled − Sampling; it may be
// negative, in which case Oversold is set so callers can surface a warning.
type MedicineResponse struct {
	Name            string `json:"name"`
	OpeningStock    int64  `json:"opening_stock"`
	Sampling        int64  `json:"sampling"`
	Quantity        int64  `json:"quantity"`
	BatchNumber     string `json:"batch_number"`
	HSNCode         string `json:"hsn_code"`
	ExpiryDate      string `json:"expiry_date"`
	PurchaseRate    int64  `json:"purchase_rate"`
	BaseSellingRate int64  `json:"base_selling_rate"`
	MRP             int64  `json:"mrp"`
	TotalBilled     int64  `json:"total_billed"`
	InHandStock     int64  `json:"in_hand_stock"`
	Oversold        bool   `json:"oversold"`
}

// BilledQuantityResponse is returned by GET /v1/medicines/:name/billed.
type BilledQuantityResponse struct {
	Name        string `json:"name"`
	TotalBilled int64  `json:"total_billed"`
}

// PriceCheckResponse is returned by the public price check endpoint.
type PriceCheckResponse struct {
	Name            string `json:"name"`
	BaseSellingRate int64  `json:"base_selling_rate"`
	MRP             int64  `json:"mrp"`
	InHandStock     int64  `json:"in_hand_stock"`
}
