package dto

// ProfitLossFilter is bound from the query string of GET /v1/reports/profit-loss.
type ProfitLossFilter struct {
	// Filter: all | daily (last 24h) | weekly (last 7 days) | monthly (last 30 days)
	Filter string `form:"filter,default=all" validate:"oneof=all daily weekly monthly"`
}

// ProfitLossResponse is the derived revenue/cost/margin summary.
// Revenue excludes GST (sum of invoice subtotals) so that NetProfit equals
// the sum of the invoices' recorded profits. ProfitMarginBps is basis points
// (10000 = 100%); zero when there is no revenue.
type ProfitLossResponse struct {
	Filter          string `json:"filter"`
	InvoiceCount    int64  `json:"invoice_count"`
	TotalRevenue    int64  `json:"total_revenue"`
	TotalCost       int64  `json:"total_cost"`
	NetProfit       int64  `json:"net_profit"`
	ProfitMarginBps int64  `json:"profit_margin_bps"`
}
