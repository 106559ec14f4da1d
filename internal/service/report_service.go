package service

import (
	"context"
	"time"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/dto"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/repository"

	"github.com/shopspring/decimal"
)

// Profit/loss time filters.
const (
	FilterAll     = "all"
	FilterDaily   = "daily"
	FilterWeekly  = "weekly"
	FilterMonthly = "monthly"
)

// ReportService computes revenue/cost/margin statistics over the invoice
// set. Pure read: no mutation, safe to call concurrently, and deterministic
// for a given invoice set and clock.
type ReportService interface {
	ProfitLossStats(ctx context.Context, filter string) (*dto.ProfitLossResponse, error)
}

type reportService struct {
	invoiceRepo repository.InvoiceRepository
	now         func() time.Time
}

func NewReportService(invoiceRepo repository.InvoiceRepository) ReportService {
	return &reportService{invoiceRepo: invoiceRepo, now: time.Now}
}

// NewReportServiceWithClock injects the clock; tests pin "now" to make the
// daily/weekly/monthly windows deterministic.
func NewReportServiceWithClock(invoiceRepo repository.InvoiceRepository, now func() time.Time) ReportService {
	return &reportService{invoiceRepo: invoiceRepo, now: now}
}

func (s *reportService) ProfitLossStats(ctx context.Context, filter string) (*dto.ProfitLossResponse, error) {
	var since time.Time
	switch filter {
	case FilterDaily:
		since = s.now().Add(-24 * time.Hour)
	case FilterWeekly:
		since = s.now().Add(-7 * 24 * time.Hour)
	case FilterMonthly:
		since = s.now().Add(-30 * 24 * time.Hour)
	default:
		filter = FilterAll // zero time = no filter
	}

	invoices, err := s.invoiceRepo.FindSince(ctx, since)
	if err != nil {
		return nil, err
	}

	// Revenue is the sum of subtotals (GST excluded) so that net profit
	// equals the sum of the invoices' recorded profits.
	var revenue, cost int64
	for _, inv := range invoices {
		revenue += inv.Subtotal
		for _, item := range inv.Items {
			cost += item.PurchaseRate * item.Quantity
		}
	}
	netProfit := revenue - cost

	var marginBps int64
	if revenue > 0 {
		marginBps = decimal.NewFromInt(netProfit).
			Mul(decimal.NewFromInt(10000)).
			Div(decimal.NewFromInt(revenue)).
			Round(0).
			IntPart()
	}

	return &dto.ProfitLossResponse{
		Filter:          filter,
		InvoiceCount:    int64(len(invoices)),
		TotalRevenue:    revenue,
		TotalCost:       cost,
		NetProfit:       netProfit,
		ProfitMarginBps: marginBps,
	}, nil
}
