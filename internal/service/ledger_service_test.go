package service

import (
	"context"
	"testing"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/dto"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerFixture(t *testing.T) (LedgerService, InvoiceService, *stubInvoiceRepo) {
	t.Helper()
	medicineRepo := newStubMedicineRepo(
		&model.Medicine{Name: "Paracetamol", PurchaseRate: 12, BaseSellingRate: 20},
	)
	doctorRepo := newStubDoctorRepo("Dr. Sharma")
	invoiceRepo := newStubInvoiceRepo()
	paymentRepo := &stubPaymentRepo{}
	pricing := NewPricingService(doctorRepo, medicineRepo, &stubPriceChangeRepo{})
	invoices := NewInvoiceService(invoiceRepo, paymentRepo, doctorRepo, medicineRepo, pricing, nil)
	ledger := NewLedgerService(invoiceRepo, paymentRepo, doctorRepo)
	return ledger, invoices, invoiceRepo
}

func creditInvoice(t *testing.T, svc InvoiceService, qty int64) *dto.InvoiceResponse {
	t.Helper()
	resp, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		DoctorName:  "Dr. Sharma",
		PaymentType: model.PaymentTypeCredit,
		Items:       []dto.InvoiceItemRequest{{MedicineName: "Paracetamol", Quantity: qty}},
	})
	require.NoError(t, err)
	return resp
}

func TestRecordPartialPayments(t *testing.T) {
	ledger, invoices, _ := newLedgerFixture(t)
	ctx := context.Background()

	inv := creditInvoice(t, invoices, 5) // grand total 105
	require.Equal(t, int64(105), inv.AmountDue)

	res, err := ledger.RecordPayment(ctx, inv.InvoiceNumber, dto.RecordPaymentRequest{Amount: 50, PaymentDate: "2026-08-01"})
	require.NoError(t, err)
	assert.Equal(t, int64(50), res.AmountPaid)
	assert.Equal(t, int64(55), res.AmountDue)

	res, err = ledger.RecordPayment(ctx, inv.InvoiceNumber, dto.RecordPaymentRequest{Amount: 55, PaymentDate: "2026-08-15"})
	require.NoError(t, err)
	assert.Equal(t, int64(105), res.AmountPaid)
	assert.Zero(t, res.AmountDue)
}

func TestOverpaymentRejectedAtomically(t *testing.T) {
	ledger, invoices, _ := newLedgerFixture(t)
	ctx := context.Background()

	inv := creditInvoice(t, invoices, 5) // grand total 105

	_, err := ledger.RecordPayment(ctx, inv.InvoiceNumber, dto.RecordPaymentRequest{Amount: 50, PaymentDate: "2026-08-01"})
	require.NoError(t, err)

	// 56 > 55 remaining — reject, and leave both ledgers untouched.
	_, err = ledger.RecordPayment(ctx, inv.InvoiceNumber, dto.RecordPaymentRequest{Amount: 56, PaymentDate: "2026-08-02"})
	assert.ErrorIs(t, err, ErrOverpayment)

	after, err := invoices.GetInvoice(ctx, inv.InvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, int64(50), after.AmountPaid)
	assert.Equal(t, int64(55), after.AmountDue)

	history, err := ledger.InvoicePayments(ctx, inv.InvoiceNumber)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

// snapshotInvoiceRepo serves FindByNumber from a balance frozen at
// construction time while writes go through to the live store. This is
// the interleaving of two simultaneous payments: each reads the invoice
// before the other commits.
type snapshotInvoiceRepo struct {
	*stubInvoiceRepo
	frozen map[int64]model.Invoice
}

func freezeInvoices(r *stubInvoiceRepo) *snapshotInvoiceRepo {
	frozen := make(map[int64]model.Invoice, len(r.invoices))
	for n, inv := range r.invoices {
		frozen[n] = *inv
	}
	return &snapshotInvoiceRepo{stubInvoiceRepo: r, frozen: frozen}
}

func (r *snapshotInvoiceRepo) FindByNumber(_ context.Context, number int64) (*model.Invoice, error) {
	if inv, ok := r.frozen[number]; ok {
		cp := inv
		return &cp, nil
	}
	return nil, errStubNotFound
}

func TestSimultaneousFullPaymentsCannotDoublePay(t *testing.T) {
	ledger, invoices, invoiceRepo := newLedgerFixture(t)
	ctx := context.Background()

	inv := creditInvoice(t, invoices, 5) // grand total 105

	// Both payments observe the invoice fully due before either settles.
	racingLedger := NewLedgerService(freezeInvoices(invoiceRepo), &stubPaymentRepo{}, newStubDoctorRepo("Dr. Sharma"))

	_, err := ledger.RecordPayment(ctx, inv.InvoiceNumber, dto.RecordPaymentRequest{Amount: 105, PaymentDate: "2026-08-01"})
	require.NoError(t, err)

	// The second payment's stale snapshot passes the pre-check; the
	// conditional balance update must still refuse it.
	_, err = racingLedger.RecordPayment(ctx, inv.InvoiceNumber, dto.RecordPaymentRequest{Amount: 105, PaymentDate: "2026-08-01"})
	assert.ErrorIs(t, err, ErrOverpayment)

	after, err := invoices.GetInvoice(ctx, inv.InvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, int64(105), after.AmountPaid)
	assert.Zero(t, after.AmountDue)

	history, err := ledger.InvoicePayments(ctx, inv.InvoiceNumber)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, after.AmountPaid, history[0].Amount)
}

func TestRecordPaymentValidation(t *testing.T) {
	ledger, invoices, _ := newLedgerFixture(t)
	ctx := context.Background()

	inv := creditInvoice(t, invoices, 5)

	_, err := ledger.RecordPayment(ctx, inv.InvoiceNumber, dto.RecordPaymentRequest{Amount: 0, PaymentDate: "2026-08-01"})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ledger.RecordPayment(ctx, 999, dto.RecordPaymentRequest{Amount: 10, PaymentDate: "2026-08-01"})
	assert.ErrorIs(t, err, ErrUnknownInvoice)

	_, err = ledger.InvoicePayments(ctx, 999)
	assert.ErrorIs(t, err, ErrUnknownInvoice)
}

func TestPaidPlusDueAlwaysEqualsGrandTotal(t *testing.T) {
	ledger, invoices, _ := newLedgerFixture(t)
	ctx := context.Background()

	inv := creditInvoice(t, invoices, 7) // subtotal 140, GST 7, grand total 147

	for _, amount := range []int64{40, 40, 40, 27} {
		res, err := ledger.RecordPayment(ctx, inv.InvoiceNumber, dto.RecordPaymentRequest{Amount: amount, PaymentDate: "2026-08-20"})
		require.NoError(t, err)
		assert.Equal(t, inv.GrandTotal, res.AmountPaid+res.AmountDue)
	}
}

func TestDoctorLedgerSummary(t *testing.T) {
	ledger, invoices, _ := newLedgerFixture(t)
	ctx := context.Background()

	first := creditInvoice(t, invoices, 5)  // 105
	second := creditInvoice(t, invoices, 2) // subtotal 40, GST 2, grand total 42

	_, err := ledger.RecordPayment(ctx, first.InvoiceNumber, dto.RecordPaymentRequest{Amount: 100, PaymentDate: "2026-08-10"})
	require.NoError(t, err)
	_, err = ledger.RecordPayment(ctx, second.InvoiceNumber, dto.RecordPaymentRequest{Amount: 42, PaymentDate: "2026-08-11"})
	require.NoError(t, err)

	summary, err := ledger.DoctorLedgerSummary(ctx, "Dr. Sharma")
	require.NoError(t, err)
	assert.Equal(t, int64(147), summary.TotalCredit)
	assert.Equal(t, int64(142), summary.TotalPaid)
	assert.Equal(t, int64(5), summary.OutstandingBalance)
	assert.Equal(t, summary.TotalCredit-summary.TotalPaid, summary.OutstandingBalance)

	_, err = ledger.DoctorLedgerSummary(ctx, "Dr. Nobody")
	assert.ErrorIs(t, err, ErrUnknownDoctor)
}
