package service

import (
	"context"
	"testing"
	"time"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/dto"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRoundTrip(t *testing.T) {
	svc := NewSettingsService(&stubSettingsRepo{})
	ctx := context.Background()

	// Unset settings read back as all-empty, not an error.
	empty, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Name)

	saved, err := svc.Update(ctx, dto.UpdateFirmSettingsRequest{
		Name:      "City Pharmacy",
		Address:   "12 MG Road, Pune",
		GSTIN:     "27ABCDE1234F1Z5",
		DILNumber: "MH-PUN-123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "City Pharmacy", saved.Name)

	read, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, read)

	// A second update overwrites in place, it does not create a second row.
	again, err := svc.Update(ctx, dto.UpdateFirmSettingsRequest{Name: "Town Pharmacy"})
	require.NoError(t, err)
	assert.Equal(t, "Town Pharmacy", again.Name)
	assert.Empty(t, again.GSTIN)
}

func TestBackupSnapshotCoversAllStores(t *testing.T) {
	medicineRepo := newStubMedicineRepo(
		&model.Medicine{Name: "Paracetamol", OpeningStock: 100, PurchaseRate: 12, BaseSellingRate: 20},
	)
	doctorRepo := newStubDoctorRepo("Dr. Sharma")
	invoiceRepo := newStubInvoiceRepo()
	paymentRepo := &stubPaymentRepo{}
	settingsRepo := &stubSettingsRepo{settings: &model.FirmSettings{Name: "City Pharmacy"}}

	pricing := NewPricingService(doctorRepo, medicineRepo, &stubPriceChangeRepo{})
	medicines := NewMedicineService(medicineRepo, invoiceRepo, nil)
	doctors := NewDoctorService(doctorRepo)
	invoices := NewInvoiceService(invoiceRepo, paymentRepo, doctorRepo, medicineRepo, pricing, nil)
	ledger := NewLedgerService(invoiceRepo, paymentRepo, doctorRepo)
	settings := NewSettingsService(settingsRepo)

	ctx := context.Background()
	inv, err := invoices.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		DoctorName:  "Dr. Sharma",
		PaymentType: model.PaymentTypeCredit,
		Items:       []dto.InvoiceItemRequest{{MedicineName: "Paracetamol", Quantity: 5}},
	})
	require.NoError(t, err)
	_, err = ledger.RecordPayment(ctx, inv.InvoiceNumber, dto.RecordPaymentRequest{Amount: 40, PaymentDate: "2026-08-29"})
	require.NoError(t, err)

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	backup := NewBackupService(medicines, doctors, invoices, settings, paymentRepo).(*backupService)
	backup.now = func() time.Time { return now }

	snap, err := backup.Snapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, "1", snap.Version)
	assert.Equal(t, now.Format(time.RFC3339), snap.Timestamp)
	require.NotNil(t, snap.FirmSettings)
	assert.Equal(t, "City Pharmacy", snap.FirmSettings.Name)
	require.Len(t, snap.Medicines, 1)
	require.Len(t, snap.Doctors, 1)
	require.Len(t, snap.Invoices, 1)
	require.Len(t, snap.PaymentRecords, 1)
	assert.Equal(t, inv.InvoiceNumber, snap.PaymentRecords[0].InvoiceNumber)
	require.Len(t, snap.PaymentRecords[0].Payments, 1)
	assert.Equal(t, int64(40), snap.PaymentRecords[0].Payments[0].Amount)
}
