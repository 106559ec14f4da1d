package service

import (
	"context"
	"testing"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/dto"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMedicineFixture() (MedicineService, *stubMedicineRepo, *stubInvoiceRepo) {
	medicineRepo := newStubMedicineRepo()
	invoiceRepo := newStubInvoiceRepo()
	return NewMedicineService(medicineRepo, invoiceRepo, nil), medicineRepo, invoiceRepo
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	svc, _, _ := newMedicineFixture()
	ctx := context.Background()

	created, err := svc.Upsert(ctx, dto.UpsertMedicineRequest{
		Name:            "Paracetamol",
		OpeningStock:    100,
		PurchaseRate:    12,
		BaseSellingRate: 20,
		MRP:             25,
		BatchNumber:     "PCM-01",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), created.OpeningStock)
	assert.Equal(t, int64(100), created.InHandStock)

	// Same name — full overwrite of every field.
	updated, err := svc.Upsert(ctx, dto.UpsertMedicineRequest{
		Name:            "Paracetamol",
		OpeningStock:    150,
		PurchaseRate:    13,
		BaseSellingRate: 22,
		MRP:             28,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(150), updated.OpeningStock)
	assert.Equal(t, int64(22), updated.BaseSellingRate)
	assert.Empty(t, updated.BatchNumber) // overwritten with the new (empty) value

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListIncludesDerivedStock(t *testing.T) {
	svc, _, invoiceRepo := newMedicineFixture()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, dto.UpsertMedicineRequest{Name: "Paracetamol", OpeningStock: 100, Sampling: 10})
	require.NoError(t, err)

	seedInvoice(t, invoiceRepo, 1, "Paracetamol", 120)

	resp, err := svc.Get(ctx, "Paracetamol")
	require.NoError(t, err)
	assert.Equal(t, int64(120), resp.TotalBilled)
	assert.Equal(t, int64(-30), resp.InHandStock)
	assert.True(t, resp.Oversold)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(120), all[0].TotalBilled)
}

func TestDeleteMedicineKeepsInvoiceSnapshots(t *testing.T) {
	svc, _, invoiceRepo := newMedicineFixture()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, dto.UpsertMedicineRequest{Name: "Paracetamol", OpeningStock: 100})
	require.NoError(t, err)
	seedInvoice(t, invoiceRepo, 1, "Paracetamol", 5)

	require.NoError(t, svc.Delete(ctx, "Paracetamol"))

	_, err = svc.Get(ctx, "Paracetamol")
	assert.ErrorIs(t, err, ErrUnknownMedicine)

	// The invoice item survives the catalog deletion.
	inv, err := invoiceRepo.FindByNumber(ctx, 1)
	require.NoError(t, err)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Paracetamol", inv.Items[0].MedicineName)

	assert.ErrorIs(t, svc.Delete(ctx, "Paracetamol"), ErrUnknownMedicine)
}

func TestMedicineNamesAreDistinctRecords(t *testing.T) {
	svc, medicineRepo, _ := newMedicineFixture()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, dto.UpsertMedicineRequest{Name: "Paracetamol 500mg", BaseSellingRate: 20})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, dto.UpsertMedicineRequest{Name: "Paracetamol 650mg", BaseSellingRate: 28})
	require.NoError(t, err)

	assert.Len(t, medicineRepo.medicines, 2)
}

func TestDoctorServiceCRUD(t *testing.T) {
	doctorRepo := newStubDoctorRepo()
	svc := NewDoctorService(doctorRepo)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateDoctorRequest{Name: "Dr. Sharma", ShippingAddress: "12 MG Road"})
	require.NoError(t, err)
	assert.Equal(t, "12 MG Road", created.ShippingAddress)
	assert.Empty(t, created.CustomPrices)

	_, err = svc.Create(ctx, dto.CreateDoctorRequest{Name: "Dr. Sharma"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	updated, err := svc.Update(ctx, "Dr. Sharma", dto.UpdateDoctorRequest{ShippingAddress: "4 Lake View"})
	require.NoError(t, err)
	assert.Equal(t, "4 Lake View", updated.ShippingAddress)

	_, err = svc.Update(ctx, "Dr. Nobody", dto.UpdateDoctorRequest{})
	assert.ErrorIs(t, err, ErrUnknownDoctor)

	require.NoError(t, svc.Delete(ctx, "Dr. Sharma"))
	_, err = svc.Get(ctx, "Dr. Sharma")
	assert.ErrorIs(t, err, ErrUnknownDoctor)
}

func TestDoctorResponseCarriesOverrides(t *testing.T) {
	medicineRepo := newStubMedicineRepo(&model.Medicine{Name: "Paracetamol", BaseSellingRate: 20})
	doctorRepo := newStubDoctorRepo("Dr. Sharma")
	pricing := NewPricingService(doctorRepo, medicineRepo, &stubPriceChangeRepo{})
	svc := NewDoctorService(doctorRepo)
	ctx := context.Background()

	require.NoError(t, pricing.SetOverride(ctx, "Dr. Sharma", "Paracetamol", 15))

	resp, err := svc.Get(ctx, "Dr. Sharma")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Paracetamol": 15}, resp.CustomPrices)
}
