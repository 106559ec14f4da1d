package service

import (
	"context"
	"errors"
	"testing"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPricingFixture() (PricingService, *stubPriceChangeRepo) {
	medicineRepo := newStubMedicineRepo(
		&model.Medicine{Name: "Paracetamol", BaseSellingRate: 20},
	)
	doctorRepo := newStubDoctorRepo("Dr. Sharma")
	changeRepo := &stubPriceChangeRepo{}
	return NewPricingService(doctorRepo, medicineRepo, changeRepo), changeRepo
}

func TestResolvePriceFallsBackToBaseRate(t *testing.T) {
	svc, _ := newPricingFixture()

	price, overridden, err := svc.ResolvePrice(context.Background(), "Dr. Sharma", "Paracetamol")
	require.NoError(t, err)
	assert.Equal(t, int64(20), price)
	assert.False(t, overridden)
}

// brokenPriceLookupRepo fails override lookups with an infrastructure
// error while everything else works.
type brokenPriceLookupRepo struct {
	*stubDoctorRepo
	lookupErr error
}

func (r *brokenPriceLookupRepo) FindPrice(context.Context, uuid.UUID, string) (*model.DoctorPrice, error) {
	return nil, r.lookupErr
}

func TestResolvePricePropagatesLookupFailure(t *testing.T) {
	medicineRepo := newStubMedicineRepo(
		&model.Medicine{Name: "Paracetamol", BaseSellingRate: 20},
	)
	lookupErr := errors.New("connection reset")
	doctorRepo := &brokenPriceLookupRepo{stubDoctorRepo: newStubDoctorRepo("Dr. Sharma"), lookupErr: lookupErr}
	svc := NewPricingService(doctorRepo, medicineRepo, &stubPriceChangeRepo{})

	// A failed override lookup must surface, not quietly fall back to the
	// base rate and snapshot the wrong price onto an invoice.
	_, _, err := svc.ResolvePrice(context.Background(), "Dr. Sharma", "Paracetamol")
	assert.ErrorIs(t, err, lookupErr)
	assert.NotErrorIs(t, err, ErrUnknownMedicine)
}

func TestSetOverrideTakesPrecedence(t *testing.T) {
	svc, _ := newPricingFixture()
	ctx := context.Background()

	require.NoError(t, svc.SetOverride(ctx, "Dr. Sharma", "Paracetamol", 12))

	price, overridden, err := svc.ResolvePrice(ctx, "Dr. Sharma", "Paracetamol")
	require.NoError(t, err)
	assert.Equal(t, int64(12), price)
	assert.True(t, overridden)
}

func TestClearOverrideRestoresBaseRate(t *testing.T) {
	svc, _ := newPricingFixture()
	ctx := context.Background()

	require.NoError(t, svc.SetOverride(ctx, "Dr. Sharma", "Paracetamol", 12))
	require.NoError(t, svc.ClearOverride(ctx, "Dr. Sharma", "Paracetamol"))

	price, overridden, err := svc.ResolvePrice(ctx, "Dr. Sharma", "Paracetamol")
	require.NoError(t, err)
	assert.Equal(t, int64(20), price)
	assert.False(t, overridden)

	// Clearing again is a no-op, not an error.
	require.NoError(t, svc.ClearOverride(ctx, "Dr. Sharma", "Paracetamol"))
}

func TestSetOverrideValidation(t *testing.T) {
	svc, _ := newPricingFixture()
	ctx := context.Background()

	assert.ErrorIs(t, svc.SetOverride(ctx, "Dr. Sharma", "Paracetamol", 0), ErrInvalidAmount)
	assert.ErrorIs(t, svc.SetOverride(ctx, "Dr. Nobody", "Paracetamol", 10), ErrUnknownDoctor)
	assert.ErrorIs(t, svc.SetOverride(ctx, "Dr. Sharma", "Ghost Pill", 10), ErrUnknownMedicine)

	_, _, err := svc.ResolvePrice(ctx, "Dr. Nobody", "Paracetamol")
	assert.ErrorIs(t, err, ErrUnknownDoctor)
	_, _, err = svc.ResolvePrice(ctx, "Dr. Sharma", "Ghost Pill")
	assert.ErrorIs(t, err, ErrUnknownMedicine)
}

func TestPriceHistoryRecordsSetAndClear(t *testing.T) {
	svc, changeRepo := newPricingFixture()
	ctx := context.Background()

	require.NoError(t, svc.SetOverride(ctx, "Dr. Sharma", "Paracetamol", 12))
	require.NoError(t, svc.SetOverride(ctx, "Dr. Sharma", "Paracetamol", 14))
	require.NoError(t, svc.ClearOverride(ctx, "Dr. Sharma", "Paracetamol"))

	require.Len(t, changeRepo.changes, 3)

	first := changeRepo.changes[0]
	assert.Equal(t, "set", first.Reason)
	assert.Nil(t, first.PriceBefore)
	require.NotNil(t, first.PriceAfter)
	assert.Equal(t, int64(12), *first.PriceAfter)

	second := changeRepo.changes[1]
	require.NotNil(t, second.PriceBefore)
	assert.Equal(t, int64(12), *second.PriceBefore)
	require.NotNil(t, second.PriceAfter)
	assert.Equal(t, int64(14), *second.PriceAfter)

	third := changeRepo.changes[2]
	assert.Equal(t, "clear", third.Reason)
	require.NotNil(t, third.PriceBefore)
	assert.Equal(t, int64(14), *third.PriceBefore)
	assert.Nil(t, third.PriceAfter)

	// Paged read, newest first.
	resp, err := svc.PriceHistory(ctx, "Dr. Sharma", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "clear", resp.Data[0].Reason)

	_, err = svc.PriceHistory(ctx, "Dr. Nobody", 1, 10)
	assert.ErrorIs(t, err, ErrUnknownDoctor)
}

func TestAllPrices(t *testing.T) {
	medicineRepo := newStubMedicineRepo(
		&model.Medicine{Name: "Paracetamol", BaseSellingRate: 20},
		&model.Medicine{Name: "Cetirizine", BaseSellingRate: 15},
	)
	doctorRepo := newStubDoctorRepo("Dr. Sharma")
	svc := NewPricingService(doctorRepo, medicineRepo, &stubPriceChangeRepo{})
	ctx := context.Background()

	require.NoError(t, svc.SetOverride(ctx, "Dr. Sharma", "Paracetamol", 18))

	prices, err := svc.AllPrices(ctx, "Dr. Sharma")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Paracetamol": 18}, prices)
}
