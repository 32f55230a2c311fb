package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samedayramps/app-samedayramps/internal/domain"
	"github.com/samedayramps/app-samedayramps/internal/views"
)

func TestSettingsService_GetCreatesDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db, nil)

	settings := svc.Get(context.Background())

	defaults := domain.DefaultBusinessSettings()
	assert.Equal(t, domain.BusinessSettingsID, settings.ID)
	assert.Equal(t, defaults.WarehouseAddress, settings.WarehouseAddress)
	assert.Equal(t, defaults.RentalRatePerFt, settings.RentalRatePerFt)

	// The defaults row is persisted, not recreated on every read.
	var count int64
	require.NoError(t, db.Model(&domain.BusinessSettings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	again := svc.Get(context.Background())
	assert.Equal(t, settings, again)
}

func TestSettingsService_Update(t *testing.T) {
	db := newTestDB(t)
	bus, invalidated := recordingBus()
	svc := NewSettingsService(db, bus)

	updated, err := svc.Update(context.Background(), &SettingsInput{
		WarehouseAddress:       "900 Depot Rd, Plano, TX",
		BaseDeliveryFee:        60,
		DeliveryFeePerMile:     5,
		BaseInstallFee:         55,
		InstallFeePerComponent: 45,
		RentalRatePerFt:        12,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BusinessSettingsID, updated.ID)
	assert.Contains(t, *invalidated, views.Settings)

	got := svc.Get(context.Background())
	assert.Equal(t, "900 Depot Rd, Plano, TX", got.WarehouseAddress)
	assert.Equal(t, 12.0, got.RentalRatePerFt)

	// A second update overwrites the same singleton row.
	_, err = svc.Update(context.Background(), &SettingsInput{
		WarehouseAddress:       "900 Depot Rd, Plano, TX",
		BaseDeliveryFee:        70,
		DeliveryFeePerMile:     5,
		BaseInstallFee:         55,
		InstallFeePerComponent: 45,
		RentalRatePerFt:        12,
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.BusinessSettings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 70.0, svc.Get(context.Background()).BaseDeliveryFee)
}

func TestSettingsService_Update_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db, nil)

	_, err := svc.Update(context.Background(), &SettingsInput{
		WarehouseAddress:   "  ",
		BaseDeliveryFee:    -1,
		DeliveryFeePerMile: 4,
		RentalRatePerFt:    11,
	})

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "warehouse_address")
	assert.Contains(t, ve.Fields, "base_delivery_fee")
}

func TestSettingsInput_AcceptsQuotedNumbers(t *testing.T) {
	var in SettingsInput
	payload := `{"warehouse_address":"123 Depot","base_delivery_fee":"60","delivery_fee_per_mile":4.5,"rental_rate_per_ft":"11.25"}`
	require.NoError(t, json.Unmarshal([]byte(payload), &in))

	assert.Equal(t, Number(60), in.BaseDeliveryFee)
	assert.Equal(t, Number(4.5), in.DeliveryFeePerMile)
	assert.Equal(t, Number(11.25), in.RentalRatePerFt)

	require.NoError(t, json.Unmarshal([]byte(`{"base_delivery_fee":"lots"}`), &in))
	assert.False(t, in.BaseDeliveryFee.IsValid())
}

func TestSettingsService_Update_NonNumericRate(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db, nil)

	var in SettingsInput
	payload := `{"warehouse_address":"123 Depot","base_delivery_fee":"lots","delivery_fee_per_mile":4,"base_install_fee":50,"install_fee_per_component":50,"rental_rate_per_ft":11}`
	require.NoError(t, json.Unmarshal([]byte(payload), &in))

	_, err := svc.Update(context.Background(), &in)

	ve, ok := AsValidationError(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	require.Contains(t, ve.Fields, "base_delivery_fee")
	assert.Equal(t, "Must be a number", ve.Fields["base_delivery_fee"][0])
}
