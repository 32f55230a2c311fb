package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/samedayramps/app-samedayramps/internal/domain"
	"github.com/samedayramps/app-samedayramps/internal/views"
)

// SettingsService implements the business settings store. The settings live
// in a single row keyed by domain.BusinessSettingsID; the row is created
// lazily with the documented defaults.
type SettingsService struct {
	db    *gorm.DB
	views *views.Bus
}

// NewSettingsService creates a new settings service
func NewSettingsService(db *gorm.DB, bus *views.Bus) *SettingsService {
	return &SettingsService{db: db, views: bus}
}

// SettingsInput carries a settings update request. Rates use Number so both
// JSON numbers and the quoted strings form submissions produce are accepted.
type SettingsInput struct {
	WarehouseAddress       string `json:"warehouse_address"`
	BaseDeliveryFee        Number `json:"base_delivery_fee"`
	DeliveryFeePerMile     Number `json:"delivery_fee_per_mile"`
	BaseInstallFee         Number `json:"base_install_fee"`
	InstallFeePerComponent Number `json:"install_fee_per_component"`
	RentalRatePerFt        Number `json:"rental_rate_per_ft"`
}

// Get returns the business settings, creating the row with defaults when it
// does not exist yet. On any persistence error the in-memory defaults are
// returned without being persisted, so pricing keeps working.
func (s *SettingsService) Get(ctx context.Context) domain.BusinessSettings {
	var settings domain.BusinessSettings
	err := s.db.WithContext(ctx).First(&settings, "id = ?", domain.BusinessSettingsID).Error
	if err == nil {
		return settings
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = domain.DefaultBusinessSettings()
		if createErr := s.db.WithContext(ctx).Create(&settings).Error; createErr != nil {
			log.Printf("[SETTINGS] Failed to create default settings: %v", createErr)
			return domain.DefaultBusinessSettings()
		}
		log.Printf("[SETTINGS] Created default settings row id=%d", settings.ID)
		return settings
	}

	log.Printf("[SETTINGS] Get failed, falling back to defaults: %v", err)
	return domain.DefaultBusinessSettings()
}

// Update validates and upserts the singleton settings row
func (s *SettingsService) Update(ctx context.Context, in *SettingsInput) (*domain.BusinessSettings, error) {
	log.Printf("[SETTINGS] Update request")

	ve := NewValidationError()
	if strings.TrimSpace(in.WarehouseAddress) == "" {
		ve.Add("warehouse_address", "Warehouse address is required")
	}
	checkRate := func(field string, value Number) {
		if !value.IsValid() {
			ve.Add(field, "Must be a number")
			return
		}
		if value < 0 {
			ve.Add(field, "Must be zero or greater")
		}
	}
	checkRate("base_delivery_fee", in.BaseDeliveryFee)
	checkRate("delivery_fee_per_mile", in.DeliveryFeePerMile)
	checkRate("base_install_fee", in.BaseInstallFee)
	checkRate("install_fee_per_component", in.InstallFeePerComponent)
	checkRate("rental_rate_per_ft", in.RentalRatePerFt)
	if ve.HasErrors() {
		log.Printf("[SETTINGS] Update failed: validation error: %v", ve)
		return nil, ve
	}

	settings := domain.BusinessSettings{
		ID:                     domain.BusinessSettingsID,
		WarehouseAddress:       strings.TrimSpace(in.WarehouseAddress),
		BaseDeliveryFee:        float64(in.BaseDeliveryFee),
		DeliveryFeePerMile:     float64(in.DeliveryFeePerMile),
		BaseInstallFee:         float64(in.BaseInstallFee),
		InstallFeePerComponent: float64(in.InstallFeePerComponent),
		RentalRatePerFt:        float64(in.RentalRatePerFt),
	}

	// Save upserts by primary key, covering both the first write and later
	// read-modify-write updates.
	if err := s.db.WithContext(ctx).Save(&settings).Error; err != nil {
		log.Printf("[SETTINGS] Update failed: database error: %v", err)
		return nil, internal("failed to update settings", err)
	}

	log.Printf("[SETTINGS] Update successful")
	s.views.Invalidate(views.Settings)
	return &settings, nil
}
