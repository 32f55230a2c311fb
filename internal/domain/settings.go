package domain

import "time"

// BusinessSettingsID is the fixed primary key of the singleton settings row.
// Exactly one row exists at any time.
const BusinessSettingsID uint = 1

// BusinessSettings holds the tunable pricing parameters used by every quote
type BusinessSettings struct {
	ID                     uint      `gorm:"primaryKey" json:"id"`
	WarehouseAddress       string    `gorm:"not null" json:"warehouse_address"`
	BaseDeliveryFee        float64   `gorm:"not null" json:"base_delivery_fee"`
	DeliveryFeePerMile     float64   `gorm:"not null" json:"delivery_fee_per_mile"`
	BaseInstallFee         float64   `gorm:"not null" json:"base_install_fee"`
	InstallFeePerComponent float64   `gorm:"not null" json:"install_fee_per_component"`
	RentalRatePerFt        float64   `gorm:"not null" json:"rental_rate_per_ft"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// TableName specifies the table name for BusinessSettings
func (BusinessSettings) TableName() string {
	return "business_settings"
}

// DefaultBusinessSettings returns the documented defaults used when no
// settings row exists yet, or when the settings row cannot be read.
func DefaultBusinessSettings() BusinessSettings {
	return BusinessSettings{
		ID:                     BusinessSettingsID,
		WarehouseAddress:       "6008 Windridge Ln, Flower Mound, TX 75028, USA",
		BaseDeliveryFee:        50,
		DeliveryFeePerMile:     4,
		BaseInstallFee:         50,
		InstallFeePerComponent: 50,
		RentalRatePerFt:        11,
	}
}
