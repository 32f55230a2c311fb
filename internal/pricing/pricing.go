package pricing

import "github.com/samedayramps/app-samedayramps/internal/domain"

// Breakdown itemizes the cost terms that make up a quote price
type Breakdown struct {
	RampRental   float64 `json:"ramp_rental"`
	Platforms    float64 `json:"platforms"`
	Delivery     float64 `json:"delivery"`
	Installation float64 `json:"installation"`
	Total        float64 `json:"total"`
}

// Quote computes the full price for a ramp rental: rental of the ramp itself,
// the platform components, delivery mileage, and installation labor.
//
// The installation term bills (platforms + 1) component units: the ramp counts
// as one installable component on top of its platforms. The platform term only
// bills the platforms. Both terms are priced off the same per-component fee.
func Quote(rampLength float64, platforms int, distance float64, s domain.BusinessSettings) Breakdown {
	rampRental := rampLength * s.RentalRatePerFt
	platformCost := float64(platforms) * s.InstallFeePerComponent
	delivery := s.BaseDeliveryFee + distance*s.DeliveryFeePerMile
	installation := s.BaseInstallFee + float64(platforms+1)*s.InstallFeePerComponent

	return Breakdown{
		RampRental:   rampRental,
		Platforms:    platformCost,
		Delivery:     delivery,
		Installation: installation,
		Total:        rampRental + platformCost + delivery + installation,
	}
}

// Total is a convenience wrapper returning only the summed price
func Total(rampLength float64, platforms int, distance float64, s domain.BusinessSettings) float64 {
	return Quote(rampLength, platforms, distance, s).Total
}
