// Package billing derives trip payments. The calculator is deterministic and
// side-effect-free so that re-running it over historical trips reproduces
// identical figures for billing-export reconciliation.
package billing

import (
	"math"

	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
)

// DefaultRatePerKm is the flat per-kilometre rate applied when none is configured.
const DefaultRatePerKm = 10.0

// Calculator computes trip payments from distance, rate and parking.
type Calculator struct {
	ratePerKm float64
}

// NewCalculator returns a Calculator with the given per-km rate.
// A non-positive rate falls back to DefaultRatePerKm.
func NewCalculator(ratePerKm float64) Calculator {
	if ratePerKm <= 0 {
		ratePerKm = DefaultRatePerKm
	}
	return Calculator{ratePerKm: ratePerKm}
}

// RatePerKm returns the configured per-kilometre rate.
func (c Calculator) RatePerKm() float64 {
	return c.ratePerKm
}

// Payment computes round2(distanceKm*rate + parking).
func (c Calculator) Payment(distanceKm, parking float64) float64 {
	return Round2(distanceKm*c.ratePerKm + parking)
}

// ForTrip computes the payment for a trip using its effective distance.
func (c Calculator) ForTrip(t *domain.Trip) float64 {
	return c.Payment(t.EffectiveDistance(), t.Parking)
}

// Round2 rounds a currency amount to 2 decimal places, half up.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
