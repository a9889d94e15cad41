package payments

import "math"

// Split divides a major-unit amount between the platform and the
// advisor. The two parts always sum back to the amount exactly because
// the payout is derived by subtraction, not by a second percentage
// multiply.
func Split(amount, percent float64) (platformCommission, advisorPayout float64) {
	platformCommission = amount * percent / 100
	advisorPayout = amount - platformCommission
	return platformCommission, advisorPayout
}

// ToMinorUnits converts a major-unit amount to the gateway's integer
// minor units (rupees → paise).
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromMinorUnits converts gateway paise back to rupees for storage.
func FromMinorUnits(minor int64) float64 {
	return float64(minor) / 100
}

// SessionAmount prices a booking: hourly rate times duration in hours.
func SessionAmount(hourlyRate float64, durationMinutes int) float64 {
	return hourlyRate * float64(durationMinutes) / 60
}
