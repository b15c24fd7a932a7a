package booking

import "time"

// Consultation rates in GHS.
const (
	FirstBookingRate = 99.0
	WeekdayRate      = 150.0
	WeekendRate      = 175.0
)

// OfferPoolCap is the global limit on first-booking offer redemptions.
const OfferPoolCap = 500

// Price quotes a consultation for the given date. An eligible first booking
// always gets the offer rate; otherwise the rate depends on whether the date
// falls on a weekend. The result is frozen into the appointment at creation
// time and never recalculated.
func Price(date time.Time, offerEligible bool) float64 {
	if offerEligible {
		return FirstBookingRate
	}
	if isWeekend(date) {
		return WeekendRate
	}
	return WeekdayRate
}

// OfferEligible reports whether a homeowner may still claim the discounted
// first-booking rate. The caller supplies the current redemption count so the
// decision stays a pure function of its inputs.
func OfferEligible(claimed int64, alreadyUsed bool) bool {
	return !alreadyUsed && claimed < OfferPoolCap
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
