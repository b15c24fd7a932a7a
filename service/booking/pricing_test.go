package booking

import (
	"testing"
	"time"
)

func date(t *testing.T, y int, m time.Month, d int) time.Time {
	t.Helper()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPriceOfferBeatsDate(t *testing.T) {
	saturday := date(t, 2025, time.June, 7)
	monday := date(t, 2025, time.June, 9)

	if got := Price(saturday, true); got != FirstBookingRate {
		t.Fatalf("offer price on weekend = %v, want %v", got, FirstBookingRate)
	}
	if got := Price(monday, true); got != FirstBookingRate {
		t.Fatalf("offer price on weekday = %v, want %v", got, FirstBookingRate)
	}
}

func TestPriceByDay(t *testing.T) {
	cases := []struct {
		day  time.Time
		want float64
	}{
		{date(t, 2025, time.June, 6), WeekdayRate},  // Friday
		{date(t, 2025, time.June, 7), WeekendRate},  // Saturday
		{date(t, 2025, time.June, 8), WeekendRate},  // Sunday
		{date(t, 2025, time.June, 9), WeekdayRate},  // Monday
		{date(t, 2025, time.June, 11), WeekdayRate}, // Wednesday
	}
	for _, c := range cases {
		if got := Price(c.day, false); got != c.want {
			t.Errorf("Price(%s) = %v, want %v", c.day.Weekday(), got, c.want)
		}
	}
}

func TestOfferEligible(t *testing.T) {
	if !OfferEligible(0, false) {
		t.Fatal("fresh pool and unused identity should be eligible")
	}
	if OfferEligible(OfferPoolCap, false) {
		t.Fatal("exhausted pool should not be eligible")
	}
	if OfferEligible(1, true) {
		t.Fatal("identity that already used the offer should not be eligible")
	}
}
