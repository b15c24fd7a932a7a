package booking

import (
	"fmt"
	"time"
)

// Slots returns the bookable time-of-day slots for a date, earliest first.
// Weekends run 10:00 through 16:00 on the hour; weekdays run 09:00 through
// 18:30 every thirty minutes. Existing bookings are not consulted.
func Slots(date time.Time) []string {
	if isWeekend(date) {
		return generateSlots(10*time.Hour, 16*time.Hour, time.Hour)
	}
	return generateSlots(9*time.Hour, 18*time.Hour+30*time.Minute, 30*time.Minute)
}

// ValidSlot reports whether slot is offered on the given date.
func ValidSlot(date time.Time, slot string) bool {
	for _, s := range Slots(date) {
		if s == slot {
			return true
		}
	}
	return false
}

func generateSlots(first, last, step time.Duration) []string {
	var slots []string
	for t := first; t <= last; t += step {
		h := int(t / time.Hour)
		m := int(t % time.Hour / time.Minute)
		slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
	}
	return slots
}
