package booking

import (
	"regexp"
	"testing"
	"time"
)

var slotFormat = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func TestSlotsWeekend(t *testing.T) {
	for _, d := range []time.Time{
		date(t, 2025, time.June, 7), // Saturday
		date(t, 2025, time.June, 8), // Sunday
	} {
		slots := Slots(d)
		if len(slots) != 7 {
			t.Fatalf("%s: got %d slots, want 7", d.Weekday(), len(slots))
		}
		if slots[0] != "10:00" || slots[len(slots)-1] != "16:00" {
			t.Fatalf("%s: bounds %s..%s, want 10:00..16:00", d.Weekday(), slots[0], slots[len(slots)-1])
		}
	}
}

func TestSlotsWeekday(t *testing.T) {
	for day := 9; day <= 13; day++ { // Monday through Friday
		d := date(t, 2025, time.June, day)
		slots := Slots(d)
		if len(slots) != 20 {
			t.Fatalf("%s: got %d slots, want 20", d.Weekday(), len(slots))
		}
		if slots[0] != "09:00" || slots[len(slots)-1] != "18:30" {
			t.Fatalf("%s: bounds %s..%s, want 09:00..18:30", d.Weekday(), slots[0], slots[len(slots)-1])
		}
	}
}

func TestSlotsWellFormed(t *testing.T) {
	start := date(t, 2025, time.June, 1)
	for i := 0; i < 14; i++ {
		d := start.AddDate(0, 0, i)
		prev := ""
		for _, s := range Slots(d) {
			if !slotFormat.MatchString(s) {
				t.Fatalf("slot %q on %s is not HH:MM", s, d.Weekday())
			}
			if prev != "" && s <= prev {
				t.Fatalf("slots out of order on %s: %s after %s", d.Weekday(), s, prev)
			}
			prev = s
		}
	}
}

func TestValidSlot(t *testing.T) {
	saturday := date(t, 2025, time.June, 7)
	if !ValidSlot(saturday, "13:00") {
		t.Fatal("13:00 should be offered on a Saturday")
	}
	if ValidSlot(saturday, "09:00") {
		t.Fatal("09:00 is a weekday-only slot")
	}
	if ValidSlot(saturday, "13:30") {
		t.Fatal("half-hour slots are not offered on weekends")
	}
}
