package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/homeguard-labs/homeguard-server/cmd/models"
	"github.com/homeguard-labs/homeguard-server/service/booking"
)

func TestTransitionLegalChain(t *testing.T) {
	if err := Transition(StatusScheduled, StatusInProgress); err != nil {
		t.Fatalf("scheduled -> in_progress: %v", err)
	}
	if err := Transition(StatusInProgress, StatusCompleted); err != nil {
		t.Fatalf("in_progress -> completed: %v", err)
	}
	if err := Transition(StatusScheduled, StatusCancelled); err != nil {
		t.Fatalf("scheduled -> cancelled: %v", err)
	}
}

func TestTransitionIllegalEdges(t *testing.T) {
	illegal := [][2]string{
		{StatusScheduled, StatusCompleted},   // cannot skip the session
		{StatusInProgress, StatusCancelled},  // no cancelling started work
		{StatusInProgress, StatusScheduled},  // no rewinding
		{StatusCompleted, StatusInProgress},  // no reopening
		{StatusCompleted, StatusCancelled},   // terminal
		{StatusCancelled, StatusScheduled},   // no un-cancelling
		{StatusCancelled, StatusInProgress},  // terminal
	}
	for _, edge := range illegal {
		err := Transition(edge[0], edge[1])
		if err == nil {
			t.Fatalf("%s -> %s unexpectedly allowed", edge[0], edge[1])
		}
		var te *TransitionError
		if !errors.As(err, &te) {
			t.Fatalf("%s -> %s: got %T, want *TransitionError", edge[0], edge[1], err)
		}
		if te.From != edge[0] || te.To != edge[1] {
			t.Fatalf("error should carry the state pair, got %+v", te)
		}
	}
}

func TestCancelAfterCompleteFails(t *testing.T) {
	// Start, complete, then attempt to cancel: the third call must fail and
	// the record stays completed.
	status := StatusScheduled
	for _, next := range []string{StatusInProgress, StatusCompleted} {
		if err := Transition(status, next); err != nil {
			t.Fatalf("unexpected rejection %s -> %s: %v", status, next, err)
		}
		status = next
	}
	if err := Transition(status, StatusCancelled); err == nil {
		t.Fatal("cancel of a completed appointment must be rejected")
	}
	if status != StatusCompleted {
		t.Fatalf("status changed despite rejected transition: %s", status)
	}
}

func TestStoredPriceSurvivesLifecycle(t *testing.T) {
	saturday := time.Date(2025, time.June, 7, 0, 0, 0, 0, time.UTC)

	// Booked without the offer, so the weekend rate is frozen in.
	appt := models.Appointment{
		Status:    StatusScheduled,
		PricePaid: booking.Price(saturday, false),
	}
	if appt.PricePaid != booking.WeekendRate {
		t.Fatalf("booked price = %v, want %v", appt.PricePaid, booking.WeekendRate)
	}

	if err := beginSession(&appt); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := fileReport(&appt, "roof inspected", "two cracked tiles", "replace tiles", "re-check after rains"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// The offer pool opening up later must not reprice the appointment.
	if !booking.OfferEligible(0, false) {
		t.Fatal("pool should be eligible in this scenario")
	}
	if appt.PricePaid != booking.WeekendRate {
		t.Fatalf("stored price changed to %v across the lifecycle", appt.PricePaid)
	}

	if err := cancelSession(&appt); err == nil {
		t.Fatal("cancel of a completed appointment must be rejected")
	}
	if appt.Status != StatusCompleted || appt.PricePaid != booking.WeekendRate {
		t.Fatalf("rejected cancel mutated the record: %s / %v", appt.Status, appt.PricePaid)
	}
}

func TestValidPriority(t *testing.T) {
	for _, p := range []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityEmergency} {
		if !ValidPriority(p) {
			t.Fatalf("%s should be a valid priority", p)
		}
	}
	if ValidPriority("urgent") {
		t.Fatal("unknown priority accepted")
	}
}
