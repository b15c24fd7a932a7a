package review

import (
	"testing"

	"github.com/homeguard-labs/homeguard-server/cmd/models"
	"github.com/homeguard-labs/homeguard-server/service/appointment"
)

func appt(id uint, status string, reviewed bool) models.Appointment {
	a := models.Appointment{Status: status, HasBeenReviewed: reviewed}
	a.ID = id
	return a
}

func TestCanReviewOnlyWhenCompleted(t *testing.T) {
	for _, status := range []string{
		appointment.StatusScheduled,
		appointment.StatusInProgress,
		appointment.StatusCancelled,
	} {
		if CanReview(appt(1, status, false), nil) {
			t.Fatalf("review allowed for %s appointment", status)
		}
	}
	if !CanReview(appt(1, appointment.StatusCompleted, false), nil) {
		t.Fatal("completed unreviewed appointment should be reviewable")
	}
}

func TestCanReviewExactlyOnce(t *testing.T) {
	a := appt(7, appointment.StatusCompleted, false)
	if !CanReview(a, nil) {
		t.Fatal("first review should be allowed")
	}

	// Either signal of an existing review closes the gate.
	existing := []models.Review{{AppointmentID: 7}}
	if CanReview(a, existing) {
		t.Fatal("second review for the same appointment should be blocked")
	}
	if CanReview(appt(7, appointment.StatusCompleted, true), nil) {
		t.Fatal("reviewed flag alone should block another review")
	}
}

func TestCanReviewIgnoresOtherAppointments(t *testing.T) {
	existing := []models.Review{{AppointmentID: 3}, {AppointmentID: 4}}
	if !CanReview(appt(7, appointment.StatusCompleted, false), existing) {
		t.Fatal("reviews of other appointments should not block this one")
	}
}

func TestValidRating(t *testing.T) {
	for rating, want := range map[int]bool{0: false, 1: true, 3: true, 5: true, 6: false, -1: false} {
		if got := ValidRating(rating); got != want {
			t.Fatalf("ValidRating(%d) = %v, want %v", rating, got, want)
		}
	}
}
