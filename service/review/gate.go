package review

import (
	"github.com/homeguard-labs/homeguard-server/cmd/models"
	"github.com/homeguard-labs/homeguard-server/service/appointment"
)

// CanReview reports whether the appointment may still receive a review: the
// session must be completed and no review may exist for it yet.
func CanReview(appt models.Appointment, existing []models.Review) bool {
	if appt.Status != appointment.StatusCompleted || appt.HasBeenReviewed {
		return false
	}
	for _, r := range existing {
		if r.AppointmentID == appt.ID {
			return false
		}
	}
	return true
}

// ValidRating reports whether rating is within the 1-5 scale.
func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
