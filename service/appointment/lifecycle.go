package appointment

import (
	"fmt"

	"github.com/homeguard-labs/homeguard-server/cmd/models"
)

// Appointment statuses.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Priorities accepted on booking.
const (
	PriorityLow       = "low"
	PriorityMedium    = "medium"
	PriorityHigh      = "high"
	PriorityEmergency = "emergency"
)

// allowedTransitions is the whole state machine: scheduled work either runs
// to completion or is cancelled before it starts. Completed and cancelled are
// terminal.
var allowedTransitions = map[string][]string{
	StatusScheduled:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// TransitionError reports an attempt to move an appointment along an edge
// that does not exist.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move appointment from %s to %s", e.From, e.To)
}

// Transition validates the edge from -> to, returning a *TransitionError when
// the edge is not part of the lifecycle. It never coerces an illegal request
// into a legal one.
func Transition(from, to string) error {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return &TransitionError{From: from, To: to}
}

// beginSession moves a scheduled appointment into the inspection session.
func beginSession(a *models.Appointment) error {
	if err := Transition(a.Status, StatusInProgress); err != nil {
		return err
	}
	a.Status = StatusInProgress
	return nil
}

// fileReport closes the session and records the inspection report. The price
// quoted at booking time is left untouched.
func fileReport(a *models.Appointment, summary, issues, recommendations, followUp string) error {
	if err := Transition(a.Status, StatusCompleted); err != nil {
		return err
	}
	a.Status = StatusCompleted
	a.ReportSummary = summary
	a.IssuesIdentified = issues
	a.Recommendations = recommendations
	a.FollowUpActions = followUp
	return nil
}

// cancelSession ends a scheduled appointment before any work starts.
func cancelSession(a *models.Appointment) error {
	if err := Transition(a.Status, StatusCancelled); err != nil {
		return err
	}
	a.Status = StatusCancelled
	return nil
}

// ValidPriority reports whether p is an accepted booking priority.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityEmergency:
		return true
	}
	return false
}
