package identity

import "strings"

// The user and employee records overlap on four fields. Each field has a
// fixed owner, and reconciliation always copies from owner to mirror:
//
//	name                employee <- user
//	department          user <- employee
//	assigned location   user <- employee
//	work schedule       user <- derived from employee work days
//
// Concurrent edits between sync runs are not detected as conflicts; the owner
// side simply wins on the next bootstrap.

// Work modes recorded in the user's weekly schedule.
const (
	ModeOffice = "office"
	ModeRemote = "remote"
)

// Workweek is the Sunday-through-Thursday span covered by the derived
// schedule, in order.
var Workweek = []string{"sunday", "monday", "tuesday", "wednesday", "thursday"}

// NormalizeWorkDays lowercases and trims day names so stored work days
// compare equal to the workweek labels used by DeriveSchedule.
func NormalizeWorkDays(days []string) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, strings.ToLower(strings.TrimSpace(d)))
	}
	return out
}

// DeriveSchedule builds the weekly schedule map from an employee's in-office
// work days: every workweek day present in workDays is office, the rest are
// remote. Days outside the workweek are ignored.
func DeriveSchedule(workDays []string) map[string]string {
	inOffice := make(map[string]bool, len(workDays))
	for _, d := range workDays {
		inOffice[d] = true
	}
	schedule := make(map[string]string, len(Workweek))
	for _, day := range Workweek {
		if inOffice[day] {
			schedule[day] = ModeOffice
		} else {
			schedule[day] = ModeRemote
		}
	}
	return schedule
}
