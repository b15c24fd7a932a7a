package identity

import (
	"github.com/homeguard-labs/homeguard-server/cmd/models"
)

// SyncPlan lists the field updates needed to reconcile a user/employee pair.
// A nil pointer means the field already agrees. Applying a plan and planning
// again yields an empty plan.
type SyncPlan struct {
	EmployeeName   *string
	UserDepartment *string
	UserLocation   *string
	UserSchedule   map[string]string
}

// Empty reports whether the pair is already consistent.
func (p SyncPlan) Empty() bool {
	return p.EmployeeName == nil && p.UserDepartment == nil && p.UserLocation == nil && p.UserSchedule == nil
}

// PlanSync compares the two records and plans the per-field updates dictated
// by the ownership policy. It is pure: the caller applies employee-side
// updates first, then user-side updates.
func PlanSync(user models.User, employee models.Employee) SyncPlan {
	var plan SyncPlan

	if employee.Name != user.FullName {
		name := user.FullName
		plan.EmployeeName = &name
	}
	if user.Department != employee.Department {
		dept := employee.Department
		plan.UserDepartment = &dept
	}
	if user.AssignedLocation != employee.AssignedLocation {
		loc := employee.AssignedLocation
		plan.UserLocation = &loc
	}

	derived := DeriveSchedule(employee.WorkDays)
	if !scheduleEquals(user.WorkSchedule, derived) {
		plan.UserSchedule = derived
	}
	return plan
}

// scheduleEquals deep-compares the stored JSON schedule against the derived
// one. The stored map holds interface{} values after a JSON round trip, so
// comparison goes value by value.
func scheduleEquals(stored map[string]interface{}, derived map[string]string) bool {
	if len(stored) != len(derived) {
		return false
	}
	for day, mode := range derived {
		v, ok := stored[day]
		if !ok {
			return false
		}
		s, ok := v.(string)
		if !ok || s != mode {
			return false
		}
	}
	return true
}
