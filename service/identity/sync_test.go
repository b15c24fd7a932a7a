package identity

import (
	"reflect"
	"testing"

	"github.com/homeguard-labs/homeguard-server/cmd/models"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

func TestDeriveSchedule(t *testing.T) {
	got := DeriveSchedule([]string{"monday", "wednesday"})
	want := map[string]string{
		"sunday":    ModeRemote,
		"monday":    ModeOffice,
		"tuesday":   ModeRemote,
		"wednesday": ModeOffice,
		"thursday":  ModeRemote,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DeriveSchedule = %v, want %v", got, want)
	}
}

func TestDeriveScheduleIgnoresNonWorkweekDays(t *testing.T) {
	got := DeriveSchedule([]string{"saturday", "friday"})
	for day, mode := range got {
		if mode != ModeRemote {
			t.Fatalf("day %s marked %s, want remote", day, mode)
		}
	}
	if len(got) != len(Workweek) {
		t.Fatalf("schedule has %d days, want %d", len(got), len(Workweek))
	}
}

func TestNormalizeWorkDaysFeedsSchedule(t *testing.T) {
	days := NormalizeWorkDays([]string{" Monday", "WEDNESDAY ", "sunday"})
	want := []string{"monday", "wednesday", "sunday"}
	if !reflect.DeepEqual(days, want) {
		t.Fatalf("NormalizeWorkDays = %v, want %v", days, want)
	}

	// Mixed-case client input must still land as office days after derivation.
	schedule := DeriveSchedule(days)
	for _, day := range want {
		if schedule[day] != ModeOffice {
			t.Fatalf("day %s marked %s, want office", day, schedule[day])
		}
	}
}

func TestPlanSyncFieldOwnership(t *testing.T) {
	user := models.User{
		FullName:         "Abena Owusu",
		Department:       "Finance",
		AssignedLocation: "Accra HQ",
	}
	employee := models.Employee{
		Name:             "A. Owusu",
		Department:       "Engineering",
		AssignedLocation: "Kumasi Hub",
		WorkDays:         pq.StringArray{"monday"},
	}

	plan := PlanSync(user, employee)

	// User owns the name, employee owns the rest.
	if plan.EmployeeName == nil || *plan.EmployeeName != "Abena Owusu" {
		t.Fatalf("employee name should follow the user record, got %v", plan.EmployeeName)
	}
	if plan.UserDepartment == nil || *plan.UserDepartment != "Engineering" {
		t.Fatalf("user department should follow the employee record, got %v", plan.UserDepartment)
	}
	if plan.UserLocation == nil || *plan.UserLocation != "Kumasi Hub" {
		t.Fatalf("user location should follow the employee record, got %v", plan.UserLocation)
	}
	if plan.UserSchedule == nil || plan.UserSchedule["monday"] != ModeOffice {
		t.Fatalf("user schedule should be derived from employee work days, got %v", plan.UserSchedule)
	}
}

func TestPlanSyncIdempotent(t *testing.T) {
	user := models.User{
		FullName:         "Kojo Mensah",
		Department:       "Support",
		AssignedLocation: "Accra HQ",
	}
	employee := models.Employee{
		Name:             "Old Name",
		Department:       "Engineering",
		AssignedLocation: "Takoradi",
		WorkDays:         pq.StringArray{"tuesday", "thursday"},
	}

	plan := PlanSync(user, employee)
	if plan.Empty() {
		t.Fatal("first plan should carry updates")
	}

	// Apply the plan the way the handler does.
	employee.Name = *plan.EmployeeName
	user.Department = *plan.UserDepartment
	user.AssignedLocation = *plan.UserLocation
	user.WorkSchedule = datatypes.JSONMap{}
	for day, mode := range plan.UserSchedule {
		user.WorkSchedule[day] = mode
	}

	second := PlanSync(user, employee)
	if !second.Empty() {
		t.Fatalf("second plan should be empty, got %+v", second)
	}
}

func TestPlanSyncNoChanges(t *testing.T) {
	employee := models.Employee{
		Name:             "Efua Sarpong",
		Department:       "Design",
		AssignedLocation: "Accra HQ",
		WorkDays:         pq.StringArray{"sunday"},
	}
	user := models.User{
		FullName:         "Efua Sarpong",
		Department:       "Design",
		AssignedLocation: "Accra HQ",
		WorkSchedule: datatypes.JSONMap{
			"sunday":    ModeOffice,
			"monday":    ModeRemote,
			"tuesday":   ModeRemote,
			"wednesday": ModeRemote,
			"thursday":  ModeRemote,
		},
	}
	if plan := PlanSync(user, employee); !plan.Empty() {
		t.Fatalf("consistent pair should plan nothing, got %+v", plan)
	}
}

func TestPlanSyncSchedulePlannedWhenStoredEmpty(t *testing.T) {
	employee := models.Employee{Name: "N", WorkDays: pq.StringArray{}}
	user := models.User{FullName: "N"}
	plan := PlanSync(user, employee)
	if plan.UserSchedule == nil {
		t.Fatal("missing stored schedule should plan a derived one")
	}
	for _, day := range Workweek {
		if plan.UserSchedule[day] != ModeRemote {
			t.Fatalf("no work days recorded, %s should be remote", day)
		}
	}
}
