package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Employee is the desk-booking record for a staff member. It is created
// lazily on first session bootstrap and owns department, assigned location
// and the in-office work days; the matching User record owns the name.
type Employee struct {
	gorm.Model
	Name             string         `gorm:"column:name;size:255;not null" json:"name"`
	Email            string         `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	Department       string         `gorm:"column:department;size:100" json:"department"`
	AssignedLocation string         `gorm:"column:assigned_location;size:100" json:"assigned_location"`
	WorkDays         pq.StringArray `gorm:"column:work_days;type:text[]" json:"work_days"`
	Active           bool           `gorm:"column:active;default:true" json:"active"`
}

func (Employee) TableName() string {
	return "employees"
}
