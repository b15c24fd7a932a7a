package models

import (
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	gorm.Model
	HomeownerName  string    `gorm:"column:homeowner_name;size:255;not null" json:"homeowner_name"`
	HomeownerEmail string    `gorm:"column:homeowner_email;size:255;not null;index" json:"homeowner_email"`
	InspectorID    *uint     `gorm:"column:inspector_id" json:"inspector_id"`
	IssueCategory  string    `gorm:"column:issue_category;size:50;not null" json:"issue_category"`
	Description    string    `gorm:"column:description;type:text;not null" json:"description"`
	Priority       string    `gorm:"column:priority;size:20;default:medium" json:"priority"`
	ScheduledDate  time.Time `gorm:"column:scheduled_date;not null" json:"scheduled_date"`
	TimeSlot       string    `gorm:"column:time_slot;size:5;not null" json:"time_slot"`
	Status         string    `gorm:"column:status;size:20;not null;default:scheduled" json:"status"`

	// Quoted at booking time and never recalculated afterwards.
	PricePaid   float64 `gorm:"column:price_paid;not null" json:"price_paid"`
	MeetingLink string  `gorm:"column:meeting_link;size:255" json:"meeting_link"`

	ReportSummary         string `gorm:"column:report_summary;type:text" json:"report_summary"`
	IssuesIdentified      string `gorm:"column:issues_identified;type:text" json:"issues_identified"`
	Recommendations       string `gorm:"column:recommendations;type:text" json:"recommendations"`
	FollowUpActions       string `gorm:"column:follow_up_actions;type:text" json:"follow_up_actions"`
	HasBeenReviewed       bool   `gorm:"column:has_been_reviewed;default:false" json:"has_been_reviewed"`

	Inspector *Inspector `gorm:"foreignKey:InspectorID" json:"inspector,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
