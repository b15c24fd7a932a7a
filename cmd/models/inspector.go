package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Inspector struct {
	gorm.Model
	UserID      uint           `gorm:"column:user_id;not null" json:"user_id"`
	Specialties pq.StringArray `gorm:"column:specialties;type:text[]" json:"specialties"`
	Bio         string         `gorm:"column:bio;type:text" json:"bio"`
	Available   bool           `gorm:"column:available;default:true" json:"available"`

	// Aggregates recomputed whenever a review is written; reviews stay the
	// authoritative source.
	AverageRating float64 `gorm:"column:average_rating;default:0" json:"average_rating"`
	TotalReviews  int     `gorm:"column:total_reviews;default:0" json:"total_reviews"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Reviews []Review `gorm:"foreignKey:InspectorID" json:"reviews,omitempty"`
}

func (Inspector) TableName() string {
	return "inspectors"
}

type Review struct {
	gorm.Model
	AppointmentID  uint    `gorm:"column:appointment_id;not null;uniqueIndex" json:"appointment_id"`
	InspectorID    uint    `gorm:"column:inspector_id;not null" json:"inspector_id"`
	HomeownerEmail string  `gorm:"column:homeowner_email;size:255;not null" json:"homeowner_email"`
	Rating         int     `gorm:"column:rating;not null" json:"rating"`
	Comment        string  `gorm:"column:comment;type:text" json:"comment"`

	Inspector   *Inspector   `gorm:"foreignKey:InspectorID" json:"inspector,omitempty"`
	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
