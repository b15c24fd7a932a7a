package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription holds a homeowner's booking credit. A claimed
// "standard_consultation" credit prices the next booking at the first-time
// rate; completing that appointment consumes it.
type Subscription struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Type      string    `gorm:"column:type;size:50" json:"type"`
	Status    string    `gorm:"column:status;size:20;not null;default:active" json:"status"`
	ClaimedAt time.Time `gorm:"column:claimed_at" json:"claimed_at"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
}
