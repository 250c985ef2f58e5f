package models

import (
	"time"
)

// PointRule maps an activity name to the points awarded to each assigned
// worker when the work order closes. Activities without a rule award 0.
type PointRule struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Activity string `gorm:"uniqueIndex;not null" json:"activity"`
	Points   int    `gorm:"not null;default:0" json:"points"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
