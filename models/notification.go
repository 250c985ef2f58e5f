package models

import (
	"time"
)

// Notification is the durable copy of every message sent to a user. Delivery
// over a live subscription is best effort; the row is the source of truth.
type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	WorkOrderID *uint     `gorm:"index" json:"workOrderId"`
	Read        bool      `gorm:"default:false" json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
}
