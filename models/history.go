package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringList stores an ordered list of change descriptions as a jsonb column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &l)
}

// HistoryEntry is one append-only audit record: who changed what, when.
// Rows are never updated or deleted.
type HistoryEntry struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	WorkOrderID uint       `gorm:"index;not null" json:"workOrderId"`
	UserID      uint       `gorm:"index" json:"userId"`
	Changes     StringList `gorm:"type:jsonb" json:"changes"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (HistoryEntry) TableName() string {
	return "work_order_history"
}
