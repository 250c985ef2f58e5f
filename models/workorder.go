package models

import (
	"time"
)

// Work order statuses. "closed" is terminal and only reachable from
// "finalized"; everything else is a function of the activity statuses.
const (
	WorkOrderStatusPending    = "pending"
	WorkOrderStatusInProgress = "in_progress"
	WorkOrderStatusFinalized  = "finalized"
	WorkOrderStatusClosed     = "closed"
)

// Activity statuses. An activity never regresses.
const (
	ActivityStatusPending    = "pending"
	ActivityStatusInProgress = "in_progress"
	ActivityStatusFinalized  = "finalized"
)

type WorkOrder struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	CustomID string    `gorm:"uniqueIndex;not null" json:"customId"` // assigned once, never reassigned
	Date     time.Time `gorm:"index;not null" json:"date"`
	Type     string    `gorm:"not null" json:"type"`

	ClientID  uint  `gorm:"index;not null" json:"clientId"`
	ContactID *uint `gorm:"index" json:"contactId"`

	Product      string `json:"product"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	SealNumber   string `json:"sealNumber"`
	Observations string `gorm:"type:text" json:"observations"`
	// Free text, may embed @name mentions of other users.
	CollaboratorObservations string `gorm:"type:text" json:"collaboratorObservations"`

	Status     string `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Authorized bool   `gorm:"default:false" json:"authorized"`
	CreatedBy  uint   `gorm:"index;not null" json:"createdBy"`

	QuotationAmount  float64 `gorm:"type:decimal(10,2);default:0.0" json:"quotationAmount"`
	QuotationDetails string  `gorm:"type:text" json:"quotationDetails"`
	Disposition      string  `json:"disposition"`
	ContractType     string  `json:"contractType"`

	Client   Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Contact  *Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`

	Activities []Activity `gorm:"foreignKey:WorkOrderID;constraint:OnDelete:CASCADE" json:"activities,omitempty"`
	Facturas   []Factura  `gorm:"many2many:work_order_facturas" json:"facturas,omitempty"`

	// Derived from the presence of invoice links, never stored.
	Invoiced bool `gorm:"-" json:"invoiced"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Activity struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	WorkOrderID uint `gorm:"index;not null" json:"workOrderId"`

	Activity     string  `gorm:"not null" json:"activity"` // name, also the point table lookup key
	Norma        string  `json:"norma"`
	PrecioSinIVA float64 `gorm:"column:precio_sin_iva;type:decimal(10,2);default:0.0" json:"precioSinIva"`

	Status      string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	StartedAt   *time.Time `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`

	Assignees []User `gorm:"many2many:activity_assignments" json:"assignees,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Assignment is the join row linking an activity to a worker. The composite
// primary key keeps the (activity, user) pair unique.
type Assignment struct {
	ActivityID uint `gorm:"primaryKey" json:"activityId"`
	UserID     uint `gorm:"primaryKey" json:"userId"`
}

func (Assignment) TableName() string {
	return "activity_assignments"
}
