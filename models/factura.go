package models

import (
	"time"
)

// Factura is the minimal invoice record that work order links point at.
// Invoice bookkeeping itself lives outside this service.
type Factura struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	Number string    `gorm:"uniqueIndex;not null" json:"number"`
	Date   time.Time `json:"date"`
	Amount float64   `gorm:"type:decimal(10,2);default:0.0" json:"amount"`
	Notes  string    `json:"notes"`

	WorkOrders []WorkOrder `gorm:"many2many:work_order_facturas" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkOrderFactura is the join row stating "this invoice bills for this work
// order". The set is replaced wholesale on every work order update.
type WorkOrderFactura struct {
	WorkOrderID uint `gorm:"primaryKey" json:"workOrderId"`
	FacturaID   uint `gorm:"primaryKey" json:"facturaId"`
}

func (WorkOrderFactura) TableName() string {
	return "work_order_facturas"
}
