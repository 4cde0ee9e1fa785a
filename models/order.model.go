package models

import "github.com/google/uuid"

// Order status values
const (
	OrderPending   = "PENDING"
	OrderShipped   = "SHIPPED"
	OrderDelivered = "DELIVERED"
	OrderCancelled = "CANCELLED"
)

// OrderStatuses lists every accepted order status.
var OrderStatuses = []string{OrderPending, OrderShipped, OrderDelivered, OrderCancelled}

type Order struct {
	Base
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Products   []Product `gorm:"many2many:order_products" json:"products"`
	Status     string    `gorm:"size:20;default:'PENDING'" json:"status"`
	TotalPrice float64   `gorm:"not null" json:"total_price"`
}
