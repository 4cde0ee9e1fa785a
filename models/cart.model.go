package models

import "github.com/google/uuid"

type Cart struct {
	Base
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Products   []Product `gorm:"many2many:cart_products" json:"products"`
	TotalPrice float64   `gorm:"not null" json:"total_price"`
}
