package models

import "github.com/google/uuid"

type Product struct {
	Base
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"size:500" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	CategoryID  uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
}
