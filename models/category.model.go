package models

type Category struct {
	Base
	Name        string `gorm:"size:255;unique;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`
}
