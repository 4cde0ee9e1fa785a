package models

type User struct {
	Base
	Email    string `gorm:"size:254;unique;not null" json:"email"`
	Username string `gorm:"size:150;unique;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	IsStaff  bool   `gorm:"default:false" json:"is_staff"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}
