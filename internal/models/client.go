package models

import "time"

// Cliente sin login, identificado por teléfono.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Surname string `gorm:"size:100;not null" json:"surname"`
	Phone   string `gorm:"size:20;index;not null" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`
	Notes   string `gorm:"size:255" json:"notes"`

	Visits int `gorm:"default:0" json:"visits"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
