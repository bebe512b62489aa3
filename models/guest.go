package models

import (
	"time"
)

type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	FullName string `gorm:"size:255;not null" json:"fullName"`
	Phone    string `gorm:"size:50" json:"phone"`
	Email    string `gorm:"size:150" json:"email"`
	IDType   string `gorm:"size:50" json:"idType"`
	IDNumber string `gorm:"size:100" json:"idNumber"`
}
