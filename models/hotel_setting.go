package models

import "time"

// HotelSetting is the property header printed on exported audit reports.
// A single row is kept.
type HotelSetting struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name    string `gorm:"size:255" json:"name"`
	Address string `gorm:"type:text" json:"address"`
	Phone   string `gorm:"size:50" json:"phone"`
	Email   string `gorm:"size:150" json:"email"`
	GSTIN   string `gorm:"column:gstin;size:32" json:"gstin"`
}
