package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ChargeCategoryRestaurant = "restaurant"
	ChargeCategoryDamage     = "damage"
)

// AncillaryCharge is posted against a stay by the restaurant or maintenance
// modules. Rows are never updated.
type AncillaryCharge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	StayID      uint            `gorm:"column:stay_id;index;not null" json:"stayId"`
	Category    string          `gorm:"column:category;size:32;index;not null" json:"category"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
	Description string          `gorm:"column:description;size:255" json:"description,omitempty"`
	Source      string          `gorm:"column:source;size:64" json:"source,omitempty"`
}
