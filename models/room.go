package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Room lifecycle: free -> occupied -> housekeeping -> free
const (
	RoomStatusFree         = "free"
	RoomStatusOccupied     = "occupied"
	RoomStatusHousekeeping = "housekeeping"
)

type Room struct {
	gorm.Model

	RoomNumber  string          `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Category    string          `json:"category" gorm:"column:category;type:varchar(50)"`
	Floor       string          `json:"floor" gorm:"type:varchar(10)"`
	PricePerDay decimal.Decimal `json:"pricePerDay" gorm:"column:price_per_day;type:decimal(12,2);not null;default:0"`
	Status      string          `json:"status" gorm:"column:status;type:varchar(20);index;not null;default:free"`

	// Cleared at checkout.
	CurrentStayID *uint `json:"currentStayId,omitempty" gorm:"column:current_stay_id;index"`
}
