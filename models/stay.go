package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StayStatusCheckedIn  = "checked-in"
	StayStatusCheckedOut = "checked-out"
)

// Guest categories with billing meaning. Any other value bills as standard.
const (
	CategoryStandard      = "standard"
	CategoryComplimentary = "complimentary"
	CategoryFreshenUp     = "freshen-up"
)

// Stay is one guest's occupancy of one or more rooms.
type Stay struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	GuestID    uint       `gorm:"column:guest_id;index;not null" json:"guestId"`
	CheckIn    time.Time  `gorm:"column:check_in;not null" json:"checkIn"`
	BookedDays int        `gorm:"column:booked_days;not null;default:1" json:"bookedDays"`
	Category   string     `gorm:"column:category;size:32;not null;default:standard" json:"category"`
	Status     string     `gorm:"column:status;size:32;index;not null" json:"status"`
	CheckOut   *time.Time `gorm:"column:check_out" json:"checkOut,omitempty"`

	ManualOverride *decimal.Decimal `gorm:"column:manual_override;type:decimal(12,2)" json:"manualOverride,omitempty"`
	BaseAmount     *decimal.Decimal `gorm:"column:base_amount;type:decimal(12,2)" json:"baseAmount,omitempty"`
	Discount       decimal.Decimal  `gorm:"column:discount;type:decimal(12,2);not null;default:0" json:"discount"`
	DamageCharge   decimal.Decimal  `gorm:"column:damage_charge;type:decimal(12,2);not null;default:0" json:"damageCharge"`
	MealPlanCharge decimal.Decimal  `gorm:"column:meal_plan_charge;type:decimal(12,2);not null;default:0" json:"mealPlanCharge"`
	AdvancePaid    decimal.Decimal  `gorm:"column:advance_paid;type:decimal(12,2);not null;default:0" json:"advancePaid"`

	// written at checkout
	BaseTotal      decimal.Decimal `gorm:"column:base_total;type:decimal(12,2);not null;default:0" json:"baseTotal"`
	OverstayHours  int64           `gorm:"column:overstay_hours;not null;default:0" json:"overstayHours"`
	OverstayCharge decimal.Decimal `gorm:"column:overstay_charge;type:decimal(12,2);not null;default:0" json:"overstayCharge"`
	TotalCharge    decimal.Decimal `gorm:"column:total_charge;type:decimal(12,2);not null;default:0" json:"totalCharge"`
	NetAmount      decimal.Decimal `gorm:"column:net_amount;type:decimal(12,2);not null;default:0" json:"netAmount"`
	Balance        decimal.Decimal `gorm:"column:balance;type:decimal(12,2);not null;default:0" json:"balance"`
	SettlementRef  *string         `gorm:"column:settlement_ref;size:36;index" json:"settlementRef,omitempty"`

	Guest Guest      `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
	Rooms []StayRoom `gorm:"foreignKey:StayID" json:"rooms"`
}

// StayRoom links a stay to each room it occupies.
type StayRoom struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	StayID uint `gorm:"index;column:stay_id;not null" json:"stayId"`
	RoomID uint `gorm:"index;column:room_id;not null" json:"roomId"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

func (s Stay) RoomIDs() []uint {
	ids := make([]uint, 0, len(s.Rooms))
	for _, sr := range s.Rooms {
		ids = append(ids, sr.RoomID)
	}
	return ids
}
