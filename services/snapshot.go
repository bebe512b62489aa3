package services

import (
	"context"
	"fmt"
	"time"

	"hotel-folio/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillingSnapshot is every number the calculator needs for one stay. It is
// rebuilt on each bill request and never stored.
type BillingSnapshot struct {
	StayID            uint
	BookedDays        int
	Category          string
	CheckIn           time.Time
	BaseAmount        *decimal.Decimal
	ManualOverride    *decimal.Decimal
	AdvancePaid       decimal.Decimal
	RestaurantCharges decimal.Decimal
	Discount          decimal.Decimal
	DamageCharge      decimal.Decimal
	MealPlanCharge    decimal.Decimal
}

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

// BuildSnapshot merges the stay row with its posted charges. Only restaurant
// charges come from the charge store; damage, meal plan and discount are read
// off the stay row, which is where the maintenance and front desk flows keep them.
func BuildSnapshot(stay models.Stay, charges []models.AncillaryCharge) BillingSnapshot {
	restaurant := decimal.Zero
	for _, ch := range charges {
		if ch.Category == models.ChargeCategoryRestaurant {
			restaurant = restaurant.Add(ch.Amount)
		}
	}

	return BillingSnapshot{
		StayID:            stay.ID,
		BookedDays:        stay.BookedDays,
		Category:          stay.Category,
		CheckIn:           stay.CheckIn,
		BaseAmount:        copyDecimal(stay.BaseAmount),
		ManualOverride:    copyDecimal(stay.ManualOverride),
		AdvancePaid:       stay.AdvancePaid,
		RestaurantCharges: restaurant,
		Discount:          stay.Discount,
		DamageCharge:      stay.DamageCharge,
		MealPlanCharge:    stay.MealPlanCharge,
	}
}

// ChargeAggregator loads the charge rows of a stay and builds its snapshot.
type ChargeAggregator struct{}

func (ChargeAggregator) Snapshot(ctx context.Context, db *gorm.DB, stay models.Stay) (BillingSnapshot, error) {
	var charges []models.AncillaryCharge
	if err := db.WithContext(ctx).
		Where("stay_id = ?", stay.ID).
		Order("id ASC").
		Find(&charges).Error; err != nil {
		return BillingSnapshot{}, fmt.Errorf("load charges for stay %d: %w", stay.ID, err)
	}
	return BuildSnapshot(stay, charges), nil
}

func roomsOf(stay models.Stay) []models.Room {
	rooms := make([]models.Room, 0, len(stay.Rooms))
	for _, sr := range stay.Rooms {
		rooms = append(rooms, sr.Room)
	}
	return rooms
}
