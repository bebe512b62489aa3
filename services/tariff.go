package services

import (
	"time"

	"hotel-folio/models"

	"github.com/shopspring/decimal"
)

// DefaultOverstayHourlyRate is charged per started hour past the booked duration.
var DefaultOverstayHourlyRate = decimal.NewFromInt(200)

// TariffConfig carries the business constants of the calculator.
type TariffConfig struct {
	HourlyOverstayRate decimal.Decimal
}

func DefaultTariffConfig() TariffConfig {
	return TariffConfig{
		HourlyOverstayRate: DefaultOverstayHourlyRate,
	}
}

// BillResult is what a departing guest owes. Net and Balance are never negative.
type BillResult struct {
	BaseTotal         decimal.Decimal `json:"baseTotal"`
	HoursStayed       int64           `json:"hoursStayed"`
	AllowedHours      int64           `json:"allowedHours"`
	ExtraHours        int64           `json:"extraHours"`
	ExtraCharge       decimal.Decimal `json:"extraCharge"`
	RestaurantCharges decimal.Decimal `json:"restaurantCharges"`
	DamageCharges     decimal.Decimal `json:"damageCharges"`
	MealPlanCharge    decimal.Decimal `json:"mealPlanCharge"`
	Gross             decimal.Decimal `json:"gross"`
	Discount          decimal.Decimal `json:"discount"`
	Net               decimal.Decimal `json:"net"`
	AdvancePaid       decimal.Decimal `json:"advancePaid"`
	Balance           decimal.Decimal `json:"balance"`
}

func effectiveDays(bookedDays int) int64 {
	if bookedDays < 1 {
		return 1
	}
	return int64(bookedDays)
}

// hoursBetween rounds up to the next whole hour.
func hoursBetween(from, to time.Time) int64 {
	d := to.Sub(from)
	hours := int64(d / time.Hour)
	if d%time.Hour > 0 {
		hours++
	}
	return hours
}

func baseTotal(snap BillingSnapshot, rooms []models.Room, days decimal.Decimal) decimal.Decimal {
	switch {
	case snap.ManualOverride != nil:
		return *snap.ManualOverride
	case snap.Category == models.CategoryComplimentary:
		return decimal.Zero
	case snap.BaseAmount != nil:
		return snap.BaseAmount.Mul(days)
	default:
		perDay := decimal.Zero
		for _, r := range rooms {
			perDay = perDay.Add(r.PricePerDay)
		}
		return perDay.Mul(days)
	}
}

// Calculate prices a stay as of checkout. It performs no I/O.
func Calculate(cfg TariffConfig, snap BillingSnapshot, rooms []models.Room, checkout time.Time) BillResult {
	days := effectiveDays(snap.BookedDays)
	daysDec := decimal.NewFromInt(days)

	base := baseTotal(snap, rooms, daysDec)

	hoursStayed := hoursBetween(snap.CheckIn, checkout)
	allowed := days * 24
	extraHours := hoursStayed - allowed
	if extraHours < 0 {
		extraHours = 0
	}

	extra := decimal.Zero
	if extraHours > 0 {
		if snap.Category == models.CategoryFreshenUp && snap.BaseAmount != nil {
			extra = decimal.NewFromInt(extraHours).Mul(*snap.BaseAmount).Div(decimal.NewFromInt(allowed))
		} else {
			extra = decimal.NewFromInt(extraHours).Mul(cfg.HourlyOverstayRate)
		}
		extra = extra.Round(2)
	}

	gross := base.
		Add(extra).
		Add(snap.RestaurantCharges).
		Add(snap.DamageCharge).
		Add(snap.MealPlanCharge)

	net := decimal.Max(decimal.Zero, gross.Sub(snap.Discount))
	balance := decimal.Max(decimal.Zero, net.Sub(snap.AdvancePaid))

	return BillResult{
		BaseTotal:         base,
		HoursStayed:       hoursStayed,
		AllowedHours:      allowed,
		ExtraHours:        extraHours,
		ExtraCharge:       extra,
		RestaurantCharges: snap.RestaurantCharges,
		DamageCharges:     snap.DamageCharge,
		MealPlanCharge:    snap.MealPlanCharge,
		Gross:             gross,
		Discount:          snap.Discount,
		Net:               net,
		AdvancePaid:       snap.AdvancePaid,
		Balance:           balance,
	}
}
