package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-folio/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GuestInput struct {
	FullName string `json:"fullName" validate:"required,max=255"`
	Phone    string `json:"phone" validate:"max=50"`
	Email    string `json:"email" validate:"omitempty,email,max=150"`
	IDType   string `json:"idType" validate:"max=50"`
	IDNumber string `json:"idNumber" validate:"max=100"`
}

// CheckInInput opens a stay. Advance is paid at the desk with AdvanceInstrument.
type CheckInInput struct {
	Guest             GuestInput       `json:"guest"`
	RoomIDs           []uint           `json:"roomIds" validate:"required,min=1,unique,dive,gt=0"`
	BookedDays        int              `json:"bookedDays" validate:"gte=0"`
	Category          string           `json:"category" validate:"omitempty,oneof=standard complimentary freshen-up"`
	CheckIn           *time.Time       `json:"checkIn,omitempty"`
	BaseAmount        *decimal.Decimal `json:"baseAmount,omitempty"`
	ManualOverride    *decimal.Decimal `json:"manualOverride,omitempty"`
	Discount          decimal.Decimal  `json:"discount"`
	MealPlanCharge    decimal.Decimal  `json:"mealPlanCharge"`
	AdvancePaid       decimal.Decimal  `json:"advancePaid"`
	AdvanceInstrument string           `json:"advanceInstrument" validate:"omitempty,oneof=cash bank upi"`
	AdvanceReference  string           `json:"advanceReference" validate:"max=128"`
}

// AdjustmentsInput changes the desk-entered amounts on an open stay.
// Nil fields are left alone. ClearManualOverride removes a stored override.
type AdjustmentsInput struct {
	ManualOverride      *decimal.Decimal `json:"manualOverride,omitempty"`
	ClearManualOverride bool             `json:"clearManualOverride,omitempty"`
	BaseAmount     *decimal.Decimal `json:"baseAmount,omitempty"`
	Discount       *decimal.Decimal `json:"discount,omitempty"`
	MealPlanCharge *decimal.Decimal `json:"mealPlanCharge,omitempty"`
	DamageCharge   *decimal.Decimal `json:"damageCharge,omitempty"`
}

type StayService struct {
	DB     *gorm.DB
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewStayService(db *gorm.DB, logger *logrus.Logger) *StayService {
	return &StayService{DB: db, Logger: logger, Now: utcNow}
}

func (s *StayService) now() time.Time {
	if s.Now == nil {
		return utcNow()
	}
	return s.Now().UTC()
}

func validateCheckIn(in CheckInInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if in.BaseAmount != nil {
		if err := requireNonNegative("baseAmount", *in.BaseAmount); err != nil {
			return err
		}
	}
	if in.ManualOverride != nil {
		if err := requireNonNegative("manualOverride", *in.ManualOverride); err != nil {
			return err
		}
	}
	for field, d := range map[string]decimal.Decimal{
		"discount":       in.Discount,
		"mealPlanCharge": in.MealPlanCharge,
		"advancePaid":    in.AdvancePaid,
	} {
		if err := requireNonNegative(field, d); err != nil {
			return err
		}
	}
	if in.AdvancePaid.IsPositive() && in.AdvanceInstrument == "" {
		return invalidf("advanceInstrument is required when advancePaid is set")
	}
	return nil
}

// CheckIn registers the guest, occupies every requested room and records the
// advance as a payment. All rooms must be free.
func (s *StayService) CheckIn(ctx context.Context, in CheckInInput) (models.Stay, error) {
	in.Guest.FullName = strings.TrimSpace(in.Guest.FullName)
	if err := validateCheckIn(in); err != nil {
		return models.Stay{}, err
	}

	now := s.now()
	checkIn := now
	if in.CheckIn != nil && !in.CheckIn.IsZero() {
		checkIn = in.CheckIn.UTC()
	}
	category := in.Category
	if category == "" {
		category = models.CategoryStandard
	}

	var stayID uint
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rooms []models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", in.RoomIDs).
			Find(&rooms).Error; err != nil {
			return fmt.Errorf("lock rooms: %w", err)
		}
		if len(rooms) != len(in.RoomIDs) {
			return notFoundf("one or more rooms in %v", in.RoomIDs)
		}
		for _, r := range rooms {
			if r.Status != models.RoomStatusFree {
				return fmt.Errorf("room %s: %w", r.RoomNumber, ErrRoomNotAvailable)
			}
		}

		guest := models.Guest{
			FullName: in.Guest.FullName,
			Phone:    strings.TrimSpace(in.Guest.Phone),
			Email:    strings.TrimSpace(in.Guest.Email),
			IDType:   strings.TrimSpace(in.Guest.IDType),
			IDNumber: strings.TrimSpace(in.Guest.IDNumber),
		}
		if err := tx.Create(&guest).Error; err != nil {
			return fmt.Errorf("create guest: %w", err)
		}

		stay := models.Stay{
			GuestID:        guest.ID,
			CheckIn:        checkIn,
			BookedDays:     in.BookedDays,
			Category:       category,
			Status:         models.StayStatusCheckedIn,
			BaseAmount:     copyDecimal(in.BaseAmount),
			ManualOverride: copyDecimal(in.ManualOverride),
			Discount:       in.Discount,
			MealPlanCharge: in.MealPlanCharge,
			AdvancePaid:    in.AdvancePaid,
		}
		if err := tx.Create(&stay).Error; err != nil {
			return fmt.Errorf("create stay: %w", err)
		}
		stayID = stay.ID

		for _, rid := range in.RoomIDs {
			link := models.StayRoom{StayID: stay.ID, RoomID: rid}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("link room %d: %w", rid, err)
			}
		}

		res := tx.Model(&models.Room{}).
			Where("id IN ? AND status = ?", in.RoomIDs, models.RoomStatusFree).
			Updates(map[string]interface{}{
				"status":          models.RoomStatusOccupied,
				"current_stay_id": stay.ID,
			})
		if res.Error != nil {
			return fmt.Errorf("occupy rooms: %w", res.Error)
		}
		if res.RowsAffected != int64(len(in.RoomIDs)) {
			return ErrRoomNotAvailable
		}

		if in.AdvancePaid.IsPositive() {
			first := in.RoomIDs[0]
			pay := models.PaymentRecord{
				CreatedAt:  now,
				StayID:     stay.ID,
				RoomID:     &first,
				Amount:     in.AdvancePaid,
				Instrument: in.AdvanceInstrument,
				Reference:  strings.TrimSpace(in.AdvanceReference),
				Status:     models.PaymentStatusCompleted,
			}
			if err := tx.Create(&pay).Error; err != nil {
				return fmt.Errorf("record advance: %w", err)
			}
			if in.AdvanceInstrument == models.InstrumentCash {
				if err := creditCashRegister(tx, in.AdvancePaid, stay.ID, models.CashReasonCheckinAdvance, now); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		s.Logger.WithError(err).WithField("room_ids", in.RoomIDs).Warn("check-in rejected")
		return models.Stay{}, err
	}

	s.Logger.WithFields(logrus.Fields{
		"stay_id":  stayID,
		"room_ids": in.RoomIDs,
	}).Info("guest checked in")
	return s.Get(ctx, stayID)
}

func (s *StayService) Get(ctx context.Context, id uint) (models.Stay, error) {
	var stay models.Stay
	err := s.DB.WithContext(ctx).Preload("Guest").Preload("Rooms.Room").First(&stay, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return stay, notFoundf("stay %d", id)
	}
	if err != nil {
		return stay, fmt.Errorf("load stay %d: %w", id, err)
	}
	return stay, nil
}

// UpdateAdjustments edits override, base amount, discount, meal plan and damage
// on a checked-in stay.
func (s *StayService) UpdateAdjustments(ctx context.Context, id uint, in AdjustmentsInput) (models.Stay, error) {
	updates := map[string]interface{}{}
	for field, v := range map[string]*decimal.Decimal{
		"manual_override":  in.ManualOverride,
		"base_amount":      in.BaseAmount,
		"discount":         in.Discount,
		"meal_plan_charge": in.MealPlanCharge,
		"damage_charge":    in.DamageCharge,
	} {
		if v == nil {
			continue
		}
		if err := requireNonNegative(field, *v); err != nil {
			return models.Stay{}, err
		}
		updates[field] = *v
	}
	if in.ClearManualOverride {
		if in.ManualOverride != nil {
			return models.Stay{}, invalidf("manualOverride and clearManualOverride are exclusive")
		}
		updates["manual_override"] = nil
	}
	if len(updates) == 0 {
		return models.Stay{}, invalidf("no adjustments given")
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stay models.Stay
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&stay, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("stay %d", id)
			}
			return fmt.Errorf("load stay %d: %w", id, err)
		}
		if stay.Status != models.StayStatusCheckedIn {
			return ErrStayNotCheckedIn
		}
		return tx.Model(&models.Stay{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return models.Stay{}, err
	}
	return s.Get(ctx, id)
}
