package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-folio/config"
	"hotel-folio/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Checkout steps, reported in SettlementError and in logs.
const (
	StepLoadStay       = "load-stay"
	StepSnapshot       = "snapshot"
	StepCloseStay      = "close-stay"
	StepReleaseRooms   = "release-rooms"
	StepRecordPayments = "record-payments"
	StepCashRegister   = "cash-register"
	StepPostLedger     = "post-ledger"
)

// PaymentInput is one instrument tendered at the register.
type PaymentInput struct {
	Instrument string          `json:"instrument" validate:"required,oneof=cash bank upi"`
	Amount     decimal.Decimal `json:"amount"`
	Reference  string          `json:"reference,omitempty" validate:"max=128"`
}

type CheckoutInput struct {
	StayID   uint           `validate:"required"`
	Payments []PaymentInput `validate:"dive"`
}

type CheckoutResult struct {
	StayID        uint                   `json:"stayId"`
	SettlementRef string                 `json:"settlementRef"`
	CheckedOutAt  time.Time              `json:"checkedOutAt"`
	Bill          BillResult             `json:"bill"`
	Payments      []models.PaymentRecord `json:"payments"`
	EntryID       uint                   `json:"entryId"`
}

// SettlementService prices stays and closes them out.
type SettlementService struct {
	DB         *gorm.DB
	Tariff     TariffConfig
	Logger     *logrus.Logger
	Aggregator ChargeAggregator
	Now        func() time.Time
}

func NewSettlementService(db *gorm.DB, tariff TariffConfig, logger *logrus.Logger) *SettlementService {
	return &SettlementService{DB: db, Tariff: tariff, Logger: logger, Now: utcNow}
}

func (s *SettlementService) now() time.Time {
	if s.Now == nil {
		return utcNow()
	}
	return s.Now().UTC()
}

func loadStay(ctx context.Context, db *gorm.DB, stayID uint) (models.Stay, error) {
	var stay models.Stay
	err := db.WithContext(ctx).Preload("Rooms.Room").First(&stay, stayID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return stay, notFoundf("stay %d", stayID)
	}
	if err != nil {
		return stay, fmt.Errorf("load stay %d: %w", stayID, err)
	}
	return stay, nil
}

// PreviewBill computes what the stay would owe at the given instant without
// writing anything.
func (s *SettlementService) PreviewBill(ctx context.Context, stayID uint, at time.Time) (BillResult, error) {
	if at.IsZero() {
		at = s.now()
	}
	stay, err := loadStay(ctx, s.DB, stayID)
	if err != nil {
		return BillResult{}, err
	}
	if stay.Status != models.StayStatusCheckedIn {
		return BillResult{}, ErrStayNotCheckedIn
	}
	if at.Before(stay.CheckIn) {
		return BillResult{}, invalidf("bill instant is before check-in")
	}

	snap, err := s.Aggregator.Snapshot(ctx, s.DB, stay)
	if err != nil {
		return BillResult{}, err
	}
	return Calculate(s.Tariff, snap, roomsOf(stay), at), nil
}

func validatePayments(payments []PaymentInput) error {
	for i, p := range payments {
		if err := requirePositive(fmt.Sprintf("payments[%d].amount", i), p.Amount); err != nil {
			return err
		}
	}
	return nil
}

func paymentMethodLabel(payments []PaymentInput) string {
	seen := map[string]bool{}
	methods := make([]string, 0, len(payments))
	for _, p := range payments {
		if !seen[p.Instrument] {
			seen[p.Instrument] = true
			methods = append(methods, p.Instrument)
		}
	}
	if len(methods) == 0 {
		return "unpaid"
	}
	return strings.Join(methods, "+")
}

// Checkout settles a checked-in stay. Closing the stay, releasing its rooms,
// recording payments, crediting cash and posting the ledger entry commit
// together or not at all.
func (s *SettlementService) Checkout(ctx context.Context, in CheckoutInput) (CheckoutResult, error) {
	if err := validateStruct(in); err != nil {
		return CheckoutResult{}, err
	}
	if err := validatePayments(in.Payments); err != nil {
		return CheckoutResult{}, err
	}

	at := s.now()
	ref := uuid.NewString()
	result := CheckoutResult{StayID: in.StayID, SettlementRef: ref, CheckedOutAt: at}

	fail := func(step string, err error) error {
		return &SettlementError{StayID: in.StayID, Step: step, Err: err}
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stay models.Stay
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Rooms.Room").
			First(&stay, in.StayID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("stay %d", in.StayID)
			}
			return fail(StepLoadStay, err)
		}

		if stay.Status != models.StayStatusCheckedIn {
			return ErrStayNotCheckedIn
		}
		if at.Before(stay.CheckIn) {
			return invalidf("checkout instant is before check-in")
		}

		snap, err := s.Aggregator.Snapshot(ctx, tx, stay)
		if err != nil {
			return fail(StepSnapshot, err)
		}
		bill := Calculate(s.Tariff, snap, roomsOf(stay), at)
		result.Bill = bill

		res := tx.Model(&models.Stay{}).
			Where("id = ? AND status = ?", stay.ID, models.StayStatusCheckedIn).
			Updates(map[string]interface{}{
				"status":          models.StayStatusCheckedOut,
				"check_out":       at,
				"base_total":      bill.BaseTotal,
				"overstay_hours":  bill.ExtraHours,
				"overstay_charge": bill.ExtraCharge,
				"total_charge":    bill.Gross,
				"net_amount":      bill.Net,
				"balance":         bill.Balance,
				"settlement_ref":  ref,
			})
		if res.Error != nil {
			return fail(StepCloseStay, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrStayNotCheckedIn
		}

		roomIDs := stay.RoomIDs()
		if len(roomIDs) > 0 {
			if err := tx.Model(&models.Room{}).
				Where("id IN ?", roomIDs).
				Updates(map[string]interface{}{
					"status":          models.RoomStatusHousekeeping,
					"current_stay_id": nil,
				}).Error; err != nil {
				return fail(StepReleaseRooms, err)
			}
		}

		var roomRef *uint
		if len(roomIDs) > 0 {
			rid := roomIDs[0]
			roomRef = &rid
		}

		cashTotal := decimal.Zero
		records := make([]models.PaymentRecord, 0, len(in.Payments))
		for _, p := range in.Payments {
			rec := models.PaymentRecord{
				CreatedAt:     at,
				StayID:        stay.ID,
				RoomID:        roomRef,
				Amount:        p.Amount,
				Instrument:    p.Instrument,
				Reference:     strings.TrimSpace(p.Reference),
				Status:        models.PaymentStatusCompleted,
				SettlementRef: &ref,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return fail(StepRecordPayments, err)
			}
			records = append(records, rec)
			if p.Instrument == models.InstrumentCash {
				cashTotal = cashTotal.Add(p.Amount)
			}
		}
		result.Payments = records

		if err := creditCashRegister(tx, cashTotal, stay.ID, models.CashReasonCheckout, at); err != nil {
			return fail(StepCashRegister, err)
		}

		breakdown, err := json.Marshal(bill)
		if err != nil {
			return fail(StepPostLedger, err)
		}
		sid := stay.ID
		entry := models.AccountingEntry{
			CreatedAt:     at,
			Category:      models.EntryCategoryRoom,
			StayID:        &sid,
			BaseAmount:    bill.BaseTotal,
			TotalAmount:   bill.Net,
			AdvanceAmount: bill.AdvancePaid,
			Balance:       bill.Balance,
			PaymentMethod: paymentMethodLabel(in.Payments),
			Description:   fmt.Sprintf("room settlement stay %d", stay.ID),
			SettlementRef: &ref,
			Breakdown:     datatypes.JSON(breakdown),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fail(StepPostLedger, err)
		}
		result.EntryID = entry.ID
		return nil
	})

	log := s.Logger.WithFields(logrus.Fields{
		"stay_id":        in.StayID,
		"settlement_ref": ref,
	})
	if err != nil {
		var serr *SettlementError
		if errors.As(err, &serr) {
			config.LogError(s.Logger, "services", "Checkout", "settlement rolled back", logrus.Fields{
				"stay_id":        serr.StayID,
				"step":           serr.Step,
				"settlement_ref": ref,
			}, err)
		} else {
			log.WithError(err).Warn("checkout rejected")
		}
		return CheckoutResult{}, err
	}

	log.WithFields(logrus.Fields{
		"net":     result.Bill.Net.String(),
		"balance": result.Bill.Balance.String(),
	}).Info("stay checked out")
	return result, nil
}
