package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hotel-folio/models"

	"gorm.io/gorm"
)

func newSettlement(t *testing.T, db *gorm.DB, at time.Time) *SettlementService {
	t.Helper()
	svc := NewSettlementService(db, DefaultTariffConfig(), testLogger())
	svc.Now = fixedClock(at)
	return svc
}

func TestCheckoutMergesChargesAndPostsOneEntry(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	room := mustCreateRoom(t, db, "101", "2800")
	stay := checkInAt(t, db, checkInTime, CheckInInput{
		RoomIDs:           []uint{room.ID},
		BookedDays:        2,
		MealPlanCharge:    dec("300"),
		AdvancePaid:       dec("1000"),
		AdvanceInstrument: models.InstrumentCash,
	})

	charges := NewChargeService(db, testLogger())
	if _, err := charges.Post(ctx, stay.ID, ChargeInput{Category: models.ChargeCategoryRestaurant, Amount: dec("450")}); err != nil {
		t.Fatalf("post restaurant: %v", err)
	}
	if _, err := charges.Post(ctx, stay.ID, ChargeInput{Category: models.ChargeCategoryDamage, Amount: dec("200")}); err != nil {
		t.Fatalf("post damage: %v", err)
	}

	svc := newSettlement(t, db, checkInTime.Add(50*time.Hour))
	res, err := svc.Checkout(ctx, CheckoutInput{
		StayID: stay.ID,
		Payments: []PaymentInput{
			{Instrument: models.InstrumentCash, Amount: dec("3000")},
			{Instrument: models.InstrumentUPI, Amount: dec("2950"), Reference: "UPI-778"},
		},
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	// 5600 base + 400 overstay + 450 restaurant + 200 damage + 300 meal plan
	assertDecimal(t, "gross", res.Bill.Gross, "6950")
	assertDecimal(t, "net", res.Bill.Net, "6950")
	assertDecimal(t, "balance", res.Bill.Balance, "5950")
	if res.SettlementRef == "" || len(res.Payments) != 2 || res.EntryID == 0 {
		t.Fatalf("incomplete result: %+v", res)
	}

	var closed models.Stay
	if err := db.First(&closed, stay.ID).Error; err != nil {
		t.Fatalf("reload stay: %v", err)
	}
	if closed.Status != models.StayStatusCheckedOut || closed.CheckOut == nil {
		t.Errorf("stay not closed: status=%s checkout=%v", closed.Status, closed.CheckOut)
	}
	assertDecimal(t, "stay.totalCharge", closed.TotalCharge, "6950")
	assertDecimal(t, "stay.balance", closed.Balance, "5950")
	if closed.OverstayHours != 2 {
		t.Errorf("stay.overstayHours = %d, want 2", closed.OverstayHours)
	}
	if closed.SettlementRef == nil || *closed.SettlementRef != res.SettlementRef {
		t.Errorf("stay settlement ref = %v, want %s", closed.SettlementRef, res.SettlementRef)
	}

	var r models.Room
	if err := db.First(&r, room.ID).Error; err != nil {
		t.Fatalf("reload room: %v", err)
	}
	if r.Status != models.RoomStatusHousekeeping || r.CurrentStayID != nil {
		t.Errorf("room not released: status=%s current=%v", r.Status, r.CurrentStayID)
	}

	var entries []models.AccountingEntry
	if err := db.Where("stay_id = ?", stay.ID).Find(&entries).Error; err != nil {
		t.Fatalf("load entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Category != models.EntryCategoryRoom || e.PaymentMethod != "cash+upi" {
		t.Errorf("unexpected entry: %+v", e)
	}
	assertDecimal(t, "entry.total", e.TotalAmount, "6950")
	assertDecimal(t, "entry.advance", e.AdvanceAmount, "1000")
	var breakdown BillResult
	if err := json.Unmarshal(e.Breakdown, &breakdown); err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	assertDecimal(t, "breakdown.restaurant", breakdown.RestaurantCharges, "450")

	var settled int64
	db.Model(&models.PaymentRecord{}).Where("settlement_ref = ?", res.SettlementRef).Count(&settled)
	if settled != 2 {
		t.Errorf("payments with settlement ref = %d, want 2", settled)
	}

	balance, err := CashBalance(ctx, db)
	if err != nil {
		t.Fatalf("cash balance: %v", err)
	}
	assertDecimal(t, "cash register", balance, "4000")
}

func TestCheckoutTwiceIsRejected(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	room := mustCreateRoom(t, db, "201", "4800")
	stay := checkInAt(t, db, checkInTime, CheckInInput{RoomIDs: []uint{room.ID}, BookedDays: 1})

	svc := newSettlement(t, db, checkInTime.Add(20*time.Hour))
	if _, err := svc.Checkout(ctx, CheckoutInput{StayID: stay.ID}); err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	_, err := svc.Checkout(ctx, CheckoutInput{
		StayID:   stay.ID,
		Payments: []PaymentInput{{Instrument: models.InstrumentBank, Amount: dec("100")}},
	})
	if !errors.Is(err, ErrStayNotCheckedIn) {
		t.Fatalf("second checkout err = %v, want ErrStayNotCheckedIn", err)
	}

	var entries, payments int64
	db.Model(&models.AccountingEntry{}).Where("stay_id = ?", stay.ID).Count(&entries)
	db.Model(&models.PaymentRecord{}).Where("stay_id = ?", stay.ID).Count(&payments)
	if entries != 1 || payments != 0 {
		t.Errorf("entries/payments = %d/%d, want 1/0", entries, payments)
	}
}

func TestCheckoutValidation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	room := mustCreateRoom(t, db, "301", "7500")
	stay := checkInAt(t, db, checkInTime, CheckInInput{RoomIDs: []uint{room.ID}, BookedDays: 1})
	svc := newSettlement(t, db, checkInTime.Add(time.Hour))

	tests := []struct {
		name string
		in   CheckoutInput
		want error
	}{
		{"missing stay id", CheckoutInput{}, ErrValidation},
		{"unknown instrument", CheckoutInput{StayID: stay.ID, Payments: []PaymentInput{{Instrument: "cheque", Amount: dec("10")}}}, ErrValidation},
		{"advance is not a checkout instrument", CheckoutInput{StayID: stay.ID, Payments: []PaymentInput{{Instrument: models.InstrumentAdvance, Amount: dec("10")}}}, ErrValidation},
		{"zero amount", CheckoutInput{StayID: stay.ID, Payments: []PaymentInput{{Instrument: models.InstrumentCash, Amount: dec("0")}}}, ErrValidation},
		{"negative amount", CheckoutInput{StayID: stay.ID, Payments: []PaymentInput{{Instrument: models.InstrumentCash, Amount: dec("-5")}}}, ErrValidation},
		{"unknown stay", CheckoutInput{StayID: 9999}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Checkout(ctx, tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	var reloaded models.Stay
	db.First(&reloaded, stay.ID)
	if reloaded.Status != models.StayStatusCheckedIn {
		t.Errorf("rejected checkouts changed stay status to %s", reloaded.Status)
	}
}

func TestCheckoutBeforeCheckInIsRejected(t *testing.T) {
	db := newTestDB(t)
	room := mustCreateRoom(t, db, "101", "1000")
	stay := checkInAt(t, db, checkInTime, CheckInInput{RoomIDs: []uint{room.ID}, BookedDays: 1})

	svc := newSettlement(t, db, checkInTime.Add(-time.Hour))
	_, err := svc.Checkout(context.Background(), CheckoutInput{StayID: stay.ID})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCheckoutReleasesEveryRoom(t *testing.T) {
	db := newTestDB(t)
	a := mustCreateRoom(t, db, "101", "1000")
	b := mustCreateRoom(t, db, "102", "1500")
	stay := checkInAt(t, db, checkInTime, CheckInInput{RoomIDs: []uint{a.ID, b.ID}, BookedDays: 1})

	svc := newSettlement(t, db, checkInTime.Add(10*time.Hour))
	res, err := svc.Checkout(context.Background(), CheckoutInput{
		StayID:   stay.ID,
		Payments: []PaymentInput{{Instrument: models.InstrumentBank, Amount: dec("2500")}},
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	assertDecimal(t, "baseTotal", res.Bill.BaseTotal, "2500")
	if res.Payments[0].RoomID == nil || *res.Payments[0].RoomID != a.ID {
		t.Errorf("payment room = %v, want %d", res.Payments[0].RoomID, a.ID)
	}

	var housekeeping int64
	db.Model(&models.Room{}).Where("status = ? AND current_stay_id IS NULL", models.RoomStatusHousekeeping).Count(&housekeeping)
	if housekeeping != 2 {
		t.Errorf("rooms in housekeeping = %d, want 2", housekeeping)
	}

	balance, _ := CashBalance(context.Background(), db)
	assertDecimal(t, "cash register", balance, "0")
}

func TestPreviewBillWritesNothing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	room := mustCreateRoom(t, db, "101", "2800")
	stay := checkInAt(t, db, checkInTime, CheckInInput{RoomIDs: []uint{room.ID}, BookedDays: 2, AdvancePaid: dec("1000"), AdvanceInstrument: models.InstrumentUPI})

	svc := newSettlement(t, db, checkInTime)
	bill, err := svc.PreviewBill(ctx, stay.ID, checkInTime.Add(50*time.Hour))
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	assertDecimal(t, "gross", bill.Gross, "6000")
	assertDecimal(t, "balance", bill.Balance, "5000")

	if _, err := svc.PreviewBill(ctx, stay.ID, checkInTime.Add(-time.Minute)); !errors.Is(err, ErrValidation) {
		t.Errorf("preview before check-in err = %v, want ErrValidation", err)
	}

	var reloaded models.Stay
	db.First(&reloaded, stay.ID)
	if reloaded.Status != models.StayStatusCheckedIn {
		t.Errorf("preview changed status to %s", reloaded.Status)
	}
	var entries int64
	db.Model(&models.AccountingEntry{}).Count(&entries)
	if entries != 0 {
		t.Errorf("preview wrote %d ledger entries", entries)
	}
}

func TestCheckoutRollsBackWhenLedgerPostFails(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	room := mustCreateRoom(t, db, "101", "1000")
	stay := checkInAt(t, db, checkInTime, CheckInInput{RoomIDs: []uint{room.ID}, BookedDays: 1})

	ledgerDown := errors.New("ledger down")
	if err := db.Callback().Create().Before("gorm:create").Register("test:fail_ledger", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*models.AccountingEntry); ok {
			_ = tx.AddError(ledgerDown)
		}
	}); err != nil {
		t.Fatalf("register callback: %v", err)
	}

	svc := newSettlement(t, db, checkInTime.Add(3*time.Hour))
	_, err := svc.Checkout(ctx, CheckoutInput{
		StayID:   stay.ID,
		Payments: []PaymentInput{{Instrument: models.InstrumentCash, Amount: dec("1000")}},
	})
	var serr *SettlementError
	if !errors.As(err, &serr) || serr.Step != StepPostLedger || !errors.Is(err, ledgerDown) {
		t.Fatalf("err = %v, want SettlementError at %s", err, StepPostLedger)
	}

	var s models.Stay
	if err := db.First(&s, stay.ID).Error; err != nil {
		t.Fatalf("reload stay: %v", err)
	}
	if s.Status != models.StayStatusCheckedIn || s.SettlementRef != nil {
		t.Errorf("stay status=%s ref=%v, want checked-in without ref", s.Status, s.SettlementRef)
	}
	var r models.Room
	if err := db.First(&r, room.ID).Error; err != nil {
		t.Fatalf("reload room: %v", err)
	}
	if r.Status != models.RoomStatusOccupied {
		t.Errorf("room status = %s, want occupied", r.Status)
	}
	var settled int64
	db.Model(&models.PaymentRecord{}).Where("settlement_ref IS NOT NULL").Count(&settled)
	if settled != 0 {
		t.Errorf("settlement payments = %d, want 0", settled)
	}
	balance, err := CashBalance(ctx, db)
	if err != nil {
		t.Fatalf("cash balance: %v", err)
	}
	assertDecimal(t, "cash", balance, "0")
}

func TestSettlementErrorUnwraps(t *testing.T) {
	inner := errors.New("disk full")
	err := error(&SettlementError{StayID: 4, Step: StepPostLedger, Err: inner})

	if !errors.Is(err, inner) {
		t.Errorf("errors.Is failed to reach inner error")
	}
	var serr *SettlementError
	if !errors.As(err, &serr) || serr.Step != StepPostLedger {
		t.Errorf("errors.As = %v", serr)
	}
}
