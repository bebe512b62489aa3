package services

import (
	"context"
	"testing"
	"time"

	"hotel-folio/models"
)

func TestIncompleteSettlements(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewReconciliationService(db)

	a := mustCreateRoom(t, db, "101", "1000")
	b := mustCreateRoom(t, db, "102", "1000")
	good := checkInAt(t, db, checkInTime, CheckInInput{RoomIDs: []uint{a.ID}, BookedDays: 1})
	broken := checkInAt(t, db, checkInTime, CheckInInput{RoomIDs: []uint{b.ID}, BookedDays: 1})

	settle := NewSettlementService(db, DefaultTariffConfig(), testLogger())
	settle.Now = fixedClock(checkInTime.Add(time.Hour))
	if _, err := settle.Checkout(ctx, CheckoutInput{StayID: good.ID}); err != nil {
		t.Fatalf("checkout: %v", err)
	}

	issues, err := svc.IncompleteSettlements(ctx)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("clean checkout reported %+v", issues)
	}

	// a stay closed by hand, leaving its room held and no ledger entry
	db.Model(&models.Stay{}).Where("id = ?", broken.ID).Update("status", models.StayStatusCheckedOut)

	issues, err = svc.IncompleteSettlements(ctx)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("issues = %+v, want 2", issues)
	}
	if issues[0].StayID != broken.ID || issues[0].Issue != IssueMissingLedgerEntry {
		t.Errorf("first issue = %+v", issues[0])
	}
	if issues[1].Issue != IssueRoomNotReleased || issues[1].RoomID == nil || *issues[1].RoomID != b.ID {
		t.Errorf("second issue = %+v", issues[1])
	}
}
