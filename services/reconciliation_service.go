package services

import (
	"context"
	"fmt"

	"hotel-folio/models"

	"gorm.io/gorm"
)

const (
	IssueMissingLedgerEntry = "missing-ledger-entry"
	IssueRoomNotReleased    = "room-not-released"
)

// SettlementIssue is a checked-out stay whose side effects did not all land.
// Checkout is transactional, so these only appear from manual edits or data
// written before it was.
type SettlementIssue struct {
	StayID        uint    `json:"stayId"`
	RoomID        *uint   `json:"roomId,omitempty"`
	SettlementRef *string `json:"settlementRef,omitempty"`
	Issue         string  `json:"issue"`
}

type ReconciliationService struct {
	DB *gorm.DB
}

func NewReconciliationService(db *gorm.DB) *ReconciliationService {
	return &ReconciliationService{DB: db}
}

func (s *ReconciliationService) IncompleteSettlements(ctx context.Context) ([]SettlementIssue, error) {
	db := s.DB.WithContext(ctx)
	issues := []SettlementIssue{}

	var missing []models.Stay
	if err := db.Model(&models.Stay{}).
		Where("status = ?", models.StayStatusCheckedOut).
		Where("(settlement_ref IS NULL OR NOT EXISTS (?))",
			db.Model(&models.AccountingEntry{}).
				Select("1").
				Where("accounting_entries.settlement_ref = stays.settlement_ref")).
		Order("id ASC").
		Find(&missing).Error; err != nil {
		return nil, fmt.Errorf("find stays without ledger entry: %w", err)
	}
	for _, st := range missing {
		issues = append(issues, SettlementIssue{
			StayID:        st.ID,
			SettlementRef: st.SettlementRef,
			Issue:         IssueMissingLedgerEntry,
		})
	}

	var held []models.Room
	if err := db.Model(&models.Room{}).
		Joins("JOIN stays ON stays.id = rooms.current_stay_id").
		Where("stays.status = ?", models.StayStatusCheckedOut).
		Order("rooms.id ASC").
		Find(&held).Error; err != nil {
		return nil, fmt.Errorf("find rooms held by closed stays: %w", err)
	}
	for _, r := range held {
		rid := r.ID
		issues = append(issues, SettlementIssue{
			StayID: *r.CurrentStayID,
			RoomID: &rid,
			Issue:  IssueRoomNotReleased,
		})
	}
	return issues, nil
}
